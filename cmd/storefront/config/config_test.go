package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-storefront/storefront/storage"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestParseDefaults(t *testing.T) {
	conf, err := parse(nil)
	require.NoError(t, err)
	assert.Equal(t, 3000, conf.Server.Port)
	assert.Equal(t, "public", conf.Server.PublicDir)
	assert.Equal(t, 3*time.Second, conf.Server.ReadTimeout.Duration())
	assert.Equal(t, storage.DriverSQLite, conf.Storage.Driver)
	assert.Equal(t, "INFO", conf.Logging.Internal.Level)
	assert.Equal(t, 9090, conf.Metrics.Port)
	assert.False(t, conf.Metrics.Enabled)
}

func TestParse(t *testing.T) {
	publicDir := t.TempDir()
	conf, err := parse(
		[]byte(`
server:
  port: 8080
  public_dir: ` + publicDir + `
  rate_limit:
    requests_per_second: 20
    burst: 40
storage:
  driver: postgres
  host: db.internal
  password: secret
  password_hashing:
    time: 2
    memory_kib: 32768
    parallelism: 2
    key_len: 32
    salt_len: 16
logging:
  internal:
    level: debug
metrics:
  enabled: true
  port: 9100
`),
	)
	require.NoError(t, err)
	require.NoError(t, conf.applyEnv(env(nil)))
	require.NoError(t, conf.validate())

	assert.Equal(t, 8080, conf.Server.Port)
	assert.Equal(t, 20.0, conf.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, 40, conf.Server.RateLimit.Burst)
	assert.Equal(t, storage.DriverPostgres, conf.Storage.Driver)
	assert.Equal(t, "storefront", conf.Storage.User)
	assert.Equal(t, "host=db.internal user=storefront password=secret dbname=storefront port=5432", conf.Storage.DSN)
	assert.Equal(t, uint32(2), StorageConfig(conf.Storage).UsersHash.Time)
	assert.Equal(t, "debug", conf.Logging.Internal.Level)
	assert.Equal(t, "/metrics", conf.Metrics.Path)
}

func TestApplyEnv(t *testing.T) {
	conf, err := parse(nil)
	require.NoError(t, err)
	require.NoError(
		t, conf.applyEnv(
			env(
				map[string]string{
					EnvDatabaseURL: "file:/tmp/shop.db",
					EnvPort:        "4000",
				},
			),
		),
	)
	assert.Equal(t, "file:/tmp/shop.db", conf.Storage.DSN)
	assert.Equal(t, storage.DriverSQLite, conf.Storage.Driver)
	assert.Equal(t, 4000, conf.Server.Port)

	require.NoError(t, conf.applyEnv(env(map[string]string{EnvDatabaseURL: "postgres://shop@db/storefront"})))
	assert.Equal(t, storage.DriverPostgres, conf.Storage.Driver)
	assert.Equal(t, "postgres://shop@db/storefront", conf.Storage.DSN)
	require.NoError(t, conf.Storage.validate())

	assert.Error(t, conf.applyEnv(env(map[string]string{EnvPort: "http"})))
}

func TestValidate(t *testing.T) {
	publicDir := t.TempDir()
	valid := func() *Config {
		conf, err := parse(nil)
		require.NoError(t, err)
		conf.Server.PublicDir = publicDir
		conf.Storage.Driver = storage.DriverMemory
		return conf
	}
	require.NoError(t, valid().validate())

	tests := map[string]func(c *Config){
		"port":       func(c *Config) { c.Server.Port = 0 },
		"public dir": func(c *Config) { c.Server.PublicDir = filepath.Join(publicDir, "missing") },
		"tls":        func(c *Config) { c.Server.TLS.Enabled = true },
		"driver":     func(c *Config) { c.Storage.Driver = "oracle" },
		"log dir":    func(c *Config) { c.Logging.Access.Dir = filepath.Join(publicDir, "missing") },
		"metrics port": func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Port = c.Server.Port
		},
		"rate limit": func(c *Config) { c.Server.RateLimit.RequestsPerSecond = -1 },
	}
	for name, mutate := range tests {
		t.Run(
			name, func(t *testing.T) {
				c := valid()
				mutate(c)
				assert.Error(t, c.validate())
			},
		)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(
		t, os.WriteFile(
			file, []byte(`
server:
  public_dir: `+dir+`
storage:
  driver: memory
`), 0o600,
		),
	)
	t.Setenv(EnvPort, "")
	t.Setenv(EnvDatabaseURL, "")
	conf, err := load(file)
	require.NoError(t, err)
	assert.Equal(t, storage.DriverMemory, conf.Storage.Driver)

	backs, err := LoadStorageBackends(conf.Storage)
	require.NoError(t, err)
	assert.NotNil(t, backs.Users)

	_, err = load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
