package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DriverType represents the type of database driver
type DriverType string

const (
	// DriverSQLite stores the shop in a single database file
	DriverSQLite DriverType = "sqlite"
	// DriverMySQL is the MySQL driver
	DriverMySQL DriverType = "mysql"
	// DriverPostgres is the PostgreSQL driver
	DriverPostgres DriverType = "postgres"
	// DriverMemory keeps everything in process memory; nothing is persisted
	DriverMemory DriverType = "memory"
)

var SupportedDrivers = []DriverType{
	DriverSQLite,
	DriverMySQL,
	DriverPostgres,
	DriverMemory,
}

// EnvDatabaseURL names the environment variable that points the shop at its
// database. It takes precedence over the configured dsn.
const EnvDatabaseURL = "STOREFRONT_DBURL"

const (
	defaultDataDir      = "."
	defaultDatabaseFile = "storefront.db"
)

var defaultPorts = map[DriverType]int{
	DriverMySQL:    3306,
	DriverPostgres: 5432,
}

// DSNConf holds the parts of a mysql or postgres connection string
type DSNConf struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DB       string `yaml:"db"`
}

// DSN builds the connection string for the passed DriverType from conf.
// sqlite and memory have no dsn to build.
func DSN(driver DriverType, conf DSNConf) (string, error) {
	if conf.Port == 0 {
		conf.Port = defaultPorts[driver]
	}
	switch driver {
	case DriverMySQL:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
			conf.User, conf.Password, conf.Host, conf.Port, conf.DB,
		), nil
	case DriverPostgres:
		return fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%d",
			conf.Host, conf.User, conf.Password, conf.DB, conf.Port,
		), nil
	case DriverSQLite, DriverMemory:
		return "", errors.Errorf("driver %s does not use dsn", driver)
	default:
		return "", errors.Errorf("unsupported driver '%s'", driver)
	}
}

// Config represents the database configuration
type Config struct {
	Driver DriverType `yaml:"driver"`
	// DSN is the connection string; for sqlite a file path or file: uri
	DSN string `yaml:"dsn"`
	// DataDir holds storefront.db when sqlite is used without a dsn
	DataDir   string         `yaml:"data_dir"`
	Debug     bool           `yaml:"debug"`
	UsersHash Argon2idParams `yaml:"password_hashing"`
}

// Argon2idParams configures Argon2id hashing parameters
type Argon2idParams struct {
	Time        uint32 `yaml:"time"`
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Parallelism uint8  `yaml:"parallelism"`
	KeyLen      uint32 `yaml:"key_len"`
	SaltLen     uint32 `yaml:"salt_len"`
}

// ApplyDatabaseURL points the config at the database named by url. A
// postgres://, postgresql://, mysql:// or sqlite:// scheme also selects the
// driver; a file: uri selects sqlite. Anything else only replaces the dsn of
// the configured driver.
func (c *Config) ApplyDatabaseURL(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		c.Driver, c.DSN = DriverPostgres, url
	case strings.HasPrefix(url, "mysql://"):
		c.Driver, c.DSN = DriverMySQL, strings.TrimPrefix(url, "mysql://")
	case strings.HasPrefix(url, "sqlite://"):
		c.Driver, c.DSN = DriverSQLite, strings.TrimPrefix(url, "sqlite://")
	case strings.HasPrefix(url, "file:"):
		c.Driver, c.DSN = DriverSQLite, url
	default:
		c.DSN = url
	}
}

// sqliteFile returns the sqlite dsn, creating the data dir when the
// database lives there
func (c Config) sqliteFile() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	dir := c.DataDir
	if dir == "" {
		dir = defaultDataDir
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.Wrap(err, "could not create data dir")
	}
	return filepath.Join(dir, defaultDatabaseFile), nil
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch c.Driver {
	case DriverSQLite:
		dsn, err := c.sqliteFile()
		if err != nil {
			return nil, err
		}
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(c.DSN), nil
	case DriverPostgres:
		return postgres.Open(c.DSN), nil
	default:
		return nil, errors.Errorf("unsupported database driver: %s", c.Driver)
	}
}

// Connect opens the database configured in cfg
func Connect(cfg Config) (*gorm.DB, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	return gorm.Open(
		dialector, &gorm.Config{
			Logger: logger.Default.LogMode(logMode),
		},
	)
}
