package config

import (
	"slices"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage"
	"github.com/go-storefront/storefront/storage/model"
)

type storageConf struct {
	Driver          storage.DriverType `yaml:"driver"`
	DataDir         string             `yaml:"data_dir"`
	DSN             string             `yaml:"dsn"`
	storage.DSNConf `yaml:",inline"`
	Debug           bool                   `yaml:"debug"`
	PasswordHashing storage.Argon2idParams `yaml:"password_hashing"`
}

func (c *storageConf) validate() error {
	if !slices.Contains(storage.SupportedDrivers, c.Driver) {
		return errors.Errorf("unsupported storage driver '%s'", c.Driver)
	}
	switch c.Driver {
	case storage.DriverMemory:
		return nil
	case storage.DriverSQLite:
		return nil
	}
	var err error
	if c.DSN == "" {
		c.DSN, err = storage.DSN(c.Driver, c.DSNConf)
	}
	return err
}

var defaultStorageConf = storageConf{
	Driver:  storage.DriverSQLite,
	DataDir: ".",
	DSNConf: storage.DSNConf{
		User: "storefront",
		Host: "localhost",
		DB:   "storefront",
	},
	PasswordHashing: storage.Argon2idParams{
		Time:        1,
		MemoryKiB:   64 * 1024,
		Parallelism: 4,
		KeyLen:      32,
		SaltLen:     16,
	},
}

func (c *storageConf) applyDatabaseURL(url string) {
	sc := StorageConfig(*c)
	sc.ApplyDatabaseURL(url)
	c.Driver, c.DSN = sc.Driver, sc.DSN
}

// StorageConfig converts the storage section into a storage.Config
func StorageConfig(c storageConf) storage.Config {
	return storage.Config{
		Driver:    c.Driver,
		DSN:       c.DSN,
		DataDir:   c.DataDir,
		Debug:     c.Debug,
		UsersHash: c.PasswordHashing,
	}
}

// LoadStorageBackends loads and returns the storage backends for the passed
// storage section
func LoadStorageBackends(c storageConf) (model.Backends, error) {
	backs, err := storage.LoadStorageBackends(StorageConfig(c))
	if err != nil {
		return model.Backends{}, err
	}
	log.WithField("driver", c.Driver).Info("Loaded storage backend")
	return backs, nil
}
