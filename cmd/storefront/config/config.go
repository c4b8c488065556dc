package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/zachmann/go-utils/fileutils"
	"gopkg.in/yaml.v3"

	"github.com/go-storefront/storefront"
	"github.com/go-storefront/storefront/storage"
)

// Config holds the complete storefront configuration
type Config struct {
	Server  storefront.ServerConf `yaml:"server"`
	Storage storageConf           `yaml:"storage"`
	Logging loggingConf           `yaml:"logging"`
	Metrics metricsConf           `yaml:"metrics"`
}

// Environment variables overriding the config file
const (
	EnvDatabaseURL = storage.EnvDatabaseURL
	EnvPort        = "PORT"
)

var c Config

var possibleConfigLocations = []string{
	".",
	"config",
	"/config",
	"/storefront/config",
	"/storefront",
	"/etc/storefront",
}

// Get returns the Config
func Get() Config {
	return c
}

// Load loads the config from the passed file, or from the first config.yaml
// found in the default locations. It terminates the program if the config is
// not usable.
func Load(filename string) {
	conf, err := load(filename)
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}
	c = *conf
}

func load(filename string) (*Config, error) {
	data, err := readConfigFile(filename)
	if err != nil {
		return nil, err
	}
	conf, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err = conf.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err = conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func defaultConfig() Config {
	return Config{
		Server:  defaultServerConf,
		Storage: defaultStorageConf,
		Logging: defaultLoggingConf,
		Metrics: defaultMetricsConf,
	}
}

func parse(data []byte) (*Config, error) {
	conf := defaultConfig()
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, errors.Wrap(err, "could not parse config")
	}
	return &conf, nil
}

func readConfigFile(filename string) ([]byte, error) {
	if filename != "" {
		data, err := os.ReadFile(filename)
		return data, errors.WithStack(err)
	}
	for _, dir := range possibleConfigLocations {
		path := dir + "/config.yaml"
		if fileutils.FileExists(path) {
			log.WithField("file", path).Debug("using config file")
			data, err := os.ReadFile(path)
			return data, errors.WithStack(err)
		}
	}
	// no file at all; run on defaults and environment
	return nil, nil
}

func (conf *Config) applyEnv(getenv func(string) string) error {
	conf.Storage.applyDatabaseURL(getenv(EnvDatabaseURL))
	if port := getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return errors.Errorf("invalid %s '%s'", EnvPort, port)
		}
		conf.Server.Port = p
	}
	return nil
}

func (conf *Config) validate() error {
	if err := validateServer(&conf.Server); err != nil {
		return err
	}
	if err := conf.Storage.validate(); err != nil {
		return err
	}
	if err := conf.Logging.validate(); err != nil {
		return err
	}
	return conf.Metrics.validate(conf.Server.Port)
}
