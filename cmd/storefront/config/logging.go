package config

import (
	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/fileutils"

	"github.com/go-storefront/storefront/internal/logger"
)

// loggingConf holds all logging-related configuration under the `logging` key.
//
// YAML example:
//
//	logging:
//	  access:
//	    dir: /var/log/storefront
//	    stderr: false
//	  internal:
//	    dir: /var/log/storefront
//	    stderr: false
//	    level: INFO
type loggingConf struct {
	Access   LoggerConf         `yaml:"access"`
	Internal internalLoggerConf `yaml:"internal"`
}

// internalLoggerConf configures application-internal logging.
// Level accepts the logrus levels (e.g. DEBUG, INFO, WARN, ERROR).
type internalLoggerConf struct {
	LoggerConf `yaml:",inline"`
	Level      string `yaml:"level"`
}

// LoggerConf holds configuration related to logging
type LoggerConf struct {
	Dir    string `yaml:"dir"`
	StdErr bool   `yaml:"stderr"`
}

// Options converts the LoggerConf into logger.Options
func (l LoggerConf) Options() logger.Options {
	return logger.Options{
		Dir:    l.Dir,
		StdErr: l.StdErr,
	}
}

func checkLoggingDirExists(dir string) error {
	if dir != "" && !fileutils.FileExists(dir) {
		return errors.Errorf("logging directory '%s' does not exist", dir)
	}
	return nil
}

func (log *loggingConf) validate() error {
	if err := checkLoggingDirExists(log.Access.Dir); err != nil {
		return err
	}
	return checkLoggingDirExists(log.Internal.Dir)
}

var defaultLoggingConf = loggingConf{
	Internal: internalLoggerConf{
		Level: "INFO",
	},
}
