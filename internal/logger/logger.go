package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	internalLogFile = "storefront.log"
	accessLogFile   = "access.log"
)

// Options configures one log output. Without a directory output goes to
// stderr; with a directory it goes to a file there, and also to stderr if
// StdErr is set.
type Options struct {
	Dir    string
	StdErr bool
}

// Init sets up the internal logrus logger
func Init(opts Options, level string) error {
	log.SetFormatter(
		&log.TextFormatter{
			FullTimestamp: true,
		},
	)
	lvl := log.InfoLevel
	if level != "" {
		var err error
		if lvl, err = log.ParseLevel(level); err != nil {
			return errors.WithStack(err)
		}
	}
	log.SetLevel(lvl)
	w, err := output(opts, internalLogFile)
	if err != nil {
		return err
	}
	log.SetOutput(w)
	return nil
}

// AccessWriter returns the writer for the http access log
func AccessWriter(opts Options) (io.Writer, error) {
	return output(opts, accessLogFile)
}

func output(opts Options, name string) (io.Writer, error) {
	if opts.Dir == "" {
		return os.Stderr, nil
	}
	f, err := os.OpenFile(filepath.Join(opts.Dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, errors.Wrap(err, "could not open log file")
	}
	if opts.StdErr {
		return io.MultiWriter(f, os.Stderr), nil
	}
	return f, nil
}
