package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/zachmann/go-utils/duration"
	"github.com/zachmann/go-utils/fileutils"

	"github.com/go-storefront/storefront"
)

var defaultServerConf = storefront.ServerConf{
	Port:         3000,
	PublicDir:    "public",
	ReadTimeout:  duration.DurationOption(3 * time.Second),
	WriteTimeout: duration.DurationOption(20 * time.Second),
	IdleTimeout:  duration.DurationOption(150 * time.Second),
}

func validateServer(s *storefront.ServerConf) error {
	if s.Port <= 0 || s.Port > 65535 {
		return errors.Errorf("invalid server port %d", s.Port)
	}
	if !fileutils.FileExists(s.PublicDir) {
		return errors.Errorf("public directory '%s' does not exist", s.PublicDir)
	}
	if s.TLS.Enabled && (s.TLS.Cert == "" || s.TLS.Key == "") {
		return errors.New("tls is enabled but cert or key is missing")
	}
	if s.RateLimit.RequestsPerSecond < 0 {
		return errors.New("rate_limit.requests_per_second must not be negative")
	}
	return nil
}
