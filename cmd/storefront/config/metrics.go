package config

import (
	"github.com/pkg/errors"
)

// metricsConf configures the prometheus endpoint. It is served on its own
// port, never on the shop port.
type metricsConf struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

func (m *metricsConf) validate(serverPort int) error {
	if !m.Enabled {
		return nil
	}
	if m.Port == serverPort {
		return errors.New("metrics port must differ from the server port")
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
	return nil
}

var defaultMetricsConf = metricsConf{
	Port: 9090,
	Path: "/metrics",
}
