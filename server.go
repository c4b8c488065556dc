package storefront

import (
	"time"

	"github.com/zachmann/go-utils/duration"
)

// ServerConf configures the http server of the storefront
type ServerConf struct {
	IPListen          string                  `yaml:"ip_listen"`
	Port              int                     `yaml:"port"`
	PublicDir         string                  `yaml:"public_dir"`
	TLS               tlsConf                 `yaml:"tls"`
	TrustedProxies    []string                `yaml:"trusted_proxies"`
	ForwardedIPHeader string                  `yaml:"forwarded_ip_header"`
	ReadTimeout       duration.DurationOption `yaml:"read_timeout"`
	WriteTimeout      duration.DurationOption `yaml:"write_timeout"`
	IdleTimeout       duration.DurationOption `yaml:"idle_timeout"`
	RateLimit         RateLimitConf           `yaml:"rate_limit"`
}

type tlsConf struct {
	Enabled      bool   `yaml:"enabled"`
	RedirectHTTP bool   `yaml:"redirect_http"`
	Cert         string `yaml:"cert"`
	Key          string `yaml:"key"`
}

// RateLimitConf configures the global request rate limit; a zero
// RequestsPerSecond disables it
type RateLimitConf struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func timeoutOr(d duration.DurationOption, def time.Duration) time.Duration {
	if v := d.Duration(); v > 0 {
		return v
	}
	return def
}
