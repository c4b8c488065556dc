package storefront

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/api/shopapi"
	"github.com/go-storefront/storefront/internal/metrics"
	"github.com/go-storefront/storefront/storage/model"
)

// Storefront is the http server of the shop
type Storefront struct {
	server     *fiber.App
	serverConf ServerConf
}

// Options holds the optional parts of a Storefront
type Options struct {
	// AccessLog receives the http access log; nil disables it
	AccessLog io.Writer
	// Metrics enables request metrics
	Metrics bool
}

// FiberServerConfig returns the fiber.Config that is used to init the http
// fiber.App
func FiberServerConfig(conf ServerConf) fiber.Config {
	cfg := fiber.Config{
		ReadTimeout:           timeoutOr(conf.ReadTimeout, 3*time.Second),
		WriteTimeout:          timeoutOr(conf.WriteTimeout, 20*time.Second),
		IdleTimeout:           timeoutOr(conf.IdleTimeout, 150*time.Second),
		ReadBufferSize:        8192,
		ErrorHandler:          shopapi.HandleError,
		Network:               "tcp",
		DisableStartupMessage: true,
		ProxyHeader:           conf.ForwardedIPHeader,
	}
	if tps := conf.TrustedProxies; len(tps) > 0 {
		cfg.TrustedProxies = tps
		cfg.EnableTrustedProxyCheck = true
	}
	return cfg
}

// NewStorefront creates a new Storefront serving the shop on the passed
// backends
func NewStorefront(serverConf ServerConf, backends model.Backends, opts Options) *Storefront {
	server := fiber.New(FiberServerConfig(serverConf))
	server.Use(recover.New())
	server.Use(compress.New())
	if opts.AccessLog != nil {
		server.Use(
			logger.New(
				logger.Config{
					Output: opts.AccessLog,
				},
			),
		)
	}
	server.Use(requestid.New())
	if opts.Metrics {
		metrics.RegisterDefault()
		server.Use(metrics.Middleware(shopapi.RouteLabel))
	}
	server.Use(shopapi.RateLimit(serverConf.RateLimit.RequestsPerSecond, serverConf.RateLimit.Burst))
	shopapi.Register(
		server, backends, shopapi.Options{
			PublicDir: serverConf.PublicDir,
		},
	)
	return &Storefront{
		server:     server,
		serverConf: serverConf,
	}
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all endpoints
func (s Storefront) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(s.server)
}

// App returns the underlying fiber.App
func (s Storefront) App() *fiber.App {
	return s.server
}

// Listen starts an http server at the specific address
func (s Storefront) Listen(addr string) error {
	return s.server.Listen(addr)
}

// Shutdown gracefully stops the server
func (s Storefront) Shutdown() error {
	return s.server.Shutdown()
}

// Start starts the server as configured and blocks. With TLS enabled it
// listens on 443 and optionally redirects plain http from port 80.
func (s Storefront) Start() {
	conf := s.serverConf
	if !conf.TLS.Enabled {
		addr := fmt.Sprintf("%s:%d", conf.IPListen, conf.Port)
		log.WithField("addr", addr).Info("TLS is disabled starting http server")
		log.WithError(s.server.Listen(addr)).Fatal()
	}
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(
			fiber.Config{
				DisableStartupMessage: true,
			},
		)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(conf.IPListen + ":80")).Fatal()
		}()
	}
	log.Info("TLS enabled, starting https server on port 443")
	log.WithError(s.server.ListenTLS(conf.IPListen+":443", conf.TLS.Cert, conf.TLS.Key)).Fatal()
}
