package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront"
	"github.com/go-storefront/storefront/cmd/storefront/config"
	"github.com/go-storefront/storefront/internal/logger"
	"github.com/go-storefront/storefront/internal/metrics"
	"github.com/go-storefront/storefront/internal/version"
)

func main() {
	var configFile string
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}
	config.Load(configFile)
	c := config.Get()
	if err := logger.Init(c.Logging.Internal.Options(), c.Logging.Internal.Level); err != nil {
		log.WithError(err).Fatal("could not init logger")
	}
	log.WithField("version", version.VERSION).Info("Loaded Config")

	backs, err := config.LoadStorageBackends(c.Storage)
	if err != nil {
		log.Fatal(err)
	}

	accessLog, err := logger.AccessWriter(c.Logging.Access.Options())
	if err != nil {
		log.Fatal(err)
	}
	shop := storefront.NewStorefront(
		c.Server, backs, storefront.Options{
			AccessLog: accessLog,
			Metrics:   c.Metrics.Enabled,
		},
	)
	log.Println("Initialized Storefront")

	if c.Metrics.Enabled {
		go func() {
			addr := fmt.Sprintf("%s:%d", c.Server.IPListen, c.Metrics.Port)
			log.WithField("addr", addr).Info("starting metrics server")
			log.WithError(metrics.NewServer(c.Metrics.Path).Listen(addr)).Error("metrics server stopped")
		}()
	}

	shop.Start()
}
