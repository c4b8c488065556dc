package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/go-storefront/storefront/cmd/storefront/config"
	"github.com/go-storefront/storefront/storage/model"
)

var rootCmd = &cobra.Command{
	Use:               "shopcli",
	Short:             "shopcli helps you manage the data of your storefront",
	Long:              "shopcli helps you manage the data of your storefront",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

var configFile string
var backends model.Backends

func loadConfig(_ *cobra.Command, _ []string) error {
	config.Load(configFile)
	log.Println("Loaded Config")

	var err error
	backends, err = config.LoadStorageBackends(config.Get().Storage)
	return err
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	rootCmd.AddCommand(resetDBCmd, createOrdersCmd, createAdminCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
