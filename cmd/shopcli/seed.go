package main

import (
	"context"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-storefront/storefront/storage/model"
)

// seedData is the content of a seed file
type seedData struct {
	Users    []model.AddUser    `yaml:"users"`
	Products []model.AddProduct `yaml:"products"`
}

var seedFile string

var resetDBCmd = &cobra.Command{
	Use:   "reset-db",
	Short: "Deletes all data and loads the seed file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		seed, err := readSeed(seedFile)
		if err != nil {
			return err
		}
		return resetDB(cmd.Context(), backends, seed)
	},
}

func init() {
	resetDBCmd.Flags().StringVar(&seedFile, "seed", "seed.yaml", "the seed file with users and products")
}

func readSeed(path string) (*seedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) (*seedData, error) {
	var seed seedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.Wrap(err, "could not parse seed file")
	}
	for i, u := range seed.Users {
		if u.Role == "" {
			seed.Users[i].Role = model.RoleCustomer
		}
	}
	return &seed, nil
}

// resetDB removes orders, products and users in this order and then
// creates the seeded products and users
func resetDB(ctx context.Context, backs model.Backends, seed *seedData) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := backs.Orders.Reset(ctx); err != nil {
		return err
	}
	if err := backs.Products.Reset(ctx); err != nil {
		return err
	}
	for _, p := range seed.Products {
		if _, err := backs.Products.Create(ctx, p); err != nil {
			return errors.Wrapf(err, "could not create product '%s'", p.Name)
		}
	}
	log.Printf("Created %d products", len(seed.Products))
	if err := backs.Users.Reset(ctx); err != nil {
		return err
	}
	for _, u := range seed.Users {
		if _, err := backs.Users.Create(ctx, u); err != nil {
			return errors.Wrapf(err, "could not create user '%s'", u.Email)
		}
	}
	log.Printf("Created %d users", len(seed.Users))
	return nil
}
