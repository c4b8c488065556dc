package main

import (
	"context"
	"log"
	"math/rand/v2"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-storefront/storefront/storage/model"
)

const maxSeedQuantity = 10

var createOrdersCmd = &cobra.Command{
	Use:   "create-orders",
	Short: "Creates one random order for every customer",
	RunE: func(cmd *cobra.Command, _ []string) error {
		n, err := createOrders(cmd.Context(), backends, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
		if err != nil {
			return err
		}
		log.Printf("Created one order for each customer. Total of %d orders.", n)
		return nil
	},
}

func createOrders(ctx context.Context, backs model.Backends, rnd *rand.Rand) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	users, err := backs.Users.List(ctx)
	if err != nil {
		return 0, err
	}
	products, err := backs.Products.List(ctx)
	if err != nil {
		return 0, err
	}
	var created int
	for _, u := range users {
		if u.Role != model.RoleCustomer {
			continue
		}
		items, err := randomItems(products, rnd)
		if err != nil {
			return created, err
		}
		if _, err = backs.Orders.Create(ctx, u.ID, items); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// randomItems picks two distinct products with a quantity of 1 to 10 each
func randomItems(products []model.Product, rnd *rand.Rand) ([]model.OrderItem, error) {
	if len(products) < 2 {
		return nil, errors.New("at least two products are needed to create orders")
	}
	first := rnd.IntN(len(products))
	second := rnd.IntN(len(products) - 1)
	if second >= first {
		second++
	}
	items := make([]model.OrderItem, 0, 2)
	for _, i := range []int{first, second} {
		p := products[i]
		items = append(
			items, model.OrderItem{
				Product: model.ProductSnapshot{
					ID:          p.ID,
					Name:        p.Name,
					Price:       p.Price,
					Description: p.Description,
				},
				Quantity: rnd.IntN(maxSeedQuantity) + 1,
			},
		)
	}
	return items, nil
}
