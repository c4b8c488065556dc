package main

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-storefront/storefront/storage"
	"github.com/go-storefront/storefront/storage/model"
)

const testSeed = `
users:
  - name: Admin
    email: admin@email.com
    password: "1234567890"
    role: admin
  - name: Customer
    email: customer@email.com
    password: "0987654321"
  - name: Another Customer
    email: other@email.com
    password: "abcdefghijk"
    role: customer
products:
  - name: Ergonomic Frozen Chair
    price: 93.38
    description: Tasty Soft Fish
  - name: Fantastic Steel Pizza
    price: 88.48
    image: https://example.com/pizza.png
  - name: Small Rubber Gloves
    price: 15
`

func fastHashing() storage.Argon2idParams {
	return storage.Argon2idParams{
		Time:        1,
		MemoryKiB:   1024,
		Parallelism: 1,
		KeyLen:      16,
		SaltLen:     8,
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := parseSeed([]byte(testSeed))
	require.NoError(t, err)
	require.Len(t, seed.Users, 3)
	require.Len(t, seed.Products, 3)
	assert.Equal(t, model.RoleAdmin, seed.Users[0].Role)
	assert.Equal(t, model.RoleCustomer, seed.Users[1].Role)
	assert.Equal(t, 93.38, seed.Products[0].Price)
	assert.Equal(t, "https://example.com/pizza.png", seed.Products[1].Image)

	assert.False(t, seed.Users[0].PasswordHashed)

	hashed, err := parseSeed(
		[]byte("users:\n  - email: a@email.com\n    password: \"$2a$04$abc\"\n    password_hashed: true\n"),
	)
	require.NoError(t, err)
	assert.True(t, hashed.Users[0].PasswordHashed)

	_, err = parseSeed([]byte("users: {"))
	assert.Error(t, err)
}

func TestRandomItems(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	products := []model.Product{
		{
			ID:    "aaaaaaaaaaaaaaaaaaaaaaaa",
			Name:  "a",
			Price: 1,
		},
		{
			ID:    "bbbbbbbbbbbbbbbbbbbbbbbb",
			Name:  "b",
			Price: 2,
		},
	}
	for range 50 {
		items, err := randomItems(products, rnd)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.NotEqual(t, items[0].Product.ID, items[1].Product.ID)
		for _, it := range items {
			assert.GreaterOrEqual(t, it.Quantity, 1)
			assert.LessOrEqual(t, it.Quantity, maxSeedQuantity)
			assert.NoError(t, it.Validate())
		}
	}

	_, err := randomItems(products[:1], rnd)
	assert.Error(t, err)
}

func TestResetDBAndCreateOrders(t *testing.T) {
	ctx := context.Background()
	backs := storage.NewMemoryBackends(fastHashing())
	seed, err := parseSeed([]byte(testSeed))
	require.NoError(t, err)

	require.NoError(t, resetDB(ctx, backs, seed))
	n, err := createOrders(ctx, backs, rand.New(rand.NewPCG(3, 4)))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	customer, err := backs.Users.GetByEmail(ctx, "customer@email.com")
	require.NoError(t, err)
	orders, err := backs.Orders.List(ctx, model.OrderFilter{CustomerID: customer.ID})
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// a second reset removes the orders and recreates users
	require.NoError(t, resetDB(ctx, backs, seed))
	orders, err = backs.Orders.List(ctx, model.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	count, err := backs.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	u, err := backs.Users.Authenticate(ctx, "admin@email.com", "1234567890")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)
}
