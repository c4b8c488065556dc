package model

import (
	"context"
	"time"

	"gorm.io/datatypes"
)

// ProductSnapshot is the copy of a product taken when an order is placed.
// Later catalog changes do not alter it.
type ProductSnapshot struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// OrderItem is a single line of an Order
type OrderItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Validate checks that the line item is fully populated.
func (i OrderItem) Validate() error {
	switch {
	case i.Product.ID == "":
		return ValidationError("product _id is required")
	case i.Product.Name == "":
		return ValidationError("product name is required")
	case i.Product.Price <= 0:
		return ValidationError("product price must be a positive number")
	case i.Quantity <= 0:
		return ValidationError("quantity must be a positive integer")
	}
	return nil
}

// Order is placed by a customer. The line items are stored as a JSON column.
type Order struct {
	ID         string                         `gorm:"primaryKey;size:24" json:"_id"`
	CreatedAt  time.Time                      `json:"-"`
	CustomerID string                         `gorm:"size:24;index;not null" json:"customerId"`
	Items      datatypes.JSONSlice[OrderItem] `json:"items"`
}

// ValidateOrderItems checks the invariants of an order's line items: the
// sequence is not empty and every item is fully populated.
func ValidateOrderItems(items []OrderItem) error {
	if len(items) == 0 {
		return ValidationError("items must not be empty")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// OrderFilter restricts an order listing. The zero value matches all orders.
type OrderFilter struct {
	CustomerID string
}

// Matches reports whether the order passes the filter
func (f OrderFilter) Matches(o Order) bool {
	return f.CustomerID == "" || o.CustomerID == f.CustomerID
}

// OrdersStore abstracts CRUD for orders. There is no update operation.
type OrdersStore interface {
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	// Create stores a new order owned by customerID
	Create(ctx context.Context, customerID string, items []OrderItem) (*Order, error)
	// Delete deletes an order by id and returns it as it was stored
	Delete(ctx context.Context, id string) (*Order, error)
	// Reset removes all orders
	Reset(ctx context.Context) error
}
