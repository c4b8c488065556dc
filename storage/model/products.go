package model

import (
	"context"
)

// Product is an item of the shop catalog
type Product struct {
	ID          string  `gorm:"primaryKey;size:24" json:"_id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// AddProduct holds the data needed to create a Product
type AddProduct struct {
	Name        string  `json:"name" yaml:"name"`
	Price       float64 `json:"price" yaml:"price"`
	Description string  `json:"description" yaml:"description"`
	Image       string  `json:"image" yaml:"image"`
}

// ProductUpdate is a partial update; nil fields keep their stored value.
type ProductUpdate struct {
	Name        *string  `json:"name" structs:"name"`
	Price       *float64 `json:"price" structs:"price"`
	Description *string  `json:"description" structs:"description"`
	Image       *string  `json:"image" structs:"image"`
}

// ProductsStore abstracts CRUD for the catalog.
type ProductsStore interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, product AddProduct) (*Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (*Product, error)
	// Delete deletes a product by id and returns it as it was stored
	Delete(ctx context.Context, id string) (*Product, error)
	// Reset removes all products
	Reset(ctx context.Context) error
}
