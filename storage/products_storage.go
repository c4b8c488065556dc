package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/go-storefront/storefront/storage/model"
)

// ProductsStorage provides CRUD access to the product catalog.
type ProductsStorage struct {
	db *gorm.DB
}

func (s *ProductsStorage) List(ctx context.Context) ([]model.Product, error) {
	items := []model.Product{}
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "products: list failed")
	}
	return items, nil
}

func (s *ProductsStorage) Get(ctx context.Context, id string) (*model.Product, error) {
	var item model.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("product not found: %s", id)
		}
		return nil, errors.Wrap(err, "products: get failed")
	}
	return &item, nil
}

func (s *ProductsStorage) Create(ctx context.Context, add model.AddProduct) (*model.Product, error) {
	item, err := newProduct(add)
	if err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, errors.Wrap(err, "products: create failed")
	}
	return item, nil
}

func (s *ProductsStorage) Update(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = applyProductUpdate(item, update); err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, errors.Wrap(err, "products: update failed")
	}
	return item, nil
}

func (s *ProductsStorage) Delete(ctx context.Context, id string) (*model.Product, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, errors.Wrap(err, "products: delete failed")
	}
	return item, nil
}

func (s *ProductsStorage) Reset(ctx context.Context) error {
	return errors.Wrap(
		s.db.WithContext(ctx).Where("1 = 1").Delete(&model.Product{}).Error,
		"products: reset failed",
	)
}

func newProduct(add model.AddProduct) (*model.Product, error) {
	add.Name = strings.TrimSpace(add.Name)
	if add.Name == "" {
		return nil, model.ValidationError("name is required")
	}
	if add.Price <= 0 {
		return nil, model.ValidationError("price must be a positive number")
	}
	return &model.Product{
		ID:          newID(),
		Name:        add.Name,
		Price:       add.Price,
		Description: add.Description,
		Image:       add.Image,
	}, nil
}

// applyProductUpdate validates the whole update before changing item
func applyProductUpdate(item *model.Product, update model.ProductUpdate) error {
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return model.ValidationError("name must not be empty")
		}
		update.Name = &name
	}
	if update.Price != nil && *update.Price <= 0 {
		return model.ValidationError("price must be a positive number")
	}
	if update.Name != nil {
		item.Name = *update.Name
	}
	if update.Price != nil {
		item.Price = *update.Price
	}
	if update.Description != nil {
		item.Description = *update.Description
	}
	if update.Image != nil {
		item.Image = *update.Image
	}
	return nil
}
