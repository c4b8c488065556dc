package storage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/go-storefront/storefront/storage/model"
)

// OrdersStorage provides access to Order records.
type OrdersStorage struct {
	db *gorm.DB
}

// List returns the orders matching filter, oldest first
func (s *OrdersStorage) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	items := []model.Order{}
	query := s.db.WithContext(ctx).Order("id")
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "orders: list failed")
	}
	return items, nil
}

func (s *OrdersStorage) Get(ctx context.Context, id string) (*model.Order, error) {
	var item model.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("order not found: %s", id)
		}
		return nil, errors.Wrap(err, "orders: get failed")
	}
	return &item, nil
}

func (s *OrdersStorage) Create(ctx context.Context, customerID string, items []model.OrderItem) (*model.Order, error) {
	order, err := newOrder(customerID, items)
	if err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, errors.Wrap(err, "orders: create failed")
	}
	return order, nil
}

func (s *OrdersStorage) Delete(ctx context.Context, id string) (*model.Order, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, errors.Wrap(err, "orders: delete failed")
	}
	return item, nil
}

func (s *OrdersStorage) Reset(ctx context.Context) error {
	return errors.Wrap(
		s.db.WithContext(ctx).Where("1 = 1").Delete(&model.Order{}).Error,
		"orders: reset failed",
	)
}

func newOrder(customerID string, items []model.OrderItem) (*model.Order, error) {
	if customerID == "" {
		return nil, model.ValidationError("customer is required")
	}
	if err := model.ValidateOrderItems(items); err != nil {
		return nil, err
	}
	stored := make([]model.OrderItem, len(items))
	copy(stored, items)
	return &model.Order{
		ID:         newID(),
		CustomerID: customerID,
		Items:      stored,
	}, nil
}
