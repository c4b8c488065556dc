package storage

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/go-storefront/storefront/storage/model"
)

// Storage is a GORM-based storage implementation
type Storage struct {
	db         *gorm.DB
	userParams Argon2idParams
}

var models = []any{
	&model.User{},
	&model.Product{},
	&model.Order{},
}

// NewStorage creates a new GORM-based storage
func NewStorage(config Config) (*Storage, error) {
	db, err := Connect(config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto migrate the schemas
	if err = db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Storage{
		db:         db,
		userParams: userHashParams(config),
	}, nil
}

// userHashParams fills user hash params with defaults if zero values
func userHashParams(config Config) Argon2idParams {
	params := config.UsersHash
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}
	return params
}

// Close closes the underlying database connection
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ProductsStorage returns a ProductsStorage
func (s *Storage) ProductsStorage() *ProductsStorage {
	return &ProductsStorage{db: s.db}
}

// OrdersStorage returns an OrdersStorage
func (s *Storage) OrdersStorage() *OrdersStorage {
	return &OrdersStorage{db: s.db}
}

// Users storage is implemented in users_storage.go

// LoadStorageBackends initializes the configured storage and returns grouped
// backends. For DriverMemory no database is opened.
func LoadStorageBackends(cfg Config) (model.Backends, error) {
	if cfg.Driver == DriverMemory {
		return NewMemoryBackends(userHashParams(cfg)), nil
	}
	warehouse, err := NewStorage(cfg)
	if err != nil {
		return model.Backends{}, err
	}
	return model.Backends{
		Users:    warehouse.UsersStorage(),
		Products: warehouse.ProductsStorage(),
		Orders:   warehouse.OrdersStorage(),
	}, nil
}

// isUniqueConstraintError performs a cheap check across supported drivers.
func isUniqueConstraintError(err error) bool {
	msg := err.Error()
	// sqlite | mysql | postgres common markers
	return containsAny(msg, "UNIQUE constraint failed", "constraint failed") ||
		containsAny(msg, "Duplicate entry", "Error 1062") ||
		containsAny(msg, "duplicate key value", "violates unique constraint")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
