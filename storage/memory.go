package storage

import (
	"context"
	"strings"
	"sync"

	"github.com/go-storefront/storefront/storage/model"
)

// NewMemoryBackends returns in-memory stores. They are safe for concurrent
// use, keep insertion order for listings and can be emptied with Reset.
func NewMemoryBackends(params Argon2idParams) model.Backends {
	if params.Time == 0 {
		params = defaultArgon2idParams()
	}
	return model.Backends{
		Users:    &MemoryUsers{params: params},
		Products: &MemoryProducts{},
		Orders:   &MemoryOrders{},
	}
}

// memTable is an insertion ordered map guarded by a mutex
type memTable[T any] struct {
	mu    sync.RWMutex
	ids   []string
	items map[string]T
}

func (t *memTable[T]) get(id string) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.items[id]
	return v, ok
}

func (t *memTable[T]) put(id string, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.putLocked(id, v)
}

func (t *memTable[T]) putLocked(id string, v T) {
	if t.items == nil {
		t.items = map[string]T{}
	}
	if _, exists := t.items[id]; !exists {
		t.ids = append(t.ids, id)
	}
	t.items[id] = v
}

func (t *memTable[T]) remove(id string) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.items[id]
	if !ok {
		return v, false
	}
	delete(t.items, id)
	for i, existing := range t.ids {
		if existing == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return v, true
}

func (t *memTable[T]) list(keep func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.ids))
	for _, id := range t.ids {
		if v := t.items[id]; keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (t *memTable[T]) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids = nil
	t.items = nil
}

// MemoryUsers implements model.UsersStore in memory
type MemoryUsers struct {
	table  memTable[model.User]
	params Argon2idParams
}

func (s *MemoryUsers) Count(_ context.Context) (int64, error) {
	return int64(len(s.table.list(nil))), nil
}

func (s *MemoryUsers) List(_ context.Context) ([]model.User, error) {
	return s.table.list(nil), nil
}

func (s *MemoryUsers) Get(_ context.Context, id string) (*model.User, error) {
	u, ok := s.table.get(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	return &u, nil
}

func (s *MemoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	email = strings.TrimSpace(email)
	found := s.table.list(func(u model.User) bool { return u.Email == email })
	if len(found) == 0 {
		return nil, model.NotFoundErrorFmt("user not found: %s", email)
	}
	return &found[0], nil
}

func (s *MemoryUsers) Create(_ context.Context, add model.AddUser) (*model.User, error) {
	u, err := newUser(add, s.params)
	if err != nil {
		return nil, err
	}
	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	for _, existing := range s.table.items {
		if existing.Email == u.Email {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", u.Email)
		}
	}
	s.table.putLocked(u.ID, *u)
	return u, nil
}

func (s *MemoryUsers) SetRole(_ context.Context, id string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, model.ValidationError("unknown role")
	}
	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	u, ok := s.table.items[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	u.Role = role
	s.table.items[id] = u
	return &u, nil
}

func (s *MemoryUsers) Delete(_ context.Context, id string) (*model.User, error) {
	u, ok := s.table.remove(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	return &u, nil
}

func (s *MemoryUsers) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	ok, upgrade, err := verifyPassword(u.PasswordHash, password, s.params)
	if err != nil || !ok {
		return nil, model.ErrInvalidCredentials
	}
	if upgrade {
		if newHash, err := hashPasswordArgon2id(password, s.params); err == nil {
			s.table.mu.Lock()
			if stored, exists := s.table.items[u.ID]; exists {
				stored.PasswordHash = newHash
				s.table.items[u.ID] = stored
			}
			s.table.mu.Unlock()
			u.PasswordHash = newHash
		}
	}
	return u, nil
}

func (s *MemoryUsers) Reset(_ context.Context) error {
	s.table.reset()
	return nil
}

// MemoryProducts implements model.ProductsStore in memory
type MemoryProducts struct {
	table memTable[model.Product]
}

func (s *MemoryProducts) List(_ context.Context) ([]model.Product, error) {
	return s.table.list(nil), nil
}

func (s *MemoryProducts) Get(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.table.get(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("product not found: %s", id)
	}
	return &p, nil
}

func (s *MemoryProducts) Create(_ context.Context, add model.AddProduct) (*model.Product, error) {
	p, err := newProduct(add)
	if err != nil {
		return nil, err
	}
	s.table.put(p.ID, *p)
	return p, nil
}

func (s *MemoryProducts) Update(_ context.Context, id string, update model.ProductUpdate) (*model.Product, error) {
	s.table.mu.Lock()
	defer s.table.mu.Unlock()
	p, ok := s.table.items[id]
	if !ok {
		return nil, model.NotFoundErrorFmt("product not found: %s", id)
	}
	if err := applyProductUpdate(&p, update); err != nil {
		return nil, err
	}
	s.table.items[id] = p
	return &p, nil
}

func (s *MemoryProducts) Delete(_ context.Context, id string) (*model.Product, error) {
	p, ok := s.table.remove(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("product not found: %s", id)
	}
	return &p, nil
}

func (s *MemoryProducts) Reset(_ context.Context) error {
	s.table.reset()
	return nil
}

// MemoryOrders implements model.OrdersStore in memory
type MemoryOrders struct {
	table memTable[model.Order]
}

func (s *MemoryOrders) List(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return s.table.list(filter.Matches), nil
}

func (s *MemoryOrders) Get(_ context.Context, id string) (*model.Order, error) {
	o, ok := s.table.get(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("order not found: %s", id)
	}
	return &o, nil
}

func (s *MemoryOrders) Create(_ context.Context, customerID string, items []model.OrderItem) (*model.Order, error) {
	o, err := newOrder(customerID, items)
	if err != nil {
		return nil, err
	}
	s.table.put(o.ID, *o)
	return o, nil
}

func (s *MemoryOrders) Delete(_ context.Context, id string) (*model.Order, error) {
	o, ok := s.table.remove(id)
	if !ok {
		return nil, model.NotFoundErrorFmt("order not found: %s", id)
	}
	return &o, nil
}

func (s *MemoryOrders) Reset(_ context.Context) error {
	s.table.reset()
	return nil
}
