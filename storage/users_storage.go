package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/go-storefront/storefront/storage/model"
)

// UsersStorage returns a UsersStorage
func (s *Storage) UsersStorage() *UsersStorage {
	return &UsersStorage{db: s.db, params: s.userParams}
}

// UsersStorage implements UsersStore using GORM
type UsersStorage struct {
	db     *gorm.DB
	params Argon2idParams
}

// Count returns the number of users present in the store
func (s *UsersStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "users: count failed")
	}
	return count, nil
}

// List returns all users ordered by creation
func (s *UsersStorage) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "users: list failed")
	}
	return users, nil
}

func (s *UsersStorage) first(ctx context.Context, query string, arg string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NotFoundErrorFmt("user not found: %s", arg)
		}
		return nil, errors.Wrap(err, "users: get failed")
	}
	return &u, nil
}

// Get returns a user by id
func (s *UsersStorage) Get(ctx context.Context, id string) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

// GetByEmail returns a user by email
func (s *UsersStorage) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.first(ctx, "email = ?", strings.TrimSpace(email))
}

// Create creates a user with an Argon2id-hashed password
func (s *UsersStorage) Create(ctx context.Context, add model.AddUser) (*model.User, error) {
	u, err := newUser(add, s.params)
	if err != nil {
		return nil, err
	}
	var existing int64
	if err = s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", u.Email).Count(&existing).Error; err != nil {
		return nil, errors.Wrap(err, "users: create failed")
	}
	if existing > 0 {
		return nil, model.AlreadyExistsErrorFmt("user already exists: %s", u.Email)
	}
	if err = s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, model.AlreadyExistsErrorFmt("user already exists: %s", u.Email)
		}
		return nil, errors.Wrap(err, "users: create failed")
	}
	return u, nil
}

// SetRole updates the role of a user
func (s *UsersStorage) SetRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, model.ValidationError("unknown role")
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = s.db.WithContext(ctx).Model(u).Update("role", role).Error; err != nil {
		return nil, errors.Wrap(err, "users: update failed")
	}
	u.Role = role
	return u, nil
}

// Delete deletes a user by id
func (s *UsersStorage) Delete(ctx context.Context, id string) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "users: delete failed")
	}
	if res.RowsAffected == 0 {
		return nil, model.NotFoundErrorFmt("user not found: %s", id)
	}
	return u, nil
}

// Authenticate validates email/password and upgrades the stored hash if it
// is a legacy bcrypt hash or the argon2id params changed
func (s *UsersStorage) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
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
			err = s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", u.ID).Update("password_hash", newHash).Error
			if err != nil {
				log.WithError(err).WithField("user", u.ID).Warn("could not upgrade password hash")
			} else {
				u.PasswordHash = newHash
			}
		}
	}
	return u, nil
}

// Reset removes all users
func (s *UsersStorage) Reset(ctx context.Context) error {
	return errors.Wrap(
		s.db.WithContext(ctx).Where("1 = 1").Delete(&model.User{}).Error,
		"users: reset failed",
	)
}

// newUser normalizes and validates add and returns the record to store
func newUser(add model.AddUser, params Argon2idParams) (*model.User, error) {
	email := strings.TrimSpace(add.Email)
	if email == "" || add.Password == "" {
		return nil, model.ValidationError("email and password are required")
	}
	role := add.Role
	if role == "" {
		role = model.RoleCustomer
	}
	if !role.Valid() {
		return nil, model.ValidationError("unknown role")
	}
	hash, err := setSecret(add, params)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           newID(),
		Name:         strings.TrimSpace(add.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}, nil
}

// setSecret hashes the password of add. Plaintext is always hashed, even if
// it looks like a hash; only a password marked as hashed is kept as is.
func setSecret(add model.AddUser, params Argon2idParams) (string, error) {
	if add.PasswordHashed {
		return HashPassword(add.Password, params)
	}
	return hashPasswordArgon2id(add.Password, params)
}
