package model

import (
	"context"
	"time"
)

// Role is the authorization role of a User
type Role string

// Known roles
const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCustomer
}

// User is a registered shop account. The email is the login identifier for
// HTTP Basic authentication.
type User struct {
	ID        string    `gorm:"primaryKey;size:24" json:"_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name  string `gorm:"size:50" json:"name"`
	Email string `gorm:"uniqueIndex;size:254" json:"email"`
	// PasswordHash stores a PHC-formatted argon2id hash (or a legacy bcrypt
	// hash until the next successful login)
	PasswordHash string `json:"-"`
	Role         Role   `gorm:"size:16;index" json:"role"`
}

// AddUser holds the data needed to create a User. Password is plaintext
// unless PasswordHashed is set, which only seed files may do; it is never
// read from request bodies.
type AddUser struct {
	Name           string `json:"name" yaml:"name"`
	Email          string `json:"email" yaml:"email"`
	Password       string `json:"password" yaml:"password"`
	PasswordHashed bool   `json:"-" yaml:"password_hashed"`
	Role           Role   `json:"role" yaml:"role"`
}

// UsersStore abstracts CRUD and authentication helpers for shop accounts.
type UsersStore interface {
	// Count returns the number of users present in the store
	Count(ctx context.Context) (int64, error)
	// List returns all users
	List(ctx context.Context) ([]User, error)
	// Get returns a user by id
	Get(ctx context.Context, id string) (*User, error)
	// GetByEmail returns a user by email
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Create creates a user; the implementation must hash the password
	Create(ctx context.Context, user AddUser) (*User, error)
	// SetRole changes the role of a user and nothing else
	SetRole(ctx context.Context, id string, role Role) (*User, error)
	// Delete deletes a user by id and returns it as it was stored
	Delete(ctx context.Context, id string) (*User, error)
	// Authenticate checks an email/password combo and returns the user
	Authenticate(ctx context.Context, email, password string) (*User, error)
	// Reset removes all users
	Reset(ctx context.Context) error
}
