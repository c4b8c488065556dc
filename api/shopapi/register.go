package shopapi

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage/model"
)

const (
	maxNameLength     = 50
	minPasswordLength = 10
)

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

type registration struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (req registration) validate() (model.AddUser, error) {
	if req.Name == nil || req.Email == nil || req.Password == nil {
		return model.AddUser{}, badRequest("name, email and password are required")
	}
	name := strings.TrimSpace(*req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return model.AddUser{}, badRequest("name must be between 1 and 50 characters")
	}
	email := strings.TrimSpace(*req.Email)
	if !emailPattern.MatchString(email) {
		return model.AddUser{}, badRequest("email is invalid")
	}
	if utf8.RuneCountInString(*req.Password) < minPasswordLength {
		return model.AddUser{}, badRequest("password must be at least 10 characters")
	}
	return model.AddUser{
		Name:     name,
		Email:    email,
		Password: *req.Password,
		Role:     model.RoleCustomer,
	}, nil
}

// register creates a customer account. Any role in the body is ignored.
func (s *Shop) register(c *fiber.Ctx) error {
	var req registration
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	add, err := req.validate()
	if err != nil {
		return err
	}
	user, err := s.backends.Users.Create(c.UserContext(), add)
	if err != nil {
		var exists model.AlreadyExistsError
		if errors.As(err, &exists) {
			return badRequest("Email already in use")
		}
		return storeError(err)
	}
	log.WithField("user", user.ID).Info("registered new customer")
	return c.Status(fiber.StatusCreated).JSON(user)
}
