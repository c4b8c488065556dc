package shopapi

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-storefront/storefront/storage/model"
)

// parseBasicAuth extracts Basic auth credentials from an Authorization header
// value. Anything that is not a well-formed Basic header yields ok == false.
func parseBasicAuth(header string) (email, password string, ok bool) {
	if header == "" {
		return "", "", false
	}
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	creds := string(b)
	i := strings.IndexByte(creds, ':')
	if i < 0 {
		return "", "", false
	}
	return creds[:i], creds[i+1:], true
}

// resolvePrincipal returns the user identified by the Authorization header,
// or nil if there is none. An unknown email and a wrong password both give
// nil. Only storage failures are returned as errors.
func resolvePrincipal(ctx context.Context, users model.UsersStore, header string) (*model.User, error) {
	email, password, ok := parseBasicAuth(header)
	if !ok {
		return nil, nil
	}
	u, err := users.Authenticate(ctx, email, password)
	if err != nil {
		var notFound model.NotFoundError
		if errors.As(err, &notFound) || errors.Is(err, model.ErrInvalidCredentials) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// authenticate resolves the principal of the request and fails with the
// Basic auth challenge if there is none
func (s *Shop) authenticate(c *fiber.Ctx) (*model.User, error) {
	principal, err := resolvePrincipal(c.UserContext(), s.backends.Users, c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, err
	}
	if principal == nil {
		return nil, fiber.ErrUnauthorized
	}
	return principal, nil
}
