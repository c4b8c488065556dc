package shopapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage/model"
)

type roleUpdate struct {
	Role *model.Role `json:"role"`
}

func (s *Shop) listUsers(c *fiber.Ctx) error {
	users, err := s.backends.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(users))
}

func (s *Shop) userItem(c *fiber.Ctx, in *intent, act action, principal *model.User) error {
	ctx := c.UserContext()
	user, err := s.backends.Users.Get(ctx, in.id)
	if err != nil {
		return storeError(err)
	}
	if err = checkItemRequest(c, in, act, principal, target{id: user.ID}); err != nil {
		return err
	}

	switch act {
	case actionUpdate:
		var req roleUpdate
		if err = c.BodyParser(&req); err != nil {
			return errInvalidBody
		}
		if req.Role == nil || !req.Role.Valid() {
			return badRequest("role must be one of 'admin', 'customer'")
		}
		user, err = s.backends.Users.SetRole(ctx, user.ID, *req.Role)
		if err != nil {
			return storeError(err)
		}
		log.WithFields(
			log.Fields{
				"user":  user.ID,
				"role":  user.Role,
				"admin": principal.ID,
			},
		).Info("changed user role")
	case actionDelete:
		user, err = s.backends.Users.Delete(ctx, user.ID)
		if err != nil {
			return storeError(err)
		}
		log.WithFields(
			log.Fields{
				"user":  user.ID,
				"admin": principal.ID,
			},
		).Info("deleted user")
	}
	return c.JSON(user)
}
