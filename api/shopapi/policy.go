package shopapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-storefront/storefront/storage/model"
)

type action int

const (
	actionList action = iota
	actionRead
	actionCreate
	actionUpdate
	actionDelete
)

// itemAction maps the method of an item route to an action
func itemAction(method string) action {
	switch method {
	case fiber.MethodPut:
		return actionUpdate
	case fiber.MethodDelete:
		return actionDelete
	default:
		return actionRead
	}
}

// collectionAction maps the method of a collection route to an action
func collectionAction(method string) action {
	if method == fiber.MethodPost {
		return actionCreate
	}
	return actionList
}

type decision int

const (
	allow decision = iota
	denyAuthRequired
	denyForbidden
	// denyNotFound hides the existence of the target
	denyNotFound
	// denySelf rejects an administrator changing their own account
	denySelf
)

// target is the record an item action applies to; empty for collections
type target struct {
	id      string
	ownerID string
}

// decide is the authorization table for all resource kinds and actions.
func decide(kind resourceKind, act action, principal *model.User, t target) decision {
	if kind == kindRegister {
		return allow
	}
	if principal == nil {
		return denyAuthRequired
	}
	admin := principal.Role == model.RoleAdmin
	customer := principal.Role == model.RoleCustomer
	if !admin && !customer {
		return denyForbidden
	}

	switch kind {
	case kindUsers:
		if !admin {
			return denyForbidden
		}
		if (act == actionUpdate || act == actionDelete) && t.id == principal.ID {
			return denySelf
		}
		return allow
	case kindProducts:
		if act == actionList || act == actionRead || admin {
			return allow
		}
		return denyForbidden
	case kindOrders:
		switch act {
		case actionList:
			// customers get their own orders only; the listing is scoped
			return allow
		case actionRead:
			if admin || t.ownerID == principal.ID {
				return allow
			}
			return denyNotFound
		case actionCreate:
			if customer {
				return allow
			}
			return denyForbidden
		case actionDelete:
			if admin {
				return allow
			}
			return denyForbidden
		}
	}
	return denyForbidden
}

// enforce converts a decision into the terminal error, or nil for allow
func enforce(d decision, act action) error {
	switch d {
	case allow:
		return nil
	case denyAuthRequired:
		return fiber.ErrUnauthorized
	case denyNotFound:
		return fiber.ErrNotFound
	case denySelf:
		if act == actionDelete {
			return fiber.NewError(fiber.StatusBadRequest, "Deleting own data is not allowed")
		}
		return fiber.NewError(fiber.StatusBadRequest, "Updating own data is not allowed")
	default:
		return fiber.ErrForbidden
	}
}
