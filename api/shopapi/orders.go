package shopapi

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage/model"
)

type orderCreate struct {
	Items []orderItemRequest `json:"items"`
}

type orderItemRequest struct {
	Product  *model.ProductSnapshot `json:"product"`
	Quantity *int                   `json:"quantity"`
}

func (req orderCreate) validate() ([]model.OrderItem, error) {
	if len(req.Items) == 0 {
		return nil, badRequest("order must contain at least one item")
	}
	items := make([]model.OrderItem, len(req.Items))
	for i, it := range req.Items {
		if it.Product == nil {
			return nil, badRequest("item product is required")
		}
		if it.Quantity == nil {
			return nil, badRequest("item quantity is required")
		}
		items[i] = model.OrderItem{
			Product:  *it.Product,
			Quantity: *it.Quantity,
		}
	}
	if err := model.ValidateOrderItems(items); err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// listOrders returns all orders to administrators and the own orders to
// customers
func (s *Shop) listOrders(c *fiber.Ctx, principal *model.User) error {
	var filter model.OrderFilter
	if principal.Role != model.RoleAdmin {
		filter.CustomerID = principal.ID
	}
	orders, err := s.backends.Orders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(nonNil(orders))
}

// createOrder stores an order for the principal. A customerId in the body is
// ignored.
func (s *Shop) createOrder(c *fiber.Ctx, principal *model.User) error {
	var req orderCreate
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	items, err := req.validate()
	if err != nil {
		return err
	}
	order, err := s.backends.Orders.Create(c.UserContext(), principal.ID, items)
	if err != nil {
		return storeError(err)
	}
	log.WithFields(
		log.Fields{
			"order":    order.ID,
			"customer": order.CustomerID,
			"items":    len(order.Items),
		},
	).Info("created order")
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (s *Shop) orderItem(c *fiber.Ctx, in *intent, act action, principal *model.User) error {
	ctx := c.UserContext()
	order, err := s.backends.Orders.Get(ctx, in.id)
	if err != nil {
		return storeError(err)
	}
	t := target{
		id:      order.ID,
		ownerID: order.CustomerID,
	}
	if err = checkItemRequest(c, in, act, principal, t); err != nil {
		return err
	}

	if act == actionDelete {
		order, err = s.backends.Orders.Delete(ctx, order.ID)
		if err != nil {
			return storeError(err)
		}
		log.WithField("order", order.ID).Info("deleted order")
	}
	return c.JSON(order)
}
