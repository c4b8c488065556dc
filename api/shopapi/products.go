package shopapi

import (
	"strings"

	"github.com/fatih/structs"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage/model"
)

type productCreate struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
}

func (req productCreate) validate() (model.AddProduct, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return model.AddProduct{}, badRequest("name is required")
	}
	if req.Price == nil {
		return model.AddProduct{}, badRequest("price is required")
	}
	if *req.Price <= 0 {
		return model.AddProduct{}, badRequest("price must be positive")
	}
	return model.AddProduct{
		Name:        strings.TrimSpace(*req.Name),
		Price:       *req.Price,
		Description: req.Description,
		Image:       req.Image,
	}, nil
}

func (s *Shop) listProducts(c *fiber.Ctx) error {
	products, err := s.backends.Products.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(nonNil(products))
}

func (s *Shop) createProduct(c *fiber.Ctx) error {
	var req productCreate
	if err := c.BodyParser(&req); err != nil {
		return errInvalidBody
	}
	add, err := req.validate()
	if err != nil {
		return err
	}
	product, err := s.backends.Products.Create(c.UserContext(), add)
	if err != nil {
		return storeError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (s *Shop) productItem(c *fiber.Ctx, in *intent, act action, principal *model.User) error {
	ctx := c.UserContext()
	product, err := s.backends.Products.Get(ctx, in.id)
	if err != nil {
		return storeError(err)
	}
	if err = checkItemRequest(c, in, act, principal, target{id: product.ID}); err != nil {
		return err
	}

	switch act {
	case actionUpdate:
		var update model.ProductUpdate
		if err = c.BodyParser(&update); err != nil {
			return errInvalidBody
		}
		product, err = s.backends.Products.Update(ctx, product.ID, update)
		if err != nil {
			return storeError(err)
		}
		log.WithFields(changedFields(update)).WithField("product", product.ID).Info("updated product")
	case actionDelete:
		product, err = s.backends.Products.Delete(ctx, product.ID)
		if err != nil {
			return storeError(err)
		}
		log.WithField("product", product.ID).Info("deleted product")
	}
	return c.JSON(product)
}

// changedFields lists the fields set in a product update
func changedFields(update model.ProductUpdate) log.Fields {
	fields := log.Fields{}
	for _, f := range structs.New(update).Fields() {
		if f.IsZero() {
			continue
		}
		switch v := f.Value().(type) {
		case *string:
			fields[f.Tag("structs")] = *v
		case *float64:
			fields[f.Tag("structs")] = *v
		}
	}
	return fields
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
