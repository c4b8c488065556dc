package shopapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/go-storefront/storefront/storage/model"
)

var (
	errInvalidBody        = fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	errInvalidContentType = fiber.NewError(fiber.StatusBadRequest, "Invalid Content-Type. Expected application/json")
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(msg string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// storeError maps storage errors to responses. Errors it does not know are
// returned unchanged and end up as internal server errors.
func storeError(err error) error {
	var notFound model.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.ErrNotFound
	}
	var validation model.ValidationError
	if errors.As(err, &validation) {
		return badRequest(validation.Error())
	}
	var exists model.AlreadyExistsError
	if errors.As(err, &exists) {
		return badRequest(exists.Error())
	}
	return err
}

// HandleError is the fiber.ErrorHandler of the shop. Bad requests carry a
// JSON error message, authentication failures the Basic challenge, all
// other errors only their status. Errors that are not *fiber.Error are
// logged and answered with a bare 500.
func HandleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if !errors.As(err, &fe) {
		log.WithError(err).WithFields(
			log.Fields{
				"method": c.Method(),
				"path":   c.Path(),
			},
		).Error("internal error while handling request")
		fe = fiber.ErrInternalServerError
	}
	c.Status(fe.Code)
	switch fe.Code {
	case fiber.StatusBadRequest:
		return c.JSON(errorResponse{Error: fe.Message})
	case fiber.StatusUnauthorized:
		c.Set(fiber.HeaderWWWAuthenticate, "Basic")
	}
	return c.Send(nil)
}
