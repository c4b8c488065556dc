package shopapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const preflightMaxAge = "86400"

// preflight answers CORS preflight requests for known routes
func preflight(c *fiber.Ctx, in *intent) error {
	c.Set(fiber.HeaderAccessControlAllowMethods, strings.Join(in.allowedMethods(), ","))
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type,Accept")
	c.Set(fiber.HeaderAccessControlMaxAge, preflightMaxAge)
	c.Set(fiber.HeaderAccessControlExposeHeaders, "Content-Type,Accept")
	return c.SendStatus(fiber.StatusNoContent)
}
