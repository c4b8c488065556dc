package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	RegisterDefault()
	app := fiber.New()
	app.Use(
		Middleware(
			func(_, path string) string {
				if path == "/ok" {
					return "ok-route"
				}
				return "failing-route"
			},
		),
	)
	app.Get(
		"/ok", func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
	)
	app.Get(
		"/fail", func(*fiber.Ctx) error {
			return fiber.ErrForbidden
		},
	)

	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "ok-route", "200"))
	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "ok-route", "200")))

	before = testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "failing-route", "403"))
	resp, err = app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "failing-route", "403")))
}

func TestNewServer(t *testing.T) {
	RegisterDefault()
	HTTPRequests.WithLabelValues("GET", "static", "200").Inc()
	app := NewServer("")
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "storefront_http_requests_total")
}
