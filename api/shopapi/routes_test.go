package shopapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchItemRoute(t *testing.T) {
	tests := []struct {
		path string
		kind resourceKind
		id   string
		ok   bool
	}{
		{"/api/users/0123456789abcdef01234567", kindUsers, "0123456789abcdef01234567", true},
		{"/api/products/ABCDEFGH", kindProducts, "ABCDEFGH", true},
		{"/orders/abcdefgh12", kindOrders, "abcdefgh12", true},
		{"/api/users/short", kindNone, "", false},
		{"/api/users/abcdefg", kindNone, "", false},
		{"/api/users/0123456789abcdef012345678", kindNone, "", false},
		{"/api/users/0123456789abcdef0123456789", kindNone, "", false},
		{"/api/users/abc-defgh", kindNone, "", false},
		{"/api/carts/abcdefgh", kindNone, "", false},
		{"/api/users/abcdefgh/extra", kindNone, "", false},
		{"/api/users", kindNone, "", false},
	}
	for _, test := range tests {
		t.Run(
			test.path, func(t *testing.T) {
				kind, id, ok := matchItemRoute(test.path)
				assert.Equal(t, test.ok, ok)
				assert.Equal(t, test.kind, kind)
				assert.Equal(t, test.id, id)
			},
		)
	}
}

func TestParseIntent(t *testing.T) {
	in := parseIntent("get", "/api/products")
	assert.Equal(t, "GET", in.method)
	assert.Equal(t, kindProducts, in.kind)
	assert.False(t, in.item)
	assert.True(t, in.known())
	assert.True(t, in.isAPI())
	assert.True(t, in.methodAllowed())

	in = parseIntent("POST", "/api/users")
	assert.True(t, in.known())
	assert.False(t, in.methodAllowed())

	in = parseIntent("PUT", "/api/orders/abcdefgh12")
	assert.True(t, in.item)
	assert.Equal(t, "abcdefgh12", in.id)
	assert.False(t, in.methodAllowed())
	assert.Equal(t, []string{"GET", "DELETE"}, in.allowedMethods())

	in = parseIntent("GET", "/index.html")
	assert.False(t, in.known())
	assert.False(t, in.isAPI())
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "static", RouteLabel("GET", "/"))
	assert.Equal(t, "static", RouteLabel("GET", "/products.html"))
	assert.Equal(t, "users", RouteLabel("GET", "/api/users/abcdefgh12"))
	assert.Equal(t, "register", RouteLabel("POST", "/api/register"))
	assert.Equal(t, "orders", RouteLabel("OPTIONS", "/api/orders"))
	assert.Equal(t, "unknown", RouteLabel("GET", "/api/unknown"))
	assert.Equal(t, "unknown", RouteLabel("DELETE", "/something"))
}
