package shopapi

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"tideland.dev/go/slices"
)

// resourceKind is one of the addressable resource collections
type resourceKind int

const (
	kindNone resourceKind = iota
	kindRegister
	kindUsers
	kindProducts
	kindOrders
)

func (k resourceKind) String() string {
	switch k {
	case kindRegister:
		return "register"
	case kindUsers:
		return "users"
	case kindProducts:
		return "products"
	case kindOrders:
		return "orders"
	default:
		return "unknown"
	}
}

var itemRoutePattern = regexp.MustCompile(`^(?:/api)?/(users|products|orders)/([0-9a-zA-Z]{8,24})$`)

var collectionRoutes = map[string]resourceKind{
	"/api/register": kindRegister,
	"/api/users":    kindUsers,
	"/api/products": kindProducts,
	"/api/orders":   kindOrders,
}

var kindsByName = map[string]resourceKind{
	"users":    kindUsers,
	"products": kindProducts,
	"orders":   kindOrders,
}

// Methods allowed per route; also advertised in preflight responses
var (
	collectionMethods = map[resourceKind][]string{
		kindRegister: {fiber.MethodPost},
		kindUsers:    {fiber.MethodGet},
		kindProducts: {fiber.MethodGet, fiber.MethodPost},
		kindOrders:   {fiber.MethodGet, fiber.MethodPost},
	}
	itemMethods = map[resourceKind][]string{
		kindUsers:    {fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete},
		kindProducts: {fiber.MethodGet, fiber.MethodPut, fiber.MethodDelete},
		kindOrders:   {fiber.MethodGet, fiber.MethodDelete},
	}
)

// matchItemRoute matches `(/api)?/{collection}/{id}`
func matchItemRoute(path string) (kind resourceKind, id string, ok bool) {
	m := itemRoutePattern.FindStringSubmatch(path)
	if m == nil {
		return kindNone, "", false
	}
	return kindsByName[m[1]], m[2], true
}

// matchCollectionRoute matches the exact collection paths under /api
func matchCollectionRoute(path string) (resourceKind, bool) {
	kind, ok := collectionRoutes[path]
	return kind, ok
}

// intent is the parsed form of a request that the dispatcher decides on
type intent struct {
	method string
	path   string
	kind   resourceKind
	id     string
	item   bool
}

func parseIntent(method, path string) *intent {
	in := &intent{
		method: strings.ToUpper(method),
		path:   path,
	}
	if kind, id, ok := matchItemRoute(path); ok {
		in.kind, in.id, in.item = kind, id, true
	} else if kind, ok := matchCollectionRoute(path); ok {
		in.kind = kind
	}
	return in
}

func (in *intent) known() bool {
	return in.kind != kindNone
}

func (in *intent) isAPI() bool {
	return strings.HasPrefix(in.path, "/api")
}

// allowedMethods returns the methods accepted on the matched route
func (in *intent) allowedMethods() []string {
	if in.item {
		return itemMethods[in.kind]
	}
	return collectionMethods[in.kind]
}

func (in *intent) methodAllowed() bool {
	return len(slices.Subtract([]string{in.method}, in.allowedMethods())) == 0
}

// RouteLabel classifies a request path into a low cardinality label, used
// for metrics
func RouteLabel(method, path string) string {
	in := parseIntent(method, path)
	if in.method == fiber.MethodGet && !in.isAPI() {
		return "static"
	}
	return in.kind.String()
}
