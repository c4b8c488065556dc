package shopapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/go-storefront/storefront/storage/model"
)

// Options controls optional features of the shop API registration.
type Options struct {
	// PublicDir is the directory static pages are served from
	PublicDir string
}

// Shop dispatches all requests: preflight, static pages and the JSON API
// for users, products and orders.
type Shop struct {
	backends model.Backends
	pages    staticPages
	routes   []route
}

// route is one branch of the dispatcher. The first route whose match
// returns true handles the request and produces its response.
type route struct {
	name   string
	match  func(in *intent) bool
	handle func(c *fiber.Ctx, in *intent) error
}

// New creates a Shop operating on the passed backends
func New(backends model.Backends, opts Options) *Shop {
	publicDir := opts.PublicDir
	if publicDir == "" {
		publicDir = "public"
	}
	s := &Shop{
		backends: backends,
		pages:    staticPages{root: publicDir},
	}
	s.routes = []route{
		{
			name:   "preflight",
			match:  func(in *intent) bool { return in.method == fiber.MethodOptions && in.known() },
			handle: preflight,
		},
		{
			name:   "static",
			match:  func(in *intent) bool { return in.method == fiber.MethodGet && !in.isAPI() },
			handle: s.pages.serve,
		},
		{
			name:   "item",
			match:  func(in *intent) bool { return in.item },
			handle: s.handleItem,
		},
		{
			name:   "collection",
			match:  func(in *intent) bool { return in.known() },
			handle: s.handleCollection,
		},
		{
			name:   "unknown",
			match:  func(*intent) bool { return true },
			handle: func(*fiber.Ctx, *intent) error { return fiber.ErrNotFound },
		},
	}
	return s
}

// Register mounts the shop dispatcher on the provided router.
func Register(r fiber.Router, backends model.Backends, opts Options) *Shop {
	s := New(backends, opts)
	r.Use(s.Dispatch)
	return s
}

// Dispatch is the fiber handler that evaluates the route table top to bottom.
func (s *Shop) Dispatch(c *fiber.Ctx) error {
	in := parseIntent(c.Method(), c.Path())
	for _, r := range s.routes {
		if r.match(in) {
			return r.handle(c, in)
		}
	}
	return fiber.ErrNotFound
}

func (s *Shop) handleItem(c *fiber.Ctx, in *intent) error {
	principal, err := s.authenticate(c)
	if err != nil {
		return err
	}
	if !in.methodAllowed() {
		return methodNotAllowed(c, in)
	}
	act := itemAction(in.method)
	switch in.kind {
	case kindUsers:
		return s.userItem(c, in, act, principal)
	case kindProducts:
		return s.productItem(c, in, act, principal)
	case kindOrders:
		return s.orderItem(c, in, act, principal)
	}
	return fiber.ErrNotFound
}

func methodNotAllowed(c *fiber.Ctx, in *intent) error {
	c.Set(fiber.HeaderAllow, strings.Join(in.allowedMethods(), ", "))
	return fiber.ErrMethodNotAllowed
}

// checkItemRequest runs the checks shared by all item routes once the
// target is loaded: authorization, Accept and, for updates, Content-Type
func checkItemRequest(c *fiber.Ctx, in *intent, act action, principal *model.User, t target) error {
	if err := enforce(decide(in.kind, act, principal, t), act); err != nil {
		return err
	}
	if !acceptsJSON(c.Get(fiber.HeaderAccept)) {
		return fiber.ErrNotAcceptable
	}
	if act == actionUpdate && !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return errInvalidContentType
	}
	return nil
}

func (s *Shop) handleCollection(c *fiber.Ctx, in *intent) error {
	if !in.methodAllowed() {
		return methodNotAllowed(c, in)
	}
	if !acceptsJSON(c.Get(fiber.HeaderAccept)) {
		return fiber.ErrNotAcceptable
	}
	act := collectionAction(in.method)
	if act == actionCreate && !isJSONContentType(c.Get(fiber.HeaderContentType)) {
		return errInvalidContentType
	}
	var principal *model.User
	if in.kind != kindRegister {
		var err error
		if principal, err = s.authenticate(c); err != nil {
			return err
		}
	}
	if err := enforce(decide(in.kind, act, principal, target{}), act); err != nil {
		return err
	}

	switch in.kind {
	case kindRegister:
		return s.register(c)
	case kindUsers:
		return s.listUsers(c)
	case kindProducts:
		if act == actionCreate {
			return s.createProduct(c)
		}
		return s.listProducts(c)
	case kindOrders:
		if act == actionCreate {
			return s.createOrder(c, principal)
		}
		return s.listOrders(c, principal)
	}
	return fiber.ErrNotFound
}
