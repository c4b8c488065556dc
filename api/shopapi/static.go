package shopapi

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	indexPage    = "index.html"
	notFoundPage = "404.html"
)

// staticPages serves the files of the public directory
type staticPages struct {
	root string
}

// resolve maps a request path to a file below root. The path is cleaned
// before joining, so it can never point outside of root.
func (p staticPages) resolve(requestPath string) string {
	clean := path.Clean("/" + requestPath)
	if clean == "/" {
		clean = "/" + indexPage
	}
	return filepath.Join(p.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}

func (p staticPages) serve(c *fiber.Ctx, in *intent) error {
	file := p.resolve(in.path)
	if err := p.send(c, file, fiber.StatusOK); err == nil || !os.IsNotExist(errors.Cause(err)) {
		return err
	}
	if err := p.send(c, filepath.Join(p.root, notFoundPage), fiber.StatusNotFound); err == nil || !os.IsNotExist(errors.Cause(err)) {
		return err
	}
	return fiber.ErrNotFound
}

func (p staticPages) send(c *fiber.Ctx, file string, status int) error {
	info, err := os.Stat(file)
	if err != nil {
		return errors.WithStack(err)
	}
	if info.IsDir() {
		return errors.WithStack(os.ErrNotExist)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return errors.WithStack(err)
	}
	return c.Status(status).Type(strings.TrimPrefix(filepath.Ext(file), ".")).Send(data)
}
