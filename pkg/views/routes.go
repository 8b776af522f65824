package views

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-crudgen/pkg/urls"
)

// Mount attaches the scaffolded routes under basePath and registers their
// reversible names with the shared resolver. Paths follow the
// `<base>/<model>` convention:
//
//	GET       <base>/<model>             <model>_list
//	GET POST  <base>/<model>/create      <model>_create
//	GET       <base>/<model>/:id         <model>_detail
//	GET POST  <base>/<model>/:id/update  <model>_update
//	GET POST  <base>/<model>/:id/delete  <model>_delete
//
// The create route registers before the :id routes so the router never
// swallows it as a parameter.
func (h *CRUD[T]) Mount(router fiber.Router, basePath string) error {
	base := "/" + strings.Trim(basePath, "/")
	if base == "/" {
		base = ""
	}
	base = base + "/" + h.meta.Name

	mounted := make(map[string]bool, len(h.cfg.actions))
	for _, action := range h.cfg.actions {
		mounted[action] = true
	}

	register := func(action, path string) error {
		if err := h.view.resolver.Register(urls.Name(h.meta.Name, action), path); err != nil {
			return fmt.Errorf("views: mount %s: %w", h.meta.Name, err)
		}
		return nil
	}

	if mounted[urls.ActionList] {
		if err := register(urls.ActionList, base); err != nil {
			return err
		}
		router.Get(base, h.List)
	}
	if mounted[urls.ActionCreate] {
		if err := register(urls.ActionCreate, base+"/create"); err != nil {
			return err
		}
		router.Get(base+"/create", h.Create)
		router.Post(base+"/create", h.Create)
	}
	if mounted[urls.ActionDetail] {
		if err := register(urls.ActionDetail, base+"/:id"); err != nil {
			return err
		}
		router.Get(base+"/:id", h.Detail)
	}
	if mounted[urls.ActionUpdate] {
		if err := register(urls.ActionUpdate, base+"/:id/update"); err != nil {
			return err
		}
		router.Get(base+"/:id/update", h.Update)
		router.Post(base+"/:id/update", h.Update)
	}
	if mounted[urls.ActionDelete] {
		if err := register(urls.ActionDelete, base+"/:id/delete"); err != nil {
			return err
		}
		router.Get(base+"/:id/delete", h.Delete)
		router.Post(base+"/:id/delete", h.Delete)
	}

	h.view.log.Info("mounted crud routes",
		zap.String("model", h.meta.Name),
		zap.String("base", base),
		zap.Strings("actions", h.cfg.actions))
	return nil
}
