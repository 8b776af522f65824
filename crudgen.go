// Package crudgen scaffolds admin CRUD pages for bun-annotated models:
// register a model and get list, create, detail, update, and delete routes
// with AdminLTE pages, reversible `<model>_<action>` names, and sidebar
// navigation derived from what was mounted.
package crudgen

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/goliatone/go-crudgen/pkg/model"
	"github.com/goliatone/go-crudgen/pkg/nav"
	pkgopenapi "github.com/goliatone/go-crudgen/pkg/openapi"
	"github.com/goliatone/go-crudgen/pkg/render"
	"github.com/goliatone/go-crudgen/pkg/settings"
	"github.com/goliatone/go-crudgen/pkg/urls"
	"github.com/goliatone/go-crudgen/pkg/views"
)

// Settings aliases the host configuration type.
type Settings = settings.Settings

// Action aliases the row action descriptor used by list tables.
type Action = nav.Action

// Row action kinds exported for list configuration.
const (
	ActionDetail     = nav.ActionDetail
	ActionDetailAJAX = nav.ActionDetailAJAX
	ActionUpdate     = nav.ActionUpdate
	ActionDelete     = nav.ActionDelete
	ActionDeleteAJAX = nav.ActionDeleteAJAX
)

// CRUDOption aliases per-model configuration options.
type CRUDOption = views.CRUDOption

// Per-model options re-exported from the views package.
var (
	WithListColumns     = views.WithListColumns
	WithListActions     = views.WithListActions
	WithModelPageSize   = views.WithPageSize
	WithoutCreateButton = views.WithoutCreateButton
	WithoutBackButton   = views.WithoutBackButton
	WithoutUpdateButton = views.WithoutUpdateButton
	WithoutDeleteButton = views.WithoutDeleteButton
	WithModelActions    = views.WithActions
)

// Admin owns the shared view machinery and the set of registered models, and
// mounts everything onto a Fiber router in registration order.
type Admin struct {
	db       *bun.DB
	settings *settings.Settings
	engine   *render.Engine
	log      *zap.Logger
	links    []nav.Link
	header   string
	basePath string

	view   *views.View
	metas  map[string]model.Metadata
	mounts []func(fiber.Router) error
}

// Option configures the Admin during construction.
type Option func(*Admin)

// WithDB installs the bun database handle models persist through.
func WithDB(db *bun.DB) Option {
	return func(a *Admin) { a.db = db }
}

// WithSettings installs host configuration; defaults apply otherwise.
func WithSettings(cfg *settings.Settings) Option {
	return func(a *Admin) {
		if cfg != nil {
			a.settings = cfg
		}
	}
}

// WithEngine installs a custom template engine, for hosts that ship their own
// template bundle.
func WithEngine(engine *render.Engine) Option {
	return func(a *Admin) { a.engine = engine }
}

// WithLogger installs a zap logger; a nop logger applies otherwise.
func WithLogger(log *zap.Logger) Option {
	return func(a *Admin) {
		if log != nil {
			a.log = log
		}
	}
}

// WithNavbarLinks sets the top navbar links rendered on every page.
func WithNavbarLinks(links ...nav.Link) Option {
	return func(a *Admin) { a.links = links }
}

// WithSidebarHeader sets the sidebar section header above the model entries.
func WithSidebarHeader(header string) Option {
	return func(a *Admin) { a.header = header }
}

// WithBasePath sets the URL prefix all scaffolded routes mount under.
// Defaults to /admin.
func WithBasePath(basePath string) Option {
	return func(a *Admin) {
		if basePath != "" {
			a.basePath = basePath
		}
	}
}

// New constructs an Admin. Models register afterwards through Register, and
// Mount attaches everything to a router.
func New(options ...Option) (*Admin, error) {
	admin := &Admin{
		settings: settings.Default(),
		log:      zap.NewNop(),
		basePath: "/admin",
		metas:    make(map[string]model.Metadata),
	}
	for _, opt := range options {
		if opt != nil {
			opt(admin)
		}
	}

	engine := admin.engine
	if engine == nil {
		built, err := render.New()
		if err != nil {
			return nil, fmt.Errorf("crudgen: build engine: %w", err)
		}
		engine = built
	}
	pages := render.NewPageRenderer(engine, admin.settings.TemplatePaths)

	view, err := views.NewView(
		views.WithSettings(admin.settings),
		views.WithPages(pages),
		views.WithMetadataLookup(admin.lookupMetadata),
		views.WithNavbarLinks(admin.links...),
		views.WithSidebarHeader(admin.header),
		views.WithLogger(admin.log),
	)
	if err != nil {
		return nil, err
	}
	admin.view = view
	return admin, nil
}

// Register adds a model to the admin. Handlers build immediately; routes
// attach when Mount runs.
func Register[T any](admin *Admin, options ...views.CRUDOption) (*views.CRUD[T], error) {
	if admin == nil {
		return nil, errors.New("crudgen: admin is required")
	}
	if admin.db == nil {
		return nil, errors.New("crudgen: register requires a database, use WithDB")
	}

	crud, err := views.NewCRUD[T](admin.view, admin.db, options...)
	if err != nil {
		return nil, err
	}

	meta := crud.Metadata()
	if _, exists := admin.metas[meta.Name]; exists {
		return nil, fmt.Errorf("crudgen: model %q already registered", meta.Name)
	}
	admin.metas[meta.Name] = meta
	admin.mounts = append(admin.mounts, func(router fiber.Router) error {
		return crud.Mount(router, admin.basePath)
	})

	admin.log.Debug("registered model", zap.String("model", meta.Name))
	return crud, nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func MustRegister[T any](admin *Admin, options ...views.CRUDOption) *views.CRUD[T] {
	crud, err := Register[T](admin, options...)
	if err != nil {
		panic(err)
	}
	return crud
}

// Mount attaches every registered model's routes to the router.
func (a *Admin) Mount(router fiber.Router) error {
	for _, mount := range a.mounts {
		if err := mount(router); err != nil {
			return err
		}
	}
	return nil
}

// RegisterRoute adds a non-CRUD named route to the resolver so breadcrumbs,
// the navbar, and the sidebar can reverse it. The caller mounts the handler.
func (a *Admin) RegisterRoute(name, path string) error {
	return a.view.Resolver().Register(name, path)
}

// Resolver exposes the shared route resolver.
func (a *Admin) Resolver() *urls.Resolver { return a.view.Resolver() }

// View exposes the shared view machinery for custom handlers.
func (a *Admin) View() *views.View { return a.view }

// Settings exposes the active configuration.
func (a *Admin) Settings() *settings.Settings { return a.settings }

// Metadata returns the metadata for a registered model name.
func (a *Admin) Metadata(name string) (model.Metadata, bool) {
	meta, ok := a.metas[name]
	return meta, ok
}

// OpenAPI builds an OpenAPI document describing the mounted admin routes.
func (a *Admin) OpenAPI(title, version string) (*pkgopenapi.Document, error) {
	return pkgopenapi.BuildDocument(
		pkgopenapi.Info{Title: title, Version: version},
		a.view.Resolver(),
		a.metas,
	)
}

func (a *Admin) lookupMetadata(name string) (model.Metadata, bool) {
	meta, ok := a.metas[name]
	return meta, ok
}
