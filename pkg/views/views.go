// Package views turns model metadata into Fiber handlers for the scaffolded
// admin pages: listing with sortable paginated tables, create and update
// forms, detail cards, and delete confirmations with their ajax variants.
package views

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/goliatone/go-crudgen/pkg/nav"
	"github.com/goliatone/go-crudgen/pkg/render"
	"github.com/goliatone/go-crudgen/pkg/settings"
	"github.com/goliatone/go-crudgen/pkg/urls"
)

// View bundles the shared machinery every scaffolded handler consults:
// settings, the page renderer, the route resolver, model metadata lookup,
// and the logger.
type View struct {
	settings *settings.Settings
	pages    *render.PageRenderer
	resolver *urls.Resolver
	lookup   nav.MetadataLookup
	links    []nav.Link
	header   string
	log      *zap.Logger
}

// ViewOption configures a View during construction.
type ViewOption func(*View)

// WithSettings installs the host configuration.
func WithSettings(cfg *settings.Settings) ViewOption {
	return func(v *View) {
		if cfg != nil {
			v.settings = cfg
		}
	}
}

// WithPages installs the page renderer.
func WithPages(pages *render.PageRenderer) ViewOption {
	return func(v *View) {
		if pages != nil {
			v.pages = pages
		}
	}
}

// WithResolver installs a shared route resolver.
func WithResolver(resolver *urls.Resolver) ViewOption {
	return func(v *View) {
		if resolver != nil {
			v.resolver = resolver
		}
	}
}

// WithMetadataLookup installs the model metadata lookup used by sidebar
// labels.
func WithMetadataLookup(lookup nav.MetadataLookup) ViewOption {
	return func(v *View) {
		if lookup != nil {
			v.lookup = lookup
		}
	}
}

// WithNavbarLinks sets the top navbar links.
func WithNavbarLinks(links ...nav.Link) ViewOption {
	return func(v *View) { v.links = links }
}

// WithSidebarHeader sets the sidebar section header above the model entries.
func WithSidebarHeader(header string) ViewOption {
	return func(v *View) { v.header = header }
}

// WithLogger installs a zap logger.
func WithLogger(log *zap.Logger) ViewOption {
	return func(v *View) {
		if log != nil {
			v.log = log
		}
	}
}

// NewView constructs a View with usable defaults for anything not supplied.
func NewView(options ...ViewOption) (*View, error) {
	view := &View{
		settings: settings.Default(),
		resolver: urls.NewResolver(),
		log:      zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(view)
		}
	}

	if view.pages == nil {
		engine, err := render.New()
		if err != nil {
			return nil, err
		}
		view.pages = render.NewPageRenderer(engine, view.settings.TemplatePaths)
	}
	return view, nil
}

// Resolver exposes the route resolver for external registration.
func (v *View) Resolver() *urls.Resolver { return v.resolver }

// Settings exposes the active configuration.
func (v *View) Settings() *settings.Settings { return v.settings }

// Pages exposes the page renderer.
func (v *View) Pages() *render.PageRenderer { return v.pages }

// Logger exposes the view logger.
func (v *View) Logger() *zap.Logger { return v.log }

// HomeURL reverses the configured home route, falling back to the root path
// when none is registered.
func (v *View) HomeURL() string {
	if url, err := v.resolver.Reverse(v.settings.HomeRouteName); err == nil {
		return url
	}
	return "/"
}

// pageContext assembles the base-layout context shared by every page: site
// identity, asset URLs, and the rendered navigation fragments.
func (v *View) pageContext(path, title string, crumbs []nav.Crumb) map[string]any {
	return map[string]any{
		"page_lang":     v.settings.Language,
		"site_title":    v.settings.SiteName,
		"site_url":      v.HomeURL(),
		"user_name":     v.settings.UserName,
		"title":         title,
		"page_title":    title,
		"favicon_url":   v.settings.FaviconAsset(),
		"logo_url":      v.settings.LogoAsset(),
		"theme_css_url": v.settings.ThemeAsset("dist/css/adminlte.min.css"),
		"theme_js_url":  v.settings.ThemeAsset("dist/js/adminlte.min.js"),
		"breadcrumbs":   nav.Breadcrumbs(crumbs, path),
		"sidebar":       nav.SidebarItems(v.resolver, v.lookup, path, v.header),
		"navbar_left":   nav.NavbarLinks(v.links, path),
	}
}

// renderPage composes and sends a full HTML page for a template key.
func (v *View) renderPage(c *fiber.Ctx, key string, ctx map[string]any) error {
	page, err := v.pages.Page(key, ctx)
	if err != nil {
		v.log.Error("render page failed", zap.String("template", key), zap.Error(err))
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// isAJAX reports whether the request came from the dashboard's xhr helpers.
func isAJAX(c *fiber.Ctx) bool {
	return c.Get("X-Requested-With") == "XMLHttpRequest"
}
