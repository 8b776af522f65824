package render

// Template keys host applications may override through
// settings.TemplatePaths. Unknown keys fall back to the embedded defaults.
const (
	KeyBase       = "base"
	KeyList       = "list"
	KeyCreate     = "create"
	KeyDetail     = "detail"
	KeyDetailAJAX = "detail_ajax"
	KeyUpdate     = "update"
	KeyDelete     = "delete"
	KeyForm       = "form"
)

var defaultPaths = map[string]string{
	KeyBase:       "templates/base.html",
	KeyList:       "templates/list.html",
	KeyCreate:     "templates/create.html",
	KeyDetail:     "templates/detail.html",
	KeyDetailAJAX: "templates/detail_ajax.html",
	KeyUpdate:     "templates/update.html",
	KeyDelete:     "templates/delete.html",
	KeyForm:       "templates/form.html",
}

// DefaultPath returns the embedded template path for a key, empty when the
// key is unknown.
func DefaultPath(key string) string {
	return defaultPaths[key]
}

// PageRenderer resolves template keys through the host override map and
// composes full pages by wrapping a content template in the base layout.
type PageRenderer struct {
	engine    *Engine
	overrides map[string]string
}

// NewPageRenderer builds a PageRenderer. overrides may be nil.
func NewPageRenderer(engine *Engine, overrides map[string]string) *PageRenderer {
	return &PageRenderer{engine: engine, overrides: overrides}
}

// Path resolves a template key to a concrete template path.
func (p *PageRenderer) Path(key string) string {
	if p.overrides != nil {
		if path := p.overrides[key]; path != "" {
			return path
		}
	}
	return DefaultPath(key)
}

// Fragment renders the content template for a key without the base layout.
func (p *PageRenderer) Fragment(key string, ctx map[string]any) (string, error) {
	path := p.Path(key)
	if path == "" {
		return "", &UnknownTemplateError{Key: key}
	}
	return p.engine.Render(path, ctx)
}

// Page renders the content template for a key and wraps it in the base
// layout; the content lands in the base context as `content`.
func (p *PageRenderer) Page(key string, ctx map[string]any) (string, error) {
	content, err := p.Fragment(key, ctx)
	if err != nil {
		return "", err
	}

	base := make(map[string]any, len(ctx)+1)
	for k, v := range ctx {
		base[k] = v
	}
	base["content"] = content
	return p.engine.Render(p.Path(KeyBase), base)
}

// UnknownTemplateError reports a template key with no default and no
// override.
type UnknownTemplateError struct {
	Key string
}

func (e *UnknownTemplateError) Error() string {
	return "render: unknown template key " + e.Key
}
