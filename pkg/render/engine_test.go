package render

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/flosch/pongo2/v6"
)

func TestEngineRenderString(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.RenderString("Hello {{ name }}!", map[string]any{"name": "World"})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if out != "Hello World!" {
		t.Errorf("RenderString() = %q, want %q", out, "Hello World!")
	}
}

func TestEngineRenderEmbedded(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.Render("templates/detail_ajax", map[string]any{
		"detail_items": "<li>Name</li>",
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, `<ul class="list-unstyled">`) {
		t.Errorf("Render() missing list wrapper: %q", out)
	}
	if !strings.Contains(out, "<li>Name</li>") {
		t.Errorf("Render() did not pass raw HTML through safe filter: %q", out)
	}
}

func TestEngineRenderCustomFS(t *testing.T) {
	files := fstest.MapFS{
		"custom/greeting.html": {Data: []byte("Hi {{ who }}")},
	}
	engine, err := New(WithFS(files))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.Render("custom/greeting", map[string]any{"who": "there"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "Hi there" {
		t.Errorf("Render() = %q, want %q", out, "Hi there")
	}
}

func TestEngineRenderMissingTemplate(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := engine.Render("templates/nope", nil); err == nil {
		t.Fatal("Render() expected error for missing template")
	}
}

func TestEngineGlobals(t *testing.T) {
	engine, err := New(WithGlobals(map[string]any{"site_title": "Back Office"}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.RenderString("{{ site_title }}", nil)
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if out != "Back Office" {
		t.Errorf("RenderString() = %q, want %q", out, "Back Office")
	}
}

func TestEngineCustomFilter(t *testing.T) {
	engine, err := New(WithFilters(map[string]pongo2.FilterFunction{
		"shout": func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.ToUpper(in.String()) + "!"), nil
		},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.RenderString("{{ word|shout }}", map[string]any{"word": "go"})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if out != "GO!" {
		t.Errorf("RenderString() = %q, want %q", out, "GO!")
	}
}

func TestEngineFilterNameAlreadyTaken(t *testing.T) {
	engine, err := New(WithFilters(map[string]pongo2.FilterFunction{
		"upper": func(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue("hijacked"), nil
		},
	}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := engine.RenderString("{{ word|upper }}", map[string]any{"word": "go"})
	if err != nil {
		t.Fatalf("RenderString() error = %v", err)
	}
	if out != "GO" {
		t.Errorf("RenderString() = %q, want builtin filter to win", out)
	}
}

func TestPageRendererPath(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	pages := NewPageRenderer(engine, map[string]string{
		KeyDetail: "custom/detail.html",
	})

	if got := pages.Path(KeyDetail); got != "custom/detail.html" {
		t.Errorf("Path(detail) = %q, want override", got)
	}
	if got := pages.Path(KeyList); got != "templates/list.html" {
		t.Errorf("Path(list) = %q, want embedded default", got)
	}
}

func TestPageRendererPage(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	pages := NewPageRenderer(engine, nil)
	out, err := pages.Page(KeyDetailAJAX, map[string]any{
		"detail_items": "<li>Title</li>",
		"site_title":   "Back Office",
		"title":        "Article 7",
		"page_lang":    "en",
	})
	if err != nil {
		t.Fatalf("Page() error = %v", err)
	}
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Errorf("Page() missing base layout: %.80q", out)
	}
	if !strings.Contains(out, "<li>Title</li>") {
		t.Errorf("Page() missing composed content")
	}
	if !strings.Contains(out, "<h1>Article 7</h1>") {
		t.Errorf("Page() missing content header title")
	}
}

func TestPageRendererUnknownKey(t *testing.T) {
	engine, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	pages := NewPageRenderer(engine, nil)
	_, err = pages.Fragment("wizard", nil)
	if err == nil {
		t.Fatal("Fragment() expected error for unknown key")
	}
	var unknown *UnknownTemplateError
	if !errors.As(err, &unknown) {
		t.Fatalf("error %v is not an UnknownTemplateError", err)
	}
	if unknown.Key != "wizard" {
		t.Errorf("UnknownTemplateError.Key = %q, want %q", unknown.Key, "wizard")
	}
}
