package nav

import (
	"strings"
	"testing"
)

func TestBreadcrumbs(t *testing.T) {
	crumbs := []Crumb{
		{Title: "Home", URL: "/"},
		{Title: "Articles", URL: "/article/"},
		{Title: "Detail", URL: "/article/7"},
	}

	got := Breadcrumbs(crumbs, "/article/7")

	if !strings.Contains(got, `<li class="breadcrumb-item"><a href="/">Home</a></li>`) {
		t.Errorf("missing home crumb: %s", got)
	}
	if !strings.Contains(got, `<li class="breadcrumb-item active">Detail</li>`) {
		t.Errorf("missing active crumb: %s", got)
	}
	if strings.Contains(got, `<a href="/article/7">`) {
		t.Errorf("active crumb must not link: %s", got)
	}
}

func TestBreadcrumbsEscapesTitles(t *testing.T) {
	got := Breadcrumbs([]Crumb{{Title: "<script>", URL: "/x"}}, "")
	if strings.Contains(got, "<script>") {
		t.Fatalf("unescaped title: %s", got)
	}
}

func TestNavbarLinks(t *testing.T) {
	links := []Link{
		{Title: "Dashboard", URL: "/"},
		{Title: "Reports", URL: "/reports"},
	}

	got := NavbarLinks(links, "/reports")

	if !strings.Contains(got, `<a href="/" class="nav-link">Dashboard</a>`) {
		t.Errorf("missing inactive link: %s", got)
	}
	if !strings.Contains(got, `<a href="#" class="nav-link active">Reports</a>`) {
		t.Errorf("missing active link: %s", got)
	}
}

func TestDisplayValueStripsMarkup(t *testing.T) {
	if got := displayValue(`<b onclick="x()">bold</b>`); got != "bold" {
		t.Fatalf("displayValue = %q", got)
	}
	if got := displayValue(nil); got != "" {
		t.Fatalf("displayValue(nil) = %q", got)
	}
}
