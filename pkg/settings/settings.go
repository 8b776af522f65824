// Package settings carries the host-application configuration the admin
// surfaces consult: site identity, static asset locations, pagination size,
// and the template-path override map.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings is the centralized configuration for generated admin pages. Every
// value has a usable default; host applications override only what they need.
type Settings struct {
	SiteName      string            `yaml:"site_name"`
	Language      string            `yaml:"language"`
	HomeRouteName string            `yaml:"home_route_name"`
	UserName      string            `yaml:"user_name"`
	StaticBase    string            `yaml:"static_base"`
	StaticTheme   string            `yaml:"static_theme"`
	StaticLogo    string            `yaml:"static_logo"`
	StaticFavicon string            `yaml:"static_favicon"`
	PageSize      int               `yaml:"page_size"`
	TemplatePaths map[string]string `yaml:"template_paths"`
}

// Default returns the baseline configuration.
func Default() *Settings {
	return &Settings{
		SiteName:      "Admin",
		Language:      "en",
		HomeRouteName: "home",
		UserName:      "[Anonymous]",
		StaticBase:    "/static",
		StaticTheme:   "crudgen/adminlte_3_2_0",
		StaticLogo:    "crudgen/images/logo.png",
		StaticFavicon: "crudgen/images/favicon.webp",
		PageSize:      20,
	}
}

// Load reads settings from a yaml file and applies CRUDGEN_* environment
// overrides on top. A missing file is not an error; defaults apply.
func Load(path string) (*Settings, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("settings: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("settings: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// FromEnv returns the default settings with environment overrides applied.
func FromEnv() *Settings {
	cfg := Default()
	cfg.applyEnv()
	cfg.normalize()
	return cfg
}

// TemplatePath returns the override for a template key, or empty when the
// embedded default should be used.
func (s *Settings) TemplatePath(key string) string {
	if s == nil || s.TemplatePaths == nil {
		return ""
	}
	return s.TemplatePaths[key]
}

// ThemeAsset joins a relative asset path onto the configured theme prefix.
func (s *Settings) ThemeAsset(path string) string {
	return joinStatic(s.StaticBase, s.StaticTheme, path)
}

// LogoAsset returns the static URL of the site logo.
func (s *Settings) LogoAsset() string {
	return joinStatic(s.StaticBase, s.StaticLogo)
}

// FaviconAsset returns the static URL of the site favicon.
func (s *Settings) FaviconAsset() string {
	return joinStatic(s.StaticBase, s.StaticFavicon)
}

func (s *Settings) applyEnv() {
	s.SiteName = getEnv("CRUDGEN_SITE_NAME", s.SiteName)
	s.Language = getEnv("CRUDGEN_LANGUAGE", s.Language)
	s.HomeRouteName = getEnv("CRUDGEN_HOME_ROUTE", s.HomeRouteName)
	s.UserName = getEnv("CRUDGEN_USER_NAME", s.UserName)
	s.StaticBase = getEnv("CRUDGEN_STATIC_BASE", s.StaticBase)
	s.StaticTheme = getEnv("CRUDGEN_STATIC_THEME", s.StaticTheme)
	s.StaticLogo = getEnv("CRUDGEN_STATIC_LOGO", s.StaticLogo)
	s.StaticFavicon = getEnv("CRUDGEN_STATIC_FAVICON", s.StaticFavicon)
	s.PageSize = getEnvInt("CRUDGEN_PAGE_SIZE", s.PageSize)
}

func (s *Settings) normalize() {
	if s.PageSize < 1 {
		s.PageSize = Default().PageSize
	}
	s.StaticBase = strings.TrimRight(s.StaticBase, "/")
}

func joinStatic(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Trim(part, "/")
		if part == "" {
			continue
		}
		cleaned = append(cleaned, part)
	}
	return "/" + strings.Join(cleaned, "/")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
