package render

import (
	"fmt"
	"maps"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultThemeName names the built-in manifest.
	DefaultThemeName = "contactbook"
	// DefaultThemeVariant is the dark look of the page.
	DefaultThemeVariant = "dark"

	// PartialPage lets a theme replace the page template.
	PartialPage = "contactbook.page"
	// AssetStylesheet is the asset key of an optional theme stylesheet.
	AssetStylesheet = "contactbook.stylesheet"
)

// DefaultManifest describes the built-in theme: a dark base with a light
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"background": "#171717",
			"surface":    "#171717",
			"border":     "#262626",
			"text":       "#ffffff",
			"muted":      "#a3a3a3",
			"accent":     "#a855f7",
			"danger":     "#f87171",
		},
		Variants: map[string]theme.Variant{
			DefaultThemeVariant: {},
			"light": {
				Tokens: map[string]string{
					"background": "#fafafa",
					"surface":    "#ffffff",
					"border":     "#e5e5e5",
					"text":       "#171717",
					"muted":      "#525252",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from an in-memory set of manifests.
type ManifestSelector struct {
	mu        sync.RWMutex
	manifests map[string]*theme.Manifest
	fallback  string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector registers manifests; the first one is the fallback for
// empty theme names. With no manifests the built-in one is used.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	if len(manifests) == 0 {
		manifests = []*theme.Manifest{DefaultManifest()}
	}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if s.fallback == "" {
			s.fallback = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select returns the named theme and variant. Empty names fall back to the
// first registered manifest; an empty variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.fallback
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("render: theme %q not found", name)
	}

	variant = strings.TrimSpace(variant)
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("render: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects a theme and flattens it into renderer configuration.
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		selector = NewManifestSelector()
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	return ThemeConfig(selection), nil
}

// ThemeConfig merges the base and variant layers of a selection. Every token
// is also exposed as a CSS custom property named "--<token>".
func ThemeConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   selection.Theme,
		Variant: selection.Variant,
	}

	manifest := selection.Manifest
	if manifest == nil {
		return cfg
	}

	tokens := maps.Clone(manifest.Tokens)
	partials := maps.Clone(manifest.Templates)
	prefix := manifest.Assets.Prefix
	files := maps.Clone(manifest.Assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		tokens = overlay(tokens, variant.Tokens)
		partials = overlay(partials, variant.Templates)
		files = overlay(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	cfg.Tokens = tokens
	cfg.Partials = partials
	if len(tokens) > 0 {
		cfg.CSSVars = make(map[string]string, len(tokens))
		for key, value := range tokens {
			cfg.CSSVars["--"+key] = value
		}
	}
	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
			return file
		}
		if prefix == "" {
			return file
		}
		return path.Join(prefix, file)
	}
	return cfg
}

// CSSVarsStyle renders the theme's CSS variables as an inline style value
// with keys in sorted order.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+cfg.CSSVars[key])
	}
	return strings.Join(parts, "; ")
}

func overlay(base, top map[string]string) map[string]string {
	if len(top) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(top))
	}
	for key, value := range top {
		base[key] = value
	}
	return base
}
