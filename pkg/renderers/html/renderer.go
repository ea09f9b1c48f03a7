// Package html renders the contact book page as server-side HTML: a pongo2
// page layout around the contact table and the Add-Contact dialog whose
// controls are composed with fieldkit.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/a-h/templ"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/fieldkit"
	"github.com/goliatone/go-contactbook/pkg/render"
	rendertemplate "github.com/goliatone/go-contactbook/pkg/render/template"
	"github.com/goliatone/go-contactbook/pkg/render/template/pongo"
	"github.com/goliatone/go-contactbook/pkg/table"
)

const pageTemplate = "page"

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templatesDir     string
	templateRenderer rendertemplate.TemplateRenderer
	kit              *fieldkit.Kit
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates missing
// from the directory fall back to the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templatesDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithKit swaps the field kit used for the dialog controls.
func WithKit(kit *fieldkit.Kit) Option {
	return func(cfg *config) {
		if kit != nil {
			cfg.kit = kit
		}
	}
}

// WithStylesheet links an external stylesheet from the page head.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the embedded stylesheet into the page head.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer produces the full page document.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	kit          *fieldkit.Kit
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the html renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.kit == nil {
		cfg.kit = fieldkit.New()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engineOpts := []pongo.Option{
			pongo.WithFS(cfg.templateFS),
			pongo.WithFS(TemplatesFS()),
			pongo.WithFS(table.TemplatesFS()),
		}
		if cfg.templatesDir != "" {
			if _, err := os.Stat(cfg.templatesDir); err != nil {
				return nil, fmt.Errorf("html renderer: templates dir: %w", err)
			}
			engineOpts = append(engineOpts, pongo.WithBaseDir(cfg.templatesDir))
		}
		engine, err := pongo.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	r := &Renderer{
		templates:  renderer,
		kit:        cfg.kit,
		stylesheet: cfg.stylesheet,
	}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the page for view. Extra errors from options are attached
// to fields that carry none in the view; unmatched ones are listed above the
// form.
func (r *Renderer) Render(ctx context.Context, view book.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	view, formErrors := mergeErrors(view, options.Errors)

	var tableHTML string
	if !view.Empty() {
		out, err := table.HTML(r.templates, view.Table)
		if err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
		tableHTML = out
	}

	var rows [][]string
	if view.ModalOpen {
		fields := make([]string, 0, len(view.Fields))
		for _, field := range view.Fields {
			out, err := r.renderField(ctx, view, field)
			if err != nil {
				return nil, fmt.Errorf("html renderer: render field %q: %w", field.Name, err)
			}
			fields = append(fields, out)
		}
		rows = fieldRows(fields)
	}

	result, err := r.templates.RenderTemplate(pageTemplateName(options), map[string]any{
		"view":          view,
		"has_contacts":  !view.Empty(),
		"table_html":    tableHTML,
		"field_rows":    rows,
		"form_errors":   formErrors,
		"routes":        options.Routes.WithDefaults(),
		"theme":         themeContext(options),
		"stylesheet":    r.stylesheetURL(options),
		"inline_styles": r.inlineStyles,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) renderField(ctx context.Context, view book.View, field book.FieldView) (string, error) {
	var decorations []fieldkit.Decoration
	if glyph := fieldkit.Glyph(field.Icon); glyph != "" {
		decorations = append(decorations, fieldkit.Icon(glyph))
	}

	attrs := templ.Attributes{"type": field.Type}
	if field.Type == "email" {
		attrs["autocomplete"] = "email"
	}

	return fieldkit.RenderString(ctx, fieldkit.Field(
		fieldkit.Label(field.Label, templ.Attributes{"for": field.Name}),
		r.kit.Entry(view, field.Name, attrs, decorations...),
	))
}

func (r *Renderer) stylesheetURL(options render.RenderOptions) string {
	if options.Theme != nil && options.Theme.AssetURL != nil {
		if href := options.Theme.AssetURL(render.AssetStylesheet); href != "" {
			return href
		}
	}
	return r.stylesheet
}

func pageTemplateName(options render.RenderOptions) string {
	if options.Theme != nil {
		if name := strings.TrimSpace(options.Theme.Partials[render.PartialPage]); name != "" {
			return name
		}
	}
	return pageTemplate
}

func themeContext(options render.RenderOptions) map[string]any {
	if options.Theme == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":    options.Theme.Theme,
		"variant": options.Theme.Variant,
		"style":   render.CSSVarsStyle(options.Theme),
	}
}

// fieldRows puts the first two controls (given and family name) side by side.
func fieldRows(fields []string) [][]string {
	if len(fields) < 3 {
		rows := make([][]string, 0, len(fields))
		for _, field := range fields {
			rows = append(rows, []string{field})
		}
		return rows
	}
	rows := [][]string{{fields[0], fields[1]}}
	for _, field := range fields[2:] {
		rows = append(rows, []string{field})
	}
	return rows
}

func mergeErrors(view book.View, extra map[string][]string) (book.View, []string) {
	if len(extra) == 0 {
		return view, render.MergeFormErrors(view.FormErrors)
	}

	mapping := render.MapErrorPayload(view.Shape(), extra)

	fields := make([]book.FieldView, len(view.Fields))
	copy(fields, view.Fields)
	for idx, field := range fields {
		if field.Error != "" {
			continue
		}
		if messages := mapping.Fields[field.Name]; len(messages) > 0 {
			fields[idx].Error = strings.Join(messages, " ")
		}
	}
	view.Fields = fields
	return view, render.MergeFormErrors(view.FormErrors, mapping.Form...)
}
