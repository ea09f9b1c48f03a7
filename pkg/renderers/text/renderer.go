// Package text renders the contact book page for terminals: a title, the
// contact table drawn with lipgloss and, while the dialog is open, the draft
// with its field errors.
package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/table"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithTableOptions overrides the table border and styles.
func WithTableOptions(opts table.TextOptions) Option {
	return func(r *Renderer) {
		r.table = opts
	}
}

// Renderer produces plain text output.
type Renderer struct {
	table      table.TextOptions
	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
	errorStyle lipgloss.Style
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		table:      table.DefaultTextOptions(),
		titleStyle: lipgloss.NewStyle().Bold(true),
		mutedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		errorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "text"
}

func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Render ignores theme and route options; only field errors are honoured.
func (r *Renderer) Render(_ context.Context, view book.View, options render.RenderOptions) ([]byte, error) {
	var b strings.Builder

	b.WriteString(r.titleStyle.Render(view.Title))
	b.WriteString("\n\n")

	if view.Empty() {
		b.WriteString(r.mutedStyle.Render(view.EmptyMessage))
	} else {
		b.WriteString(table.Text(view.Table, r.table))
	}
	b.WriteString("\n")

	if !view.ModalOpen {
		return []byte(b.String()), nil
	}

	b.WriteString("\n")
	b.WriteString(r.titleStyle.Render(view.ModalTitle))
	b.WriteString("\n")

	extra := render.MapErrorPayload(view.Shape(), options.Errors)
	for _, message := range render.MergeFormErrors(view.FormErrors, extra.Form...) {
		b.WriteString(r.errorStyle.Render("! " + message))
		b.WriteString("\n")
	}
	for _, field := range view.Fields {
		fmt.Fprintf(&b, "%s: %s\n", field.Label, field.Value)
		message := field.Error
		if message == "" {
			message = strings.Join(extra.Fields[field.Name], " ")
		}
		if message != "" {
			b.WriteString(r.errorStyle.Render("  " + message))
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}
