package table

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	rendertemplate "github.com/goliatone/go-contactbook/pkg/render/template"
)

// TemplateName is the template rendered by HTML.
const TemplateName = "table.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the table template bundle so page engines can load it
// alongside their own templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// HTML renders the model as an HTML table. Cell and header content is
// escaped by the template engine.
func HTML(engine rendertemplate.TemplateRenderer, m Model) (string, error) {
	if engine == nil {
		return "", fmt.Errorf("table: template renderer is nil")
	}
	out, err := engine.RenderTemplate(TemplateName, map[string]any{"table": m})
	if err != nil {
		return "", fmt.Errorf("table: render html: %w", err)
	}
	return out, nil
}

// TextOptions tunes the text projection.
type TextOptions struct {
	Border      lipgloss.Border
	HeaderStyle lipgloss.Style
	CellStyle   lipgloss.Style
}

// DefaultTextOptions mirrors the page look: muted bold headers, padded cells.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Border:      lipgloss.NormalBorder(),
		HeaderStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")).Padding(0, 1),
		CellStyle:   lipgloss.NewStyle().Padding(0, 1),
	}
}

// Text renders the model as a terminal table. Footer content, when any
// column declares it, is appended as a final row.
func Text(m Model, opts TextOptions) string {
	headerStyle, cellStyle := opts.HeaderStyle, opts.CellStyle

	t := ltable.New().
		Border(opts.Border).
		Headers(m.HeaderTexts()...).
		Rows(m.CellTexts()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if m.HasFooter() && len(m.FooterGroups) > 0 {
		footer := make([]string, len(m.FooterGroups[0].Headers))
		for idx, header := range m.FooterGroups[0].Headers {
			footer[idx] = header.Content
		}
		t = t.Row(footer...)
	}
	return strings.TrimRight(t.String(), "\n")
}
