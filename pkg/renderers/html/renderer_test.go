package html_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers/html"
	"github.com/goliatone/go-contactbook/pkg/testsupport"
	"github.com/goliatone/go-contactbook/pkg/validation"
)

func mustRender(t *testing.T, renderer *html.Renderer, view book.View, options render.RenderOptions) string {
	t.Helper()
	out, err := renderer.Render(testsupport.Context(), view, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func mustNew(t *testing.T, options ...html.Option) *html.Renderer {
	t.Helper()
	renderer, err := html.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRenderer_EmptyBook(t *testing.T) {
	out := mustRender(t, mustNew(t), book.New().View(), render.RenderOptions{})

	for _, fragment := range []string{
		"<title>Contact Book</title>",
		"You dont have any friends.",
		`action="/contacts/new"`,
		">Add</button>",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
	if strings.Contains(out, "<table") {
		t.Fatalf("empty book must not render a table")
	}
	if strings.Contains(out, "<dialog") {
		t.Fatalf("closed modal must not render a dialog")
	}
}

func TestRenderer_TableAfterSubmit(t *testing.T) {
	b := book.New()
	b.OpenModal()
	b.Submit(testsupport.Draft(testsupport.Ada()))

	out := mustRender(t, mustNew(t), b.View(), render.RenderOptions{})
	if strings.Contains(out, "You dont have any friends.") {
		t.Fatalf("expected table instead of empty message")
	}
	for _, cell := range []string{">Ada</td>", ">Lovelace</td>", ">ada@example.com</td>", ">123</td>"} {
		if !strings.Contains(out, cell) {
			t.Fatalf("expected %q in output:\n%s", cell, out)
		}
	}
	if got := strings.Count(out, "<td "); got != 4 {
		t.Fatalf("expected one row of 4 cells, got %d", got)
	}
}

func TestRenderer_ModalWithErrors(t *testing.T) {
	b := book.New()
	b.OpenModal()
	b.Submit(map[string]string{
		model.FieldFirstName:   "",
		model.FieldLastName:    "<b>Lovelace</b>",
		model.FieldEmail:       "ada@example.com",
		model.FieldPhoneNumber: "123",
	})

	out := mustRender(t, mustNew(t), b.View(), render.RenderOptions{})
	for _, fragment := range []string{
		"<dialog open",
		"Add new Contact",
		`action="/contacts"`,
		`formaction="/contacts/cancel"`,
		`name="firstName"`,
		`aria-invalid="true"`,
		validation.DefaultRequiredMessage,
		`value="&lt;b&gt;Lovelace&lt;/b&gt;"`,
		`<div class="flex gap-4">`,
		"<svg",
		">Save</button>",
		">Cancel</button>",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
	if got := strings.Count(out, `aria-invalid="true"`); got != 1 {
		t.Fatalf("expected exactly one invalid field, got %d", got)
	}
	if strings.Contains(out, "<b>Lovelace</b>") {
		t.Fatalf("draft values must be escaped")
	}
}

func TestRenderer_SaveIsTheDefaultSubmit(t *testing.T) {
	b := book.New()
	b.OpenModal()

	out := mustRender(t, mustNew(t), b.View(), render.RenderOptions{})
	dialog := out[strings.Index(out, "<dialog"):]
	save := strings.Index(dialog, ">Save</button>")
	cancel := strings.Index(dialog, ">Cancel</button>")
	if save < 0 || cancel < 0 {
		t.Fatalf("expected both dialog buttons:\n%s", dialog)
	}
	if save > cancel {
		t.Fatalf("Save must precede Cancel so Enter submits the draft:\n%s", dialog)
	}
	if !strings.Contains(dialog, "flex-row-reverse") {
		t.Fatalf("expected reversed row to keep Cancel on the left:\n%s", dialog)
	}
}

func TestRenderer_OptionErrors(t *testing.T) {
	b := book.New()
	b.OpenModal()

	out := mustRender(t, mustNew(t), b.View(), render.RenderOptions{
		Errors: map[string][]string{
			"/email":           {"Address already taken"},
			"non_field_errors": {"Try again later"},
		},
	})
	if !strings.Contains(out, "Address already taken") {
		t.Fatalf("expected mapped field error in output:\n%s", out)
	}
	if !strings.Contains(out, "<li>Try again later</li>") {
		t.Fatalf("expected form level error in output:\n%s", out)
	}
}

func TestRenderer_Theme(t *testing.T) {
	cfg, err := render.ResolveTheme(nil, render.DefaultThemeName, "light")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}

	out := mustRender(t, mustNew(t, html.WithStylesheet("/assets/contactbook.css")), book.New().View(), render.RenderOptions{Theme: cfg})
	for _, fragment := range []string{
		`data-theme="contactbook"`,
		`data-theme-variant="light"`,
		"--background: #fafafa",
		`href="/assets/contactbook.css"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, out)
		}
	}
}

func TestRenderer_ThemePagePartial(t *testing.T) {
	files := fstest.MapFS{
		"minimal.tpl": {Data: []byte(`<main>{{ view.title }}|{{ view.emptyMessage }}</main>`)},
	}
	renderer := mustNew(t, html.WithTemplatesFS(files))

	selection, err := render.NewManifestSelector().Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := render.ThemeConfig(selection)
	cfg.Partials = map[string]string{render.PartialPage: "minimal"}

	out := mustRender(t, renderer, book.New().View(), render.RenderOptions{Theme: cfg})
	if out != "<main>Contact Book|You dont have any friends.</main>" {
		t.Fatalf("unexpected partial output %q", out)
	}
}

func TestRenderer_DefaultStyles(t *testing.T) {
	out := mustRender(t, mustNew(t, html.WithDefaultStyles()), book.New().View(), render.RenderOptions{})
	if !strings.Contains(out, "<style>") || !strings.Contains(out, "--accent") {
		t.Fatalf("expected inlined stylesheet in output")
	}
}

func TestRenderer_WithTemplateRenderer(t *testing.T) {
	stub := &stubTemplateRenderer{
		renderTemplateFunc: func(name string, data any, out ...io.Writer) (string, error) {
			if name == "page" {
				return "custom-output", nil
			}
			return "<table></table>", nil
		},
	}

	out := mustRender(t, mustNew(t, html.WithTemplateRenderer(stub)), book.New().View(), render.RenderOptions{})
	if out != "custom-output" {
		t.Fatalf("expected stub output, got %q", out)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "page" {
		t.Fatalf("unexpected template calls %v", stub.calls)
	}
}

func TestNew_MissingTemplatesDir(t *testing.T) {
	if _, err := html.New(html.WithTemplatesDir("/does/not/exist")); err == nil {
		t.Fatalf("expected error for missing templates dir")
	}
}

func TestRenderer_Metadata(t *testing.T) {
	renderer := mustNew(t)
	if renderer.Name() != "html" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}

type stubTemplateRenderer struct {
	renderTemplateFunc func(name string, data any, out ...io.Writer) (string, error)
	calls              []string
}

func (s *stubTemplateRenderer) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	s.calls = append(s.calls, name)
	return s.renderTemplateFunc(name, data, out...)
}

func (s *stubTemplateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	return templateContent, nil
}

func (s *stubTemplateRenderer) RegisterFilter(name string, fn func(input any, param any) (any, error)) error {
	return nil
}

func (s *stubTemplateRenderer) GlobalContext(data any) error {
	return nil
}
