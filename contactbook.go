package contactbook

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers"
	"github.com/goliatone/go-contactbook/pkg/renderers/html"
	"github.com/goliatone/go-contactbook/pkg/web"
)

// Contact is a single saved entry; alias exported via the root package for
// convenience.
type Contact = model.Contact

// ContactList is the ordered, newest-first list of contacts.
type ContactList = model.ContactList

// Book owns the page state: contacts, modal visibility and the form session.
type Book = book.Book

// RenderOptions describes per-request overrides such as routes, theme and
// server-side errors.
type RenderOptions = render.RenderOptions

// NewBook exposes the book constructor from the top-level module.
func NewBook(options ...book.Option) *Book {
	return book.New(options...)
}

// NewRegistry returns a registry with the html and text renderers.
func NewRegistry(options ...html.Option) (*render.Registry, error) {
	return renderers.NewRegistry(options...)
}

// Render snapshots the book and renders it with the named renderer. It is the
// simplest entry point for callers that just want page output.
func Render(ctx context.Context, b *Book, rendererName string, options RenderOptions) ([]byte, error) {
	if b == nil {
		return nil, fmt.Errorf("contactbook: book is nil")
	}
	registry, err := renderers.NewRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, b.View(), options)
}

// NewHandler builds the HTTP handler for the book using the default registry
// and embedded stylesheet. Empty theme arguments select the dark contactbook
// theme.
//
// Typical mount:
//
//	h, _ := contactbook.NewHandler(contactbook.NewBook(), "", "")
//	http.ListenAndServe(":8080", h)
func NewHandler(b *Book, themeName, variant string, options ...web.Option) (*web.Handler, error) {
	registry, err := renderers.NewRegistry(html.WithStylesheet(web.AssetsPrefix + html.StylesheetName))
	if err != nil {
		return nil, err
	}
	if themeName == "" && variant == "" {
		themeName, variant = render.DefaultThemeName, render.DefaultThemeVariant
	}
	themeCfg, err := render.ResolveTheme(render.NewManifestSelector(), themeName, variant)
	if err != nil {
		return nil, err
	}
	opts := append([]web.Option{
		web.WithRenderOptions(RenderOptions{Theme: themeCfg}),
		web.WithAssets(AssetsFS()),
	}, options...)
	return web.NewHandler(b, registry, opts...)
}

// AssetsFS exposes the static stylesheet so applications can serve it without
// importing the html renderer package directly.
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(contactbook.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
