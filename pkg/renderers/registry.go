// Package renderers wires the built-in page renderers into a registry.
package renderers

import (
	"fmt"

	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers/html"
	"github.com/goliatone/go-contactbook/pkg/renderers/text"
)

// NewRegistry registers the html and text renderers.
func NewRegistry(htmlOptions ...html.Option) (*render.Registry, error) {
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return nil, fmt.Errorf("renderers: %w", err)
	}

	registry := render.NewRegistry()
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}
	if err := registry.Register(text.New()); err != nil {
		return nil, err
	}
	return registry, nil
}
