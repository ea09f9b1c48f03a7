package render

import (
	"context"

	"github.com/goliatone/go-contactbook/pkg/book"
)

// Renderer converts a page snapshot into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view book.View, options RenderOptions) ([]byte, error)
}
