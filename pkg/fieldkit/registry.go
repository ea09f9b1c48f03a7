package fieldkit

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Renderer writes the markup of one decoration into buf.
type Renderer func(ctx context.Context, buf *bytes.Buffer, d Decoration) error

// Registry maps decoration kinds to renderers. Callers can register new kinds
// or override the built-in icon and button renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[Kind]Renderer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[Kind]Renderer)}
}

// NewDefaultRegistry returns a registry with the icon and button renderers.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(KindIcon, renderIcon)
	registry.MustRegister(KindButton, renderButton)
	return registry
}

// Clone returns a copy that can be mutated independently.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{renderers: maps.Clone(r.renderers)}
}

// Register associates a renderer with kind, replacing any existing entry.
func (r *Registry) Register(kind Kind, renderer Renderer) error {
	if kind = normalizeKind(kind); kind == "" {
		return fmt.Errorf("fieldkit: decoration kind is required")
	}
	if renderer == nil {
		return fmt.Errorf("fieldkit: renderer for %q is nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[kind] = renderer
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind Kind, renderer Renderer) {
	if err := r.Register(kind, renderer); err != nil {
		panic(err)
	}
}

// Renderer returns the renderer registered for kind.
func (r *Registry) Renderer(kind Kind) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[normalizeKind(kind)]
	return renderer, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.renderers))
}
