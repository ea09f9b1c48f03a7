package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the page state.
type RenderOptions struct {
	// Routes are the form actions the page posts to.
	Routes Routes
	// Theme carries resolved tokens, partials and asset URLs. Nil renders
	// with the built-in look.
	Theme *theme.RendererConfig
	// Errors surfaces extra feedback keyed by field path (see
	// MapErrorPayload). Messages for declared fields are shown next to the
	// field when the view carries none; the rest is shown above the form.
	Errors map[string][]string
}

// Routes are the endpoints behind the page controls.
type Routes struct {
	Open   string `json:"open"`
	Submit string `json:"submit"`
	Cancel string `json:"cancel"`
}

// DefaultRoutes returns the routes served by the web transport.
func DefaultRoutes() Routes {
	return Routes{
		Open:   "/contacts/new",
		Submit: "/contacts",
		Cancel: "/contacts/cancel",
	}
}

// WithDefaults fills empty routes.
func (r Routes) WithDefaults() Routes {
	defaults := DefaultRoutes()
	if r.Open == "" {
		r.Open = defaults.Open
	}
	if r.Submit == "" {
		r.Submit = defaults.Submit
	}
	if r.Cancel == "" {
		r.Cancel = defaults.Cancel
	}
	return r
}
