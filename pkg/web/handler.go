// Package web serves the contact book page over HTTP. Browser events map onto
// Book operations: opening the dialog, submitting the draft and cancelling.
// The Book is not safe for concurrent use, so every access goes through one
// mutex.
package web

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/render"
)

const (
	// DefaultFormat is the renderer used for the page.
	DefaultFormat = "html"
	// AssetsPrefix is the URL prefix static assets are served under.
	AssetsPrefix = "/assets/"
)

// Option configures a Handler.
type Option func(*Handler)

// WithRenderOptions sets the options passed to every render (theme, routes).
func WithRenderOptions(options render.RenderOptions) Option {
	return func(h *Handler) {
		h.options = options
	}
}

// WithAssets serves files under AssetsPrefix.
func WithAssets(files fs.FS) Option {
	return func(h *Handler) {
		h.assets = files
	}
}

// WithLogger overrides the logger used for write failures.
func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler routes page requests onto a Book.
type Handler struct {
	mu   sync.Mutex
	book *book.Book

	registry *render.Registry
	options  render.RenderOptions
	assets   fs.FS
	logger   *log.Logger
	mux      *http.ServeMux
}

// NewHandler binds b to the renderers in registry. The registry must provide
// the html renderer.
func NewHandler(b *book.Book, registry *render.Registry, opts ...Option) (*Handler, error) {
	if b == nil {
		return nil, fmt.Errorf("web: book is required")
	}
	if registry == nil || !registry.Has(DefaultFormat) {
		return nil, fmt.Errorf("web: renderer %q is required", DefaultFormat)
	}
	h := &Handler{
		book:     b,
		registry: registry,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.options.Routes = h.options.Routes.WithDefaults()
	h.mux = h.routes()
	return h, nil
}

// Routes returns the request multiplexer.
func (h *Handler) Routes() http.Handler {
	return h.mux
}

func (h *Handler) routes() *http.ServeMux {
	routes := h.options.Routes

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", h.handlePage)
	mux.HandleFunc(routes.Open, h.handleOpen)
	mux.HandleFunc(routes.Submit, h.handleSubmit)
	mux.HandleFunc(routes.Cancel, h.handleCancel)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.assets != nil {
		mux.Handle(AssetsPrefix, http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(h.assets))))
	}
	return mux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		methodNotAllowed(w, http.MethodGet, http.MethodHead)
		return
	}
	h.writePage(w, r, DefaultFormat, http.StatusOK)
}

func (h *Handler) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	h.mu.Lock()
	h.book.OpenModal()
	h.mu.Unlock()
	redirectHome(w, r)
}

// handleSubmit serves both the snapshot (GET, ?format=) and the form post.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		format := strings.TrimSpace(r.URL.Query().Get("format"))
		if format == "" {
			format = DefaultFormat
		}
		h.writePage(w, r, format, http.StatusOK)
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}

		h.mu.Lock()
		values := make(map[string]string)
		for _, name := range h.book.Session().Shape().Names() {
			if _, ok := r.PostForm[name]; ok {
				values[name] = r.PostForm.Get(name)
			}
		}
		result := h.book.Submit(values)
		view := h.book.View()
		h.mu.Unlock()

		if result.Accepted {
			redirectHome(w, r)
			return
		}
		renderer, err := h.registry.Get(DefaultFormat)
		if err != nil {
			http.Error(w, fmt.Sprintf("renderer %q not found", DefaultFormat), http.StatusInternalServerError)
			return
		}
		h.writeView(w, r, renderer, view, http.StatusUnprocessableEntity)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodHead, http.MethodPost)
	}
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	h.mu.Lock()
	h.book.Cancel()
	h.mu.Unlock()
	redirectHome(w, r)
}

func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, format string, status int) {
	renderer, err := h.registry.Get(format)
	if err != nil {
		http.Error(w, fmt.Sprintf("renderer %q not found", format), http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	view := h.book.View()
	h.mu.Unlock()

	h.writeView(w, r, renderer, view, status)
}

// writeView renders a snapshot taken by the caller while it held the lock.
func (h *Handler) writeView(w http.ResponseWriter, r *http.Request, renderer render.Renderer, view book.View, status int) {
	body, err := renderer.Render(r.Context(), view, h.options)
	if err != nil {
		http.Error(w, fmt.Sprintf("render: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		h.logger.Printf("write response: %v", err)
	}
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
