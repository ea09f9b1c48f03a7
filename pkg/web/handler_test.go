package web_test

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goliatone/go-contactbook/pkg/book"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/render"
	"github.com/goliatone/go-contactbook/pkg/renderers"
	"github.com/goliatone/go-contactbook/pkg/renderers/html"
	"github.com/goliatone/go-contactbook/pkg/testsupport"
	"github.com/goliatone/go-contactbook/pkg/validation"
	"github.com/goliatone/go-contactbook/pkg/web"
)

func newHandler(t *testing.T, b *book.Book, opts ...web.Option) *web.Handler {
	t.Helper()
	registry, err := renderers.NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	opts = append([]web.Option{web.WithLogger(log.New(io.Discard, "", 0))}, opts...)
	h, err := web.NewHandler(b, registry, opts...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func formFor(contact model.Contact) url.Values {
	form := url.Values{}
	for name, value := range testsupport.Draft(contact) {
		form.Set(name, value)
	}
	return form
}

func TestHandler_PageEmpty(t *testing.T) {
	h := newHandler(t, book.New())
	rec := do(t, h, http.MethodGet, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "You dont have any friends.") {
		t.Fatalf("expected empty message:\n%s", rec.Body.String())
	}
}

func TestHandler_OpenModal(t *testing.T) {
	b := book.New()
	h := newHandler(t, b)

	rec := do(t, h, http.MethodPost, "/contacts/new", url.Values{})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if !b.ModalOpen() {
		t.Fatalf("expected modal open")
	}

	page := do(t, h, http.MethodGet, "/", nil)
	if !strings.Contains(page.Body.String(), "<dialog open") {
		t.Fatalf("expected dialog in page:\n%s", page.Body.String())
	}
}

func TestHandler_SubmitValid(t *testing.T) {
	b := book.New()
	h := newHandler(t, b)
	do(t, h, http.MethodPost, "/contacts/new", url.Values{})

	rec := do(t, h, http.MethodPost, "/contacts", formFor(testsupport.Ada()))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if b.Contacts().Len() != 1 {
		t.Fatalf("expected one contact, got %d", b.Contacts().Len())
	}
	if b.ModalOpen() {
		t.Fatalf("expected modal closed")
	}

	page := do(t, h, http.MethodGet, "/", nil).Body.String()
	for _, cell := range []string{">Ada</td>", ">Lovelace</td>", ">ada@example.com</td>", ">123</td>"} {
		if !strings.Contains(page, cell) {
			t.Fatalf("expected %q in page:\n%s", cell, page)
		}
	}
}

func TestHandler_SubmitInvalid(t *testing.T) {
	b := book.New()
	h := newHandler(t, b)
	do(t, h, http.MethodPost, "/contacts/new", url.Values{})

	form := formFor(testsupport.Ada())
	form.Set(model.FieldFirstName, "")
	rec := do(t, h, http.MethodPost, "/contacts", form)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, validation.DefaultRequiredMessage) {
		t.Fatalf("expected firstName error in body:\n%s", body)
	}
	if !strings.Contains(body, `id="firstName-error"`) {
		t.Fatalf("expected error attached to firstName:\n%s", body)
	}
	if b.Contacts().Len() != 0 {
		t.Fatalf("list must stay empty")
	}
	if !b.ModalOpen() {
		t.Fatalf("modal must stay open")
	}
}

func TestHandler_SubmitInvalidWithoutOpenModal(t *testing.T) {
	b := book.New()
	h := newHandler(t, b)

	form := formFor(testsupport.Ada())
	form.Set(model.FieldFirstName, "")
	rec := do(t, h, http.MethodPost, "/contacts", form)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	for _, fragment := range []string{"<dialog open", validation.DefaultRequiredMessage, `id="firstName-error"`} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
	if !b.ModalOpen() {
		t.Fatalf("modal must be open after a rejected submit")
	}
}

// cancellingRenderer cancels the book through the handler before rendering,
// simulating a cancel that lands right after a rejected submit.
type cancellingRenderer struct {
	render.Renderer
	handler http.Handler
}

func (r *cancellingRenderer) Render(ctx context.Context, view book.View, options render.RenderOptions) ([]byte, error) {
	if r.handler != nil {
		req := httptest.NewRequest(http.MethodPost, "/contacts/cancel", nil)
		r.handler.ServeHTTP(httptest.NewRecorder(), req)
	}
	return r.Renderer.Render(ctx, view, options)
}

func TestHandler_SubmitInvalidRendersItsOwnSnapshot(t *testing.T) {
	htmlRenderer, err := html.New()
	if err != nil {
		t.Fatalf("html renderer: %v", err)
	}
	wrapped := &cancellingRenderer{Renderer: htmlRenderer}
	registry := render.NewRegistry()
	registry.MustRegister(wrapped)

	b := book.New()
	h, err := web.NewHandler(b, registry, web.WithLogger(log.New(io.Discard, "", 0)))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	wrapped.handler = h

	form := formFor(testsupport.Ada())
	form.Set(model.FieldFirstName, "")
	rec := do(t, h, http.MethodPost, "/contacts", form)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), validation.DefaultRequiredMessage) {
		t.Fatalf("expected the rejected draft's errors in body:\n%s", rec.Body.String())
	}
	if b.ModalOpen() || b.Session().Dirty() {
		t.Fatalf("expected the concurrent cancel to have applied")
	}
}

func TestHandler_Cancel(t *testing.T) {
	b := book.New()
	h := newHandler(t, b)
	do(t, h, http.MethodPost, "/contacts/new", url.Values{})
	form := formFor(testsupport.Ada())
	form.Set(model.FieldEmail, "broken")
	do(t, h, http.MethodPost, "/contacts", form)

	rec := do(t, h, http.MethodPost, "/contacts/cancel", formFor(testsupport.Ada()))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if b.ModalOpen() {
		t.Fatalf("expected modal closed")
	}
	if b.Session().Dirty() {
		t.Fatalf("expected draft reset")
	}
	if b.Contacts().Len() != 0 {
		t.Fatalf("cancel must not add contacts")
	}
}

func TestHandler_Snapshot(t *testing.T) {
	b := book.New(book.WithContacts(model.ContactList{testsupport.Ada()}))
	h := newHandler(t, b)

	rec := do(t, h, http.MethodGet, "/contacts?format=text", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Lovelace") {
		t.Fatalf("expected contact in snapshot:\n%s", rec.Body.String())
	}

	if rec := do(t, h, http.MethodGet, "/contacts?format=pdf", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestHandler_MethodsAndHealth(t *testing.T) {
	h := newHandler(t, book.New())

	if rec := do(t, h, http.MethodGet, "/contacts/new", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET open status = %d, want 405", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/contacts", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE submit status = %d, want 405", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/missing", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d, want 404", rec.Code)
	}
}

func TestHandler_Assets(t *testing.T) {
	h := newHandler(t, book.New(), web.WithAssets(html.AssetsFS()))
	rec := do(t, h, http.MethodGet, "/assets/"+html.StylesheetName, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("asset status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "--accent") {
		t.Fatalf("unexpected stylesheet body")
	}
}

func TestHandler_ThemeOptions(t *testing.T) {
	cfg, err := render.ResolveTheme(nil, "", "light")
	if err != nil {
		t.Fatalf("resolve theme: %v", err)
	}
	h := newHandler(t, book.New(), web.WithRenderOptions(render.RenderOptions{Theme: cfg}))
	body := do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, `data-theme-variant="light"`) {
		t.Fatalf("expected theme in page:\n%s", body)
	}
}

func TestNewHandler_RequiresHTMLRenderer(t *testing.T) {
	if _, err := web.NewHandler(book.New(), render.NewRegistry()); err == nil {
		t.Fatalf("expected error without html renderer")
	}
	if _, err := web.NewHandler(nil, nil); err == nil {
		t.Fatalf("expected error without book")
	}
}
