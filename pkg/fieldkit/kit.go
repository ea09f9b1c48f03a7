// Package fieldkit composes labeled text inputs from small templ components:
// Field, Label, Entry, Icon and Button. An Entry binds to a form session by
// field name and reserves leading or trailing space for the decorations
// declared alongside it.
package fieldkit

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/a-h/templ"

	"github.com/goliatone/go-contactbook/pkg/form"
)

const (
	fieldClass   = "flex w-full flex-col"
	labelClass   = "mb-1 text-sm uppercase text-neutral-500"
	wrapperClass = "relative mb-6 flex items-center rounded-md border border-neutral-700 focus-within:border-transparent focus-within:bg-neutral-800 focus-within:ring-2"
	inputClass   = "h-12 w-full bg-transparent outline-none"
	iconClass    = "absolute flex items-center justify-center text-neutral-700 pointer-events-none"
	buttonClass  = "absolute flex h-10 items-center justify-center"
	errorClass   = "-mt-5 mb-4 text-sm text-red-400"
)

// Option configures a Kit.
type Option func(*Kit)

// WithRegistry swaps the decoration renderers.
func WithRegistry(registry *Registry) Option {
	return func(k *Kit) {
		if registry != nil {
			k.registry = registry
		}
	}
}

// Kit renders entries with a specific decoration registry.
type Kit struct {
	registry *Registry
}

// New constructs a Kit with the default registry unless overridden.
func New(options ...Option) *Kit {
	kit := &Kit{}
	for _, opt := range options {
		if opt != nil {
			opt(kit)
		}
	}
	if kit.registry == nil {
		kit.registry = NewDefaultRegistry()
	}
	return kit
}

var defaultKit = New()

// Field lays out its children vertically.
func Field(children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="`+fieldClass+`">`); err != nil {
			return err
		}
		for _, child := range children {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Label renders a <label> with escaped text and pass-through attributes.
func Label(text string, attrs templ.Attributes) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<label class="` + labelClass + `"`)
		writeAttributes(&b, attrs, "class")
		b.WriteString(`>`)
		b.WriteString(templ.EscapeString(text))
		b.WriteString(`</label>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// Entry renders a text input bound to name using the default Kit.
func Entry(binder form.Binder, name string, attrs templ.Attributes, decorations ...Decoration) templ.Component {
	return defaultKit.Entry(binder, name, attrs, decorations...)
}

// Entry renders a text input whose value and error come from binder. The
// name and value attributes are owned by the binding; every other attribute
// is forwarded to the <input>.
func (k *Kit) Entry(binder form.Binder, name string, attrs templ.Attributes, decorations ...Decoration) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var value, message string
		if binder != nil {
			value = binder.Value(name)
			message = binder.Error(name)
		}
		inset := Classify(decorations)

		var buf bytes.Buffer
		buf.WriteString(`<div class="` + wrapperClass + `">`)

		buf.WriteString(`<input class="` + inputClass + " " + inset.Classes() + `"`)
		if _, ok := attrs["id"]; !ok {
			writeAttr(&buf, "id", name)
		}
		writeAttr(&buf, "name", name)
		writeAttr(&buf, "value", value)
		if message != "" {
			writeAttr(&buf, "aria-invalid", "true")
			writeAttr(&buf, "aria-describedby", name+"-error")
		}
		writeAttributes(&buf, attrs, "class", "name", "value")
		buf.WriteString(`>`)

		for _, d := range decorations {
			if err := k.renderDecoration(ctx, &buf, d); err != nil {
				return err
			}
		}
		buf.WriteString(`</div>`)

		if message != "" {
			buf.WriteString(`<p class="` + errorClass + `" id="`)
			buf.WriteString(templ.EscapeString(name + "-error"))
			buf.WriteString(`" role="alert">`)
			buf.WriteString(templ.EscapeString(message))
			buf.WriteString(`</p>`)
		}

		_, err := w.Write(buf.Bytes())
		return err
	})
}

// Decoration renders a single decoration on its own, mostly useful in tests
// and previews.
func (k *Kit) Decoration(d Decoration) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := k.renderDecoration(ctx, &buf, d); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func (k *Kit) renderDecoration(ctx context.Context, buf *bytes.Buffer, d Decoration) error {
	renderer, ok := k.registry.Renderer(d.Kind)
	if !ok {
		// Unknown kinds render their content as-is.
		if d.Content == nil {
			return nil
		}
		return d.Content.Render(ctx, buf)
	}
	if err := renderer(ctx, buf, d); err != nil {
		return fmt.Errorf("fieldkit: render %s decoration: %w", d.Kind, err)
	}
	return nil
}

func renderIcon(ctx context.Context, buf *bytes.Buffer, d Decoration) error {
	buf.WriteString(`<div class="` + iconClass + " " + edgeClass(d.resolvedPosition()) + `" aria-hidden="true"`)
	writeAttributes(buf, d.Attrs, "class")
	buf.WriteString(`>`)
	if d.Content != nil {
		if err := d.Content.Render(ctx, buf); err != nil {
			return err
		}
	} else {
		buf.WriteString(SanitizeSVG(d.SVG))
	}
	buf.WriteString(`</div>`)
	return nil
}

func renderButton(ctx context.Context, buf *bytes.Buffer, d Decoration) error {
	buf.WriteString(`<button class="` + buttonClass + " " + edgeClass(d.resolvedPosition()) + `"`)
	writeAttributes(buf, d.Attrs, "class")
	buf.WriteString(`>`)
	if d.Content != nil {
		if err := d.Content.Render(ctx, buf); err != nil {
			return err
		}
	} else {
		buf.WriteString(templ.EscapeString(d.Label))
	}
	buf.WriteString(`</button>`)
	return nil
}

func edgeClass(position Position) string {
	if position == PositionRight {
		return "right-4"
	}
	return "left-4"
}

type attrWriter interface {
	io.Writer
	WriteString(string) (int, error)
}

func writeAttr(w attrWriter, name, value string) {
	w.WriteString(` `)
	w.WriteString(name)
	w.WriteString(`="`)
	w.WriteString(templ.EscapeString(value))
	w.WriteString(`"`)
}

// writeAttributes writes attrs in sorted order, skipping reserved names and
// names that are not valid attribute identifiers. Boolean true renders as a
// bare attribute and false omits it.
func writeAttributes(w attrWriter, attrs templ.Attributes, reserved ...string) {
	if len(attrs) == 0 {
		return
	}
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if !validAttrName(name) || isReserved(name, reserved) {
			continue
		}
		switch value := attrs[name].(type) {
		case nil:
			continue
		case bool:
			if value {
				w.WriteString(` `)
				w.WriteString(name)
			}
		case string:
			writeAttr(w, name, value)
		default:
			writeAttr(w, name, fmt.Sprint(value))
		}
	}
}

func isReserved(name string, reserved []string) bool {
	for _, candidate := range reserved {
		if strings.EqualFold(name, candidate) {
			return true
		}
	}
	return false
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == ':':
		default:
			return false
		}
	}
	return true
}

// RenderString renders c into a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	if c == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
