package fieldkit

import (
	"strings"

	"github.com/a-h/templ"
)

// Kind names the sort of decoration composed inside an Entry.
type Kind string

const (
	KindIcon   Kind = "icon"
	KindButton Kind = "button"
)

// Position places a decoration at the leading or trailing edge of an Entry.
// The zero value means "not declared".
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// Decoration is a non-input element layered over an Entry. Kind and Position
// are declared up front so the Entry can reserve inset space without looking
// at rendered output.
type Decoration struct {
	Kind     Kind
	Position Position
	// SVG is the icon markup for KindIcon; it is sanitized before rendering.
	SVG string
	// Label is the escaped text content of a button when Content is nil.
	Label string
	// Content replaces the default body of the decoration.
	Content templ.Component
	Attrs   templ.Attributes
}

// Icon describes a decorative icon. Icons default to the left edge.
func Icon(svg string) Decoration {
	return Decoration{Kind: KindIcon, SVG: svg}
}

// Button describes an inline button. Buttons default to the right edge and
// forward attrs (type, name, value, formaction, onclick, ...) to the element.
func Button(label string, attrs templ.Attributes) Decoration {
	return Decoration{Kind: KindButton, Label: label, Attrs: attrs}
}

// Custom describes a decoration of an application-defined kind.
func Custom(kind Kind, content templ.Component) Decoration {
	return Decoration{Kind: kind, Content: content}
}

// At returns a copy of d with an explicit position.
func (d Decoration) At(position Position) Decoration {
	d.Position = position
	return d
}

// WithContent returns a copy of d rendering content as its body.
func (d Decoration) WithContent(content templ.Component) Decoration {
	d.Content = content
	return d
}

// resolvedPosition applies the kind's default position for rendering.
func (d Decoration) resolvedPosition() Position {
	if d.Position == PositionLeft || d.Position == PositionRight {
		return d.Position
	}
	switch normalizeKind(d.Kind) {
	case KindIcon:
		return PositionLeft
	case KindButton:
		return PositionRight
	default:
		return ""
	}
}

func normalizeKind(kind Kind) Kind {
	return Kind(strings.ToLower(strings.TrimSpace(string(kind))))
}

// Inset is the padding an Entry reserves for its decorations.
type Inset struct {
	Leading  bool
	Trailing bool
	// Unclassified counts decorations with an unknown kind and no declared
	// position. They reserve no space.
	Unclassified int
}

// Classify decides which edges need inset space.
//
// A decoration is leading when it is declared left, or when it is an icon not
// declared right. It is trailing when it is declared right, or when it is a
// button, whatever its declared position.
func Classify(decorations []Decoration) Inset {
	var inset Inset
	for _, d := range decorations {
		kind := normalizeKind(d.Kind)
		leading := d.Position == PositionLeft || (kind == KindIcon && d.Position != PositionRight)
		trailing := d.Position == PositionRight || kind == KindButton

		if leading {
			inset.Leading = true
		}
		if trailing {
			inset.Trailing = true
		}
		if !leading && !trailing {
			inset.Unclassified++
		}
	}
	return inset
}

// Classes returns the padding utility classes for the input element.
func (i Inset) Classes() string {
	leading, trailing := "pl-4", "pr-4"
	if i.Leading {
		leading = "pl-12"
	}
	if i.Trailing {
		trailing = "pr-12"
	}
	return leading + " " + trailing
}
