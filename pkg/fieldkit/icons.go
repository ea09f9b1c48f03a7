package fieldkit

import "strings"

// Built-in icon glyphs (20x20, filled).
const (
	GlyphUser     = "user"
	GlyphEnvelope = "envelope"
	GlyphPhone    = "phone"
	GlyphX        = "x"
)

var glyphs = map[string]string{
	GlyphUser:     `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256" width="20" height="20" fill="currentColor"><path d="M230.9 212a120.1 120.1 0 0 0-67.1-54.2 72 72 0 1 0-71.6 0A120.1 120.1 0 0 0 25.1 212a8 8 0 1 0 13.8 8 104.1 104.1 0 0 1 178.2 0 8 8 0 1 0 13.8-8Z"/></svg>`,
	GlyphEnvelope: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256" width="20" height="20" fill="currentColor"><path d="M224 48H32a8 8 0 0 0-8 8v136a16 16 0 0 0 16 16h176a16 16 0 0 0 16-16V56a8 8 0 0 0-8-8Zm-96 85.2L52.6 64h150.8Z"/></svg>`,
	GlyphPhone:    `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256" width="20" height="20" fill="currentColor"><path d="M231.9 175.1A56.2 56.2 0 0 1 176 224C96.6 224 32 159.4 32 80a56.2 56.2 0 0 1 48.9-55.9 16 16 0 0 1 16.6 9.5l21.1 47.1a16 16 0 0 1-1.3 15.1l-21.3 25.4a114.5 114.5 0 0 0 57.2 57l25-21.3a16 16 0 0 1 15.2-1.4l47 21.1a16 16 0 0 1 9.5 16.6Z"/></svg>`,
	GlyphX:        `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 256 256" width="20" height="20" fill="currentColor"><path d="M205.7 194.3a8 8 0 0 1-11.4 11.4L128 139.3l-66.3 66.4a8 8 0 0 1-11.4-11.4l66.4-66.3-66.4-66.3a8 8 0 0 1 11.4-11.4l66.3 66.4 66.3-66.4a8 8 0 0 1 11.4 11.4L139.3 128Z"/></svg>`,
}

// Glyph returns the markup of a built-in icon, or "" when name is unknown.
func Glyph(name string) string {
	return glyphs[strings.ToLower(strings.TrimSpace(name))]
}

// GlyphIcon describes an icon decoration using a built-in glyph.
func GlyphIcon(name string) Decoration {
	return Icon(Glyph(name))
}
