// Package template defines the template-engine seam used by the page and
// table renderers. Implementations live in sub-packages (see pongo).
package template
