// Package model defines the contact book records shared by the form session,
// the validator, the table projection and the renderers. Field names double
// as form input names and JSON/YAML keys so a Contact can be built from a
// submitted draft without a mapping table.
package model
