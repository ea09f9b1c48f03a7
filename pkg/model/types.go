package model

import (
	"slices"
	"strings"
)

// FieldName identifies one of the Contact attributes. Values match the input
// names used by the Add-Contact form.
type FieldName = string

const (
	FieldFirstName   FieldName = "firstName"
	FieldLastName    FieldName = "lastName"
	FieldEmail       FieldName = "email"
	FieldPhoneNumber FieldName = "phoneNumber"
)

// ContactFields lists the Contact attributes in form/table order.
func ContactFields() []FieldName {
	return []FieldName{FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber}
}

// Contact is an entry in the contact book. Contacts are immutable once added.
type Contact struct {
	FirstName   string `json:"firstName" yaml:"firstName"`
	LastName    string `json:"lastName" yaml:"lastName"`
	Email       string `json:"email" yaml:"email"`
	PhoneNumber string `json:"phoneNumber" yaml:"phoneNumber"`
}

// ContactFromDraft copies the draft values into a Contact. Missing keys yield
// empty attributes; callers validate the draft first.
func ContactFromDraft(values map[string]string) Contact {
	return Contact{
		FirstName:   values[FieldFirstName],
		LastName:    values[FieldLastName],
		Email:       values[FieldEmail],
		PhoneNumber: values[FieldPhoneNumber],
	}
}

// Value returns the attribute stored under name, or "" for unknown names.
func (c Contact) Value(name FieldName) string {
	switch name {
	case FieldFirstName:
		return c.FirstName
	case FieldLastName:
		return c.LastName
	case FieldEmail:
		return c.Email
	case FieldPhoneNumber:
		return c.PhoneNumber
	default:
		return ""
	}
}

// DisplayName joins first and last name.
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ContactList is ordered most-recently-added first.
type ContactList []Contact

// Prepend returns a new list with contact placed in front of l. The receiver
// is left untouched so readers holding the previous list never observe a
// partial update.
func (l ContactList) Prepend(contact Contact) ContactList {
	out := make(ContactList, 0, len(l)+1)
	out = append(out, contact)
	out = append(out, l...)
	return out
}

// Len reports the number of contacts.
func (l ContactList) Len() int {
	return len(l)
}

// Clone returns a copy safe for the caller to retain.
func (l ContactList) Clone() ContactList {
	if l == nil {
		return nil
	}
	return slices.Clone(l)
}
