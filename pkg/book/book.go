// Package book holds the contact book page state: the contact list, the
// Add-Contact form session and whether the modal is open. Operations are
// synchronous and not safe for concurrent use; transports serialize access.
package book

import (
	"github.com/goliatone/go-contactbook/pkg/form"
	"github.com/goliatone/go-contactbook/pkg/model"
	"github.com/goliatone/go-contactbook/pkg/table"
	"github.com/goliatone/go-contactbook/pkg/validation"
)

const (
	// DefaultTitle is shown in the page header.
	DefaultTitle = "Contact Book"
	// ModalTitle heads the Add-Contact dialog.
	ModalTitle = "Add new Contact"
	// EmptyMessage replaces the table while the list is empty.
	EmptyMessage = "You dont have any friends."
)

// Option configures a Book.
type Option func(*Book)

// WithTitle overrides the page title.
func WithTitle(title string) Option {
	return func(b *Book) {
		if title != "" {
			b.title = title
		}
	}
}

// WithValidator swaps the validation collaborator.
func WithValidator(validator validation.Validator) Option {
	return func(b *Book) {
		if validator != nil {
			b.validator = validator
		}
	}
}

// WithShape replaces the field declaration the form validates against.
func WithShape(shape validation.Shape) Option {
	return func(b *Book) {
		if len(shape.Fields) > 0 {
			b.shape = shape
		}
	}
}

// WithContacts seeds the list. The first contact is rendered first.
func WithContacts(contacts model.ContactList) Option {
	return func(b *Book) {
		b.contacts = contacts.Clone()
	}
}

// WithColumns replaces the table columns.
func WithColumns(columns []table.Column[model.Contact]) Option {
	return func(b *Book) {
		if len(columns) > 0 {
			b.columns = columns
		}
	}
}

// Book is the page state machine.
type Book struct {
	title     string
	shape     validation.Shape
	validator validation.Validator
	columns   []table.Column[model.Contact]

	contacts  model.ContactList
	session   *form.Session
	modalOpen bool
}

// New builds an empty book with the contact shape and default columns.
func New(opts ...Option) *Book {
	b := &Book{
		title:     DefaultTitle,
		shape:     validation.ContactShape(),
		validator: validation.NewSchemaValidator(),
		columns:   Columns(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	b.session = form.NewSession(b.shape, b.validator)
	return b
}

// Columns returns the contact table columns: Name, Surname, E-mail, Phone.
func Columns() []table.Column[model.Contact] {
	return []table.Column[model.Contact]{
		table.Accessor(model.FieldFirstName, "Name", func(c model.Contact) any { return c.FirstName }),
		table.Accessor(model.FieldLastName, "Surname", func(c model.Contact) any { return c.LastName }),
		table.Accessor(model.FieldEmail, "E-mail", func(c model.Contact) any { return c.Email }),
		table.Accessor(model.FieldPhoneNumber, "Phone", func(c model.Contact) any { return c.PhoneNumber }),
	}
}

// SubmitResult reports the outcome of Submit.
type SubmitResult struct {
	Accepted bool
	Contact  model.Contact
	Result   validation.Result
}

// Err returns nil when the submission was accepted, otherwise an error
// wrapping validation.ErrInvalidField.
func (r SubmitResult) Err() error {
	if r.Accepted {
		return nil
	}
	return r.Result.Err()
}

// Title returns the page title.
func (b *Book) Title() string {
	return b.title
}

// OpenModal shows the Add-Contact dialog. The draft is left as is.
func (b *Book) OpenModal() {
	b.modalOpen = true
}

// ModalOpen reports whether the dialog is visible.
func (b *Book) ModalOpen() bool {
	return b.modalOpen
}

// SetValue updates one draft field.
func (b *Book) SetValue(name, value string) {
	b.session.SetValue(name, value)
}

// Session exposes the form session bound by the page controls.
func (b *Book) Session() *form.Session {
	return b.session
}

// Contacts returns a copy of the list, most recent first.
func (b *Book) Contacts() model.ContactList {
	return b.contacts.Clone()
}

// Submit applies values to the draft and validates it. An accepted draft is
// prepended to the list, the draft is reset and the modal closes. A rejected
// draft leaves the list untouched, keeps the per-field errors on the session
// and leaves the modal open so they are shown, even when the post arrived
// with the modal closed.
func (b *Book) Submit(values map[string]string) SubmitResult {
	b.session.Apply(values)

	contact, result := b.session.Submit()
	if !result.Valid {
		b.modalOpen = true
		return SubmitResult{Result: result}
	}

	b.contacts = b.contacts.Prepend(contact)
	b.session.Reset()
	b.modalOpen = false
	return SubmitResult{Accepted: true, Contact: contact, Result: result}
}

// Cancel discards the draft and closes the modal. The list is never touched.
func (b *Book) Cancel() {
	b.session.Reset()
	b.modalOpen = false
}

// Table derives the row model of the current list.
func (b *Book) Table() table.Model {
	return table.New([]model.Contact(b.contacts), b.columns)
}
