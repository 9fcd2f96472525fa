package contacts

import (
	"context"
	"strings"
)

// Contact is a single phonebook entry. Two contacts are equal when both
// fields are equal; the zero value is a valid (empty) contact.
type Contact struct {
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
}

// String returns the contact in its on-disk form, name:phone.
func (c Contact) String() string {
	return c.Name + separator + c.Phone
}

// Validate reports a *FieldError when c cannot be stored as one
// name:phone line.
func (c Contact) Validate() error {
	if strings.Contains(c.Name, separator) {
		return &FieldError{Field: "name", Value: c.Name}
	}
	if strings.ContainsAny(c.Name, "\r\n") {
		return &FieldError{Field: "name", Value: c.Name}
	}
	if strings.ContainsAny(c.Phone, "\r\n") {
		return &FieldError{Field: "phone", Value: c.Phone}
	}
	return nil
}

// Store defines the operations front ends need from contact persistence.
// Indices are 0-based positions in the list returned by ReadAll.
type Store interface {
	// Create adds c unless an equal contact already exists, in which case
	// it returns false and writes nothing.
	Create(ctx context.Context, c Contact) (bool, error)

	// ReadAll returns every contact in file order.
	ReadAll(ctx context.Context) ([]Contact, error)

	// Update replaces the contact at index.
	Update(ctx context.Context, index int, c Contact) error

	// Delete removes the contact at index; later contacts shift down.
	Delete(ctx context.Context, index int) error
}
