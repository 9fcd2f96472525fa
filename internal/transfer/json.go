package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeanpaul/phonebook/internal/contacts"
	"github.com/jeanpaul/phonebook/internal/schema"
)

type document struct {
	Contacts []contacts.Contact `json:"contacts"`
}

var validator = schema.NewValidator()

// ExportJSON writes contacts as {"contacts":[{"name":..,"phone":..}]}.
func ExportJSON(w io.Writer, list []contacts.Contact) error {
	if list == nil {
		list = []contacts.Contact{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Contacts: list})
}

// ReadJSON parses and validates a contacts document.
func ReadJSON(r io.Reader) ([]contacts.Contact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if err := validator.Validate(schema.ContactsDocument, data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Contacts, nil
}
