// Package transfer moves contacts between the phonebook and external
// files: spreadsheets, JSON documents and other phonebook files.
package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

// Read loads contacts from path, choosing the format by extension:
// .xlsx, .json, anything else is read as a phonebook text file.
func Read(path string) ([]contacts.Contact, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		list, err := ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return list, nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return contacts.Decode(f)
	}
}

// Export writes list to path in the format implied by its extension:
// .xlsx, .json, .md, anything else in the phonebook text format.
func Export(path string, list []contacts.Contact) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ExportXLSX(path, list)
	case ".md":
		return os.WriteFile(path, []byte(Markdown(list)), 0644)
	case ".json":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := ExportJSON(f, list); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return os.WriteFile(path, contacts.Encode(list), 0644)
	}
}

// Expand resolves a glob pattern (with ** support) to a sorted list of
// files. A pattern without meta characters is returned as is so that a
// missing file surfaces as an open error later.
func Expand(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	slices.Sort(matches)
	return matches, nil
}

// Result summarises an import.
type Result struct {
	Added   int
	Skipped int
}

// Check rejects the first contact that the store would refuse, so a batch
// is accepted or refused as a whole.
func Check(list []contacts.Contact) error {
	for i, c := range list {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("contact %d: %w", i+1, err)
		}
	}
	return nil
}

// Import creates every contact in order; contacts already present are
// counted as skipped. Nothing is written unless every contact passes Check.
func Import(ctx context.Context, store contacts.Store, list []contacts.Contact) (Result, error) {
	var res Result
	if err := Check(list); err != nil {
		return res, err
	}
	for _, c := range list {
		ok, err := store.Create(ctx, c)
		if err != nil {
			return res, fmt.Errorf("import %q: %w", c.Name, err)
		}
		if ok {
			res.Added++
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

// Merge returns current with each incoming contact appended unless an equal
// contact is already present, mirroring what Import does to the store.
func Merge(current, incoming []contacts.Contact) []contacts.Contact {
	merged := slices.Clone(current)
	for _, c := range incoming {
		if !slices.Contains(merged, c) {
			merged = append(merged, c)
		}
	}
	return merged
}

// Preview renders the unified diff an import would apply to the data file
// named name. It is empty when nothing would change, and fails with the
// same error Import would return for an invalid contact.
func Preview(name string, current, incoming []contacts.Contact) (string, error) {
	if err := Check(incoming); err != nil {
		return "", err
	}
	before := string(contacts.Encode(current))
	after := string(contacts.Encode(Merge(current, incoming)))
	if before == after {
		return "", nil
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (after import)", before, edits)), nil
}
