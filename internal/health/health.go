package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

type Status struct {
	Path     string
	Exists   bool
	Contacts int
	Error    string
	Latency  time.Duration
}

// OK reports whether the data file is absent (it will be created on first
// use) or parses cleanly.
func (s Status) OK() bool { return s.Error == "" }

// Check inspects the data file at path without creating it.
func Check(ctx context.Context, path string) Status {
	s := Status{Path: path}
	start := time.Now()

	if err := ctx.Err(); err != nil {
		s.Error = err.Error()
		s.Latency = time.Since(start)
		return s
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.Error = err.Error()
		}
		s.Latency = time.Since(start)
		return s
	}
	defer f.Close()
	s.Exists = true

	info, err := f.Stat()
	if err != nil {
		s.Error = err.Error()
		s.Latency = time.Since(start)
		return s
	}
	if info.IsDir() {
		s.Error = fmt.Sprintf("%s is a directory", path)
		s.Latency = time.Since(start)
		return s
	}

	list, err := contacts.Decode(f)
	if err != nil {
		s.Error = err.Error()
	}
	s.Contacts = len(list)
	s.Latency = time.Since(start)
	return s
}
