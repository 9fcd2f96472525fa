package contacts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// FileStore keeps contacts in a line-delimited text file. Every call reads
// the whole file; mutations other than a plain append rewrite it atomically.
type FileStore struct {
	mu        sync.Mutex
	path      string
	observers []Observer
	logger    *slog.Logger
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithObserver registers o to be notified after each successful mutation.
func WithObserver(o Observer) Option {
	return func(s *FileStore) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// WithLogger sets the logger used for operation traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewFileStore opens the store at path, creating the file (and its parent
// directories) when it does not exist yet.
func NewFileStore(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the data file used by this store.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Create(ctx context.Context, c Contact) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := c.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, dirty, dropped, err := s.load()
	if err != nil {
		return false, err
	}
	if slices.Contains(list, c) {
		s.logger.Debug("contact already exists", "name", c.Name)
		return false, nil
	}

	if dirty {
		err = s.rewrite(append(list, c), dropped)
	} else {
		err = s.append(c)
	}
	if err != nil {
		return false, err
	}

	s.logger.Debug("contact created", "name", c.Name, "index", len(list))
	s.notify(fmt.Sprintf("%s added", c.Name), SeveritySuccess)
	return true, nil
}

func (s *FileStore) ReadAll(ctx context.Context) ([]Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, _, _, err := s.load()
	return list, err
}

func (s *FileStore) Update(ctx context.Context, index int, c Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, _, dropped, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(list) {
		return &IndexError{Index: index, Len: len(list)}
	}

	list[index] = c
	if err := s.rewrite(list, dropped); err != nil {
		return err
	}

	s.logger.Debug("contact updated", "name", c.Name, "index", index)
	s.notify(fmt.Sprintf("%s updated", c.Name), SeverityInfo)
	return nil
}

func (s *FileStore) Delete(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, _, dropped, err := s.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(list) {
		return &IndexError{Index: index, Len: len(list)}
	}

	removed := list[index]
	if err := s.rewrite(slices.Delete(list, index, index+1), dropped); err != nil {
		return err
	}

	s.logger.Debug("contact deleted", "name", removed.Name, "index", index)
	s.notify(fmt.Sprintf("%s deleted", removed.Name), SeverityWarning)
	return nil
}

func (s *FileStore) notify(message string, severity Severity) {
	for _, o := range s.observers {
		o.DataChanged(message, severity)
	}
}

func (s *FileStore) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	return f.Close()
}

func (s *FileStore) load() ([]Contact, bool, int, error) {
	if err := s.ensureFile(); err != nil {
		return nil, false, 0, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, false, 0, err
	}
	defer f.Close()

	list, dirty, dropped, err := decode(f)
	if err != nil {
		return nil, false, 0, fmt.Errorf("read %s: %w", s.path, err)
	}
	return list, dirty, dropped, nil
}

func (s *FileStore) append(c Contact) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, c.String()+"\n"); err != nil {
		f.Close()
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	return f.Close()
}

// rewrite replaces the data file with list via a temp file and rename.
// dropped is the number of lines after the empty terminator that the new
// file will not contain.
func (s *FileStore) rewrite(list []Contact, dropped int) error {
	if dropped > 0 {
		s.logger.Warn("discarding lines after empty line", "path", s.path, "lines", dropped)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(Encode(list)); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("rewrite %s: %w", s.path, err)
	}
	return os.Rename(tmp.Name(), s.path)
}
