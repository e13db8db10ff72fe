package property

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var recordFormat = &pretty.Options{Width: 0, Indent: "    "}

// Store persists the property record to one fixed file. Every write
// replaces the previous content entirely.
type Store struct {
	path string
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Write re-indents raw with four spaces per level and overwrites the file.
// The same input always produces the same bytes on disk.
func (s *Store) Write(raw []byte) (int, error) {
	if s.path == "" {
		return 0, errors.New("store path is required")
	}
	if !gjson.ValidBytes(raw) {
		return 0, fmt.Errorf("%w: record is not valid JSON", ErrMalformed)
	}

	formatted := bytes.TrimRight(pretty.PrettyOptions(raw, recordFormat), "\n")

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	if err := os.WriteFile(s.path, formatted, 0o644); err != nil {
		return 0, err
	}
	return len(formatted), nil
}
