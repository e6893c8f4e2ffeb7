package jsonstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasklist/internal/task"
)

// JSON-backed storage. Single file, human-readable, portable.
// No locking: overlapping invocations race and the last full overwrite
// wins. Fine for a local single-user CLI.

// QuarantineSuffix is appended to the task file path when a malformed
// file is preserved before being overwritten.
const QuarantineSuffix = ".corrupt"

// Store loads and saves a task list from one file.
type Store struct {
	path string
	log  *log.Logger

	// malformed is set when the last Load discarded unparsable content.
	malformed bool
}

// New returns a Store for path. Diagnostics go to logger.
func New(path string, logger *log.Logger) *Store {
	return &Store{path: path, log: logger}
}

// Path returns the task file path.
func (s *Store) Path() string { return s.path }

// Load reads the task file. A missing file is an empty list. Content
// that is not an array of task records is reported as a diagnostic and
// also yields an empty list; the file itself is left as it is.
func (s *Store) Load() (task.List, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug("task file does not exist yet", "file", s.path)
			return task.List{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	list, err := decode(b)
	if err != nil {
		s.malformed = true
		s.log.Error("could not parse tasks file, starting with an empty task list", "file", s.path, "err", err)
		return task.List{}, nil
	}
	s.malformed = false
	s.log.Debug("loaded tasks", "file", s.path, "count", len(list))
	return list, nil
}

// Save overwrites the task file with list. If the previous Load found
// malformed content, that content is first copied aside.
func (s *Store) Save(list task.List) error {
	if list == nil {
		list = task.List{}
	}
	if s.malformed {
		if err := s.quarantine(); err != nil {
			return err
		}
		s.malformed = false
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	s.log.Debug("saved tasks", "file", s.path, "count", len(list))
	return nil
}

func (s *Store) quarantine() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read file: %w", err)
	}
	dst := s.path + QuarantineSuffix
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return fmt.Errorf("quarantine: %w", err)
	}
	s.log.Warn("kept a copy of the unparsable task file", "file", dst)
	return nil
}

// decode checks the document shape against the task schema, then
// unmarshals it.
func decode(b []byte) (task.List, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("json unmarshal: unexpected data after top-level value")
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var list task.List
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return list, nil
}
