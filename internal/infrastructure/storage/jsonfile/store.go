// Package jsonfile persists collections as whole JSON documents in a data
// directory. Each document is guarded by its own mutex for the duration of a
// read-modify-write, so concurrent requests inside one process no longer lose
// updates; nothing coordinates separate processes sharing the directory.
//
// Reads never fail: a missing or unreadable file degrades to the document's
// default value. When the directory turns out to be read-only, writes are kept
// in an in-memory shadow copy that later reads observe. The shadow copy is
// lost on restart.
package jsonfile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"sort"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
)

// Store is the data directory shared by all documents.
type Store struct {
	dir string
	log zerolog.Logger

	mu       sync.Mutex
	docs     map[string]shadowReporter
	onShadow func(file string)
}

type shadowReporter interface {
	Shadowed() bool
}

// New returns a Store rooted at dir. The directory is not touched until
// EnsureDir or the first write.
func New(dir string, log zerolog.Logger) *Store {
	return &Store{
		dir:  dir,
		log:  log.With().Str("component", "jsonfile").Logger(),
		docs: make(map[string]shadowReporter),
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// OnShadow registers fn to be called each time a write falls back to memory.
func (s *Store) OnShadow(fn func(file string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onShadow = fn
}

// EnsureDir creates the data directory if needed. A read-only filesystem is
// not an error: documents fall back to shadow copies on first write.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		if isReadOnly(err) {
			s.log.Warn().Err(err).Str("dir", s.dir).Msg("data directory not writable, changes will be kept in memory")
			return nil
		}
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// Ready reports whether the data directory can be read.
func (s *Store) Ready() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data dir %s is not a directory", s.dir)
	}
	return nil
}

// Shadowed lists the documents currently served from memory.
func (s *Store) Shadowed() []string {
	s.mu.Lock()
	docs := maps.Clone(s.docs)
	s.mu.Unlock()

	// Documents lock themselves; s.mu must not be held here.
	var out []string
	for name, d := range docs {
		if d.Shadowed() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (s *Store) register(name string, d shadowReporter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = d
}

func (s *Store) shadowed(name string) {
	s.mu.Lock()
	fn := s.onShadow
	s.mu.Unlock()
	if fn != nil {
		fn(name)
	}
}

func isReadOnly(err error) bool {
	return errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EROFS)
}
