package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// writeFile is swapped in tests to simulate a read-only filesystem.
var writeFile = os.WriteFile

// Document is one JSON file holding a value of type T.
type Document[T any] struct {
	store      *Store
	name       string
	path       string
	newDefault func() T
	log        zerolog.Logger

	mu     sync.Mutex
	shadow []byte
}

// NewDocument binds filename inside the store's directory. newDefault builds
// the value used when the file is missing or unreadable.
func NewDocument[T any](s *Store, filename string, newDefault func() T) *Document[T] {
	d := &Document[T]{
		store:      s,
		name:       filename,
		path:       filepath.Join(s.dir, filename),
		newDefault: newDefault,
		log:        s.log.With().Str("file", filename).Logger(),
	}
	s.register(filename, d)
	return d
}

// Name returns the document's file name.
func (d *Document[T]) Name() string { return d.name }

// Shadowed reports whether writes are currently kept in memory.
func (d *Document[T]) Shadowed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shadow != nil
}

// Load returns the current value.
func (d *Document[T]) Load(ctx context.Context) (T, error) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.read(), nil
}

// Update applies fn to the current value and writes the result while holding
// the document lock. When fn fails nothing is written.
func (d *Document[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := fn(d.read())
	if err != nil {
		return zero, err
	}
	if err := d.write(next); err != nil {
		return zero, err
	}
	return next, nil
}

// Seed writes v when the file does not exist yet and reports whether it did.
func (d *Document[T]) Seed(v T) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.shadow != nil {
		return false, nil
	}
	if _, err := os.Stat(d.path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		d.log.Warn().Err(err).Msg("cannot stat document, skipping seed")
		return false, nil
	}
	if err := d.write(v); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Document[T]) read() T {
	raw := d.shadow
	if raw == nil {
		b, err := os.ReadFile(d.path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				d.log.Error().Err(err).Msg("read failed, using default")
			}
			return d.newDefault()
		}
		raw = b
	}

	v := d.newDefault()
	if err := json.Unmarshal(raw, &v); err != nil {
		d.log.Error().Err(err).Msg("decode failed, using default")
		return d.newDefault()
	}
	return v
}

func (d *Document[T]) write(v T) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.name, err)
	}
	b = append(b, '\n')

	if d.shadow == nil {
		err = writeFile(d.path, b, 0o644)
		if err == nil {
			return nil
		}
		if !isReadOnly(err) {
			return fmt.Errorf("write %s: %w", d.name, err)
		}
		d.log.Warn().Err(err).Msg("filesystem not writable, keeping document in memory")
	}

	d.shadow = bytes.Clone(b)
	d.store.shadowed(d.name)
	return nil
}
