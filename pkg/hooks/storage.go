package hooks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ShubSpyder/custom-hooks/pkg/reactive"
	"github.com/ShubSpyder/custom-hooks/pkg/storage"
)

// Stored is a value persisted under a key in a storage.Store, round-tripped
// through JSON. A missing or corrupt entry falls back to the default the
// hook was created with; the failure is captured in the error signal rather
// than propagated.
type Stored[T any] struct {
	store    storage.Store
	key      string
	fallback T
	ctx      context.Context

	value *reactive.Signal[T]
	err   *reactive.Signal[error]
}

// NewStored reads key from store and parses it as JSON into T. Missing
// entries silently use fallback; corrupt entries and read failures use
// fallback and capture the error.
func NewStored[T any](store storage.Store, key string, fallback T) *Stored[T] {
	ctx := context.Background()
	if rc := reactive.UseCtx(); rc != nil {
		ctx = rc.StdContext()
	}

	s := &Stored[T]{
		store:    store,
		key:      key,
		fallback: fallback,
		ctx:      ctx,
		value:    reactive.NewSignal(fallback),
		err:      reactive.NewSignal[error](nil),
	}

	data, err := store.Read(ctx, key)
	switch {
	case err == nil:
		var v T
		if uerr := json.Unmarshal(data, &v); uerr != nil {
			s.err.Set(fmt.Errorf("stored %q: parse: %w", key, uerr))
		} else {
			s.value.Set(v)
		}
	case errors.Is(err, storage.ErrNotFound):
		// Fallback stays; absence is not an error.
	default:
		s.err.Set(fmt.Errorf("stored %q: read: %w", key, err))
	}

	return s
}

// Get returns the current value, subscribing the current listener.
func (s *Stored[T]) Get() T { return s.value.Get() }

// Peek returns the current value without subscribing.
func (s *Stored[T]) Peek() T { return s.value.Peek() }

// Err returns the last persistence failure, nil when the most recent
// operation succeeded (tracked read).
func (s *Stored[T]) Err() error { return s.err.Get() }

// Set updates the value and writes it through. The local value is updated
// even when the write fails; the failure is captured in Err.
func (s *Stored[T]) Set(v T) {
	s.value.Set(v)
	s.persist(v)
}

// Update transforms the current value and writes the result through.
func (s *Stored[T]) Update(fn func(T) T) {
	next := fn(s.value.Peek())
	s.Set(next)
}

// Clear removes the stored entry and resets the value to the fallback.
func (s *Stored[T]) Clear() {
	s.value.Set(s.fallback)
	if err := s.store.Delete(s.ctx, s.key); err != nil {
		s.err.Set(fmt.Errorf("stored %q: delete: %w", s.key, err))
		return
	}
	s.err.Set(nil)
}

// Key returns the storage key.
func (s *Stored[T]) Key() string { return s.key }

func (s *Stored[T]) persist(v T) {
	data, err := json.Marshal(v)
	if err != nil {
		s.err.Set(fmt.Errorf("stored %q: serialize: %w", s.key, err))
		return
	}
	if err := s.store.Write(s.ctx, s.key, data); err != nil {
		s.err.Set(fmt.Errorf("stored %q: write: %w", s.key, err))
		return
	}
	s.err.Set(nil)
}
