// Package memory provides an in-process KV store, the default persistence for
// demos and tests.
package memory

import (
	"context"
	"sync"
)

// Store is a concurrent in-memory KV implementation.
type Store struct {
	data sync.Map // map[string]string
}

func New() *Store { return &Store{} }

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.data.Load(key)
	if !ok {
		return "", false, nil
	}
	return v.(string), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.data.Store(key, value)
	return nil
}

var _ interface {
	Get(context.Context, string) (string, bool, error)
	Set(context.Context, string, string) error
} = (*Store)(nil)
