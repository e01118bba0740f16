package client_test

import (
	"context"
	"sync"

	"github.com/mzigoego/mzigo/db"
)

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	mu   sync.Mutex
	pair *db.TokenPair

	saveCalls  int
	clearCalls int
}

func (m *memStore) Save(_ context.Context, pair db.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := pair
	m.pair = &p
	m.saveCalls++
	return nil
}

func (m *memStore) Load(_ context.Context) (*db.TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return nil, nil
	}
	p := *m.pair
	return &p, nil
}

func (m *memStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = nil
	m.clearCalls++
	return nil
}

func (m *memStore) current() *db.TokenPair {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pair == nil {
		return nil
	}
	p := *m.pair
	return &p
}
