package handlers

import (
	"sync"

	"agrocost/services"
)

// SessionManager holds the in-memory line-item table for each quotation
// that has data loaded. Edit operations on a store are serialized through
// the manager's lock; the store itself stays lock-free.
type SessionManager struct {
	mu     sync.Mutex
	stores map[string]*services.Store
}

func NewSessionManager() *SessionManager {
	return &SessionManager{stores: make(map[string]*services.Store)}
}

// Put replaces the store loaded for a quotation.
func (m *SessionManager) Put(quoteID string, s *services.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores[quoteID] = s
}

// Get returns the store loaded for a quotation, if any.
func (m *SessionManager) Get(quoteID string) (*services.Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[quoteID]
	return s, ok
}

// Delete drops the in-memory table for a quotation.
func (m *SessionManager) Delete(quoteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, quoteID)
}

// Edit runs fn against the quotation's store while holding the manager
// lock. Returns services.ErrNoData when no table is loaded.
func (m *SessionManager) Edit(quoteID string, fn func(*services.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[quoteID]
	if !ok {
		return services.ErrNoData
	}
	return fn(s)
}
