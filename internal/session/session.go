// Package session stores the signed-in credential and shop scope.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/K-Lan-Chau-A/ASA-MB-sub001/internal/domain"
)

// Session is the credential and scope used for every API call.
type Session struct {
	Token     string
	ShopID    int64
	UserID    int64
	UserName  string
	UpdatedAt time.Time
}

// Valid reports whether the session can authorize requests.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != "" && s.ShopID > 0
}

// Store persists a single session.
type Store interface {
	// Load returns the saved session or domain.ErrSessionMissing.
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewMemoryStore creates a store, optionally seeded.
func NewMemoryStore(seed ...Session) *MemoryStore {
	m := &MemoryStore{}
	if len(seed) > 0 {
		s := seed[0]
		m.session = &s
	}
	return m
}

func (m *MemoryStore) Load(ctx context.Context) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil || !m.session.Valid() {
		return Session{}, domain.ErrSessionMissing
	}
	return *m.session, nil
}

func (m *MemoryStore) Save(ctx context.Context, s Session) error {
	if !s.Valid() {
		return fmt.Errorf("save session: token and shop id are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now().UTC()
	}
	m.session = &s
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
