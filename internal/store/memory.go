// In-memory storage for credentials and per-user history.
//
// The store is deliberately process-local: nothing survives a restart
// and there is no cross-instance consistency. It sits behind the
// services so a real database can replace it without touching handler
// logic.

package store

import (
	"errors"
	"sync"

	"github.com/modal-gateway/backend/internal/model"
)

// HistoryCapacity bounds each user's ledger; the oldest entry is
// evicted once the bound is exceeded (strict FIFO).
const HistoryCapacity = 20

var (
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserNotFound  = errors.New("user not found")
)

type Memory struct {
	mu      sync.RWMutex
	users   map[string]model.User
	history map[string][]model.HistoryEntry
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[string]model.User),
		history: make(map[string][]model.HistoryEntry),
	}
}

// CreateUser stores a new user. Usernames are case-sensitive exact-match
// keys; a taken name fails with ErrDuplicateUser. Users are never
// updated or deleted.
func (m *Memory) CreateUser(username, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[username]; ok {
		return ErrDuplicateUser
	}
	m.users[username] = model.User{Username: username, PasswordHash: passwordHash}
	return nil
}

func (m *Memory) GetUser(username string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return user, nil
}

// AppendHistory adds an entry to the user's ledger, creating the ledger
// lazily on first use. If the ledger already holds HistoryCapacity
// entries the oldest is evicted with the append.
func (m *Memory) AppendHistory(username string, entry model.HistoryEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := append(m.history[username], entry)
	if len(entries) > HistoryCapacity {
		entries = entries[len(entries)-HistoryCapacity:]
	}
	m.history[username] = entries
}

// ListHistory returns at most limit most-recent entries in chronological
// order. When typeFilter is non-empty the ledger is filtered to that
// type before the limit is applied. Users without a ledger get an empty
// slice.
func (m *Memory) ListHistory(username string, limit int, typeFilter model.EntryType) []model.HistoryEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.history[username]
	filtered := make([]model.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		if typeFilter != "" && entry.Type != typeFilter {
			continue
		}
		filtered = append(filtered, entry)
	}

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered
}
