package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/modal-gateway/backend/internal/model"
	"github.com/modal-gateway/backend/internal/store"
)

// DefaultHistoryLimit is used when the history endpoint is queried
// without an explicit limit.
const DefaultHistoryLimit = 20

type HistoryService struct {
	store *store.Memory
}

func NewHistoryService(st *store.Memory) *HistoryService {
	return &HistoryService{store: st}
}

// Record appends a completed action to the user's ledger.
func (s *HistoryService) Record(username string, entryType model.EntryType, inputData, output string) model.HistoryEntry {
	entry := model.HistoryEntry{
		ID:        uuid.NewString(),
		Type:      entryType,
		InputData: inputData,
		Output:    output,
		Timestamp: time.Now().UTC(),
	}
	s.store.AppendHistory(username, entry)
	return entry
}

func (s *HistoryService) List(username string, limit int, typeFilter model.EntryType) []model.HistoryEntry {
	return s.store.ListHistory(username, limit, typeFilter)
}
