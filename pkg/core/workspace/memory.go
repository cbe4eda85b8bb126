package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"dealdesk/pkg/models"
)

// =============================================================================
// IN-MEMORY STORE (single-process default)
// =============================================================================

// MemoryStore keeps workbooks as JSON blobs guarded by a RWMutex.
// Serializing on Put keeps callers from mutating stored state through
// shared pointers.
type MemoryStore struct {
	mu        sync.RWMutex
	workbooks map[string][]byte
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		workbooks: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.CompanyWorkbook, error) {
	s.mu.RLock()
	raw, ok := s.workbooks[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("workbook '%s' not found", id)
	}

	var wb models.CompanyWorkbook
	if err := json.Unmarshal(raw, &wb); err != nil {
		return nil, err
	}
	return &wb, nil
}

func (s *MemoryStore) Put(ctx context.Context, wb *models.CompanyWorkbook) error {
	if wb == nil || wb.ID == "" {
		return fmt.Errorf("workbook must have an ID")
	}

	raw, err := json.Marshal(wb)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.workbooks[wb.ID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workbooks[id]; !ok {
		return fmt.Errorf("workbook '%s' not found", id)
	}
	delete(s.workbooks, id)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*models.CompanyWorkbook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.CompanyWorkbook, 0, len(s.workbooks))
	for _, raw := range s.workbooks {
		var wb models.CompanyWorkbook
		if err := json.Unmarshal(raw, &wb); err != nil {
			return nil, err
		}
		out = append(out, &wb)
	}
	byRecency(out)
	return out, nil
}
