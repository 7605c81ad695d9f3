package archive

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Put(_ context.Context, reportID, name string, content []byte) error {
	if s == nil {
		return fmt.Errorf("store is nil")
	}
	reportID = strings.TrimSpace(reportID)
	name = strings.TrimSpace(name)
	if reportID == "" {
		return fmt.Errorf("report_id is required")
	}
	if name == "" {
		return fmt.Errorf("name is required")
	}
	key := reportID + "/" + strings.TrimLeft(name, "/")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), content...)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, reportID, name string) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	reportID = strings.TrimSpace(reportID)
	name = strings.TrimSpace(name)
	if reportID == "" {
		return nil, fmt.Errorf("report_id is required")
	}
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	key := reportID + "/" + strings.TrimLeft(name, "/")
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), raw...), nil
}

func (s *MemoryStore) List(_ context.Context, reportID string) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("store is nil")
	}
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return nil, fmt.Errorf("report_id is required")
	}
	prefix := reportID + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, 4)
	for key := range s.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, strings.TrimPrefix(key, prefix))
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) GetURL(_ context.Context, _, _ string) (string, error) {
	// Memory store has nothing to presign.
	return "", nil
}
