package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type rosterStore struct {
	mu      sync.RWMutex
	entries map[types.Unit]map[string]*model.RosterEntry
}

func newRosterStore() *rosterStore {
	return &rosterStore{
		entries: make(map[types.Unit]map[string]*model.RosterEntry),
	}
}

func copyEntry(e *model.RosterEntry) *model.RosterEntry {
	copied := *e
	return &copied
}

func (s *rosterStore) List(ctx context.Context, unit types.Unit) ([]*model.RosterEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots, exists := s.entries[unit]
	if !exists {
		return []*model.RosterEntry{}, nil
	}

	entries := make([]*model.RosterEntry, 0, len(slots))
	for _, e := range slots {
		entries = append(entries, copyEntry(e))
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].PositionKey < entries[j].PositionKey
	})

	return entries, nil
}

func (s *rosterStore) Upsert(ctx context.Context, entry *model.RosterEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.Unit]; !exists {
		s.entries[entry.Unit] = make(map[string]*model.RosterEntry)
	}
	s.entries[entry.Unit][entry.PositionKey] = copyEntry(entry)
	return nil
}

func (s *rosterStore) Remove(ctx context.Context, unit types.Unit, positionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slots, exists := s.entries[unit]; exists {
		delete(slots, positionKey)
	}
	return nil
}
