package localfile

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type rosterStore struct {
	s *Store
}

func (r *rosterStore) List(ctx context.Context, unit types.Unit) ([]*model.RosterEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.RosterEntry
	if err := r.s.readCollection(rosterFile, &all); err != nil {
		return nil, err
	}

	entries := make([]*model.RosterEntry, 0, len(all))
	for _, e := range all {
		if e != nil && e.Unit == unit {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *rosterStore) Upsert(ctx context.Context, entry *model.RosterEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.RosterEntry
	if err := r.s.readCollection(rosterFile, &all); err != nil {
		return err
	}

	kept := make([]*model.RosterEntry, 0, len(all)+1)
	for _, e := range all {
		if e == nil || e.SameSlot(entry) {
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, entry)

	return r.s.writeCollection(rosterFile, kept)
}

func (r *rosterStore) Remove(ctx context.Context, unit types.Unit, positionKey string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.RosterEntry
	if err := r.s.readCollection(rosterFile, &all); err != nil {
		return err
	}

	kept := make([]*model.RosterEntry, 0, len(all))
	for _, e := range all {
		if e == nil || (e.Unit == unit && e.PositionKey == positionKey) {
			continue
		}
		kept = append(kept, e)
	}

	return r.s.writeCollection(rosterFile, kept)
}
