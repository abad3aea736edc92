package remote

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type rosterStore struct {
	g *Gateway
}

func (s *rosterStore) List(ctx context.Context, unit types.Unit) ([]*model.RosterEntry, error) {
	var entries []*model.RosterEntry
	if err := s.g.call(ctx, "get_roster", map[string]any{"unit": unit}, &entries); err != nil {
		return nil, err
	}

	// Firewall: never trust server-side unit filtering, and drop records
	// that do not narrow to the expected shape.
	filtered := make([]*model.RosterEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.Unit != unit || e.PositionKey == "" {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

func (s *rosterStore) Upsert(ctx context.Context, entry *model.RosterEntry) error {
	return s.g.call(ctx, "update_roster", map[string]any{"profile": entry}, nil)
}

func (s *rosterStore) Remove(ctx context.Context, unit types.Unit, positionKey string) error {
	return s.g.call(ctx, "remove_roster", map[string]any{
		"unit":        unit,
		"positionKey": positionKey,
	}, nil)
}
