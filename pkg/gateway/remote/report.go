package remote

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type reportStore struct {
	g *Gateway
}

func (s *reportStore) List(ctx context.Context, unit types.Unit) ([]*model.StatusReport, error) {
	var reports []*model.StatusReport
	if err := s.g.call(ctx, "get_reports", map[string]any{"unit": unit}, &reports); err != nil {
		return nil, err
	}

	filtered := make([]*model.StatusReport, 0, len(reports))
	for _, r := range reports {
		if r == nil || r.Unit != unit || r.PositionKey == "" {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

func (s *reportStore) Upsert(ctx context.Context, report *model.StatusReport) error {
	// The derived id makes the remote write an upsert by natural key
	stored := *report
	stored.ID = stored.Key()
	return s.g.call(ctx, "save_report", map[string]any{"report": &stored}, nil)
}

func (s *reportStore) Delete(ctx context.Context, id string) error {
	return s.g.call(ctx, "delete_report", map[string]any{"id": id}, nil)
}
