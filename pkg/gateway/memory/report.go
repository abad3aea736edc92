package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type reportStore struct {
	mu      sync.RWMutex
	reports map[string]*model.StatusReport
}

func newReportStore() *reportStore {
	return &reportStore{
		reports: make(map[string]*model.StatusReport),
	}
}

func copyReport(r *model.StatusReport) *model.StatusReport {
	copied := *r
	return &copied
}

func (s *reportStore) List(ctx context.Context, unit types.Unit) ([]*model.StatusReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]*model.StatusReport, 0)
	for _, r := range s.reports {
		if r.Unit == unit {
			reports = append(reports, copyReport(r))
		}
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].ID < reports[j].ID
	})

	return reports, nil
}

func (s *reportStore) Upsert(ctx context.Context, report *model.StatusReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Upsert by natural key: the derived id encodes
	// (unit, positionKey, date, timeSlot), so later writes overwrite.
	stored := copyReport(report)
	s.reports[stored.Key()] = stored
	return nil
}

func (s *reportStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.reports, id)
	return nil
}
