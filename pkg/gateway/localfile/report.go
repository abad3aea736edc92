package localfile

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type reportStore struct {
	s *Store
}

func (r *reportStore) List(ctx context.Context, unit types.Unit) ([]*model.StatusReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.StatusReport
	if err := r.s.readCollection(reportsFile, &all); err != nil {
		return nil, err
	}

	reports := make([]*model.StatusReport, 0, len(all))
	for _, rep := range all {
		if rep != nil && rep.Unit == unit {
			reports = append(reports, rep)
		}
	}
	return reports, nil
}

func (r *reportStore) Upsert(ctx context.Context, report *model.StatusReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.StatusReport
	if err := r.s.readCollection(reportsFile, &all); err != nil {
		return err
	}

	// Overwrite by natural key (unit, positionKey, date, timeSlot)
	kept := make([]*model.StatusReport, 0, len(all)+1)
	for _, rep := range all {
		if rep == nil || rep.SameKey(report) {
			continue
		}
		kept = append(kept, rep)
	}
	kept = append(kept, report)

	return r.s.writeCollection(reportsFile, kept)
}

func (r *reportStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []*model.StatusReport
	if err := r.s.readCollection(reportsFile, &all); err != nil {
		return err
	}

	kept := make([]*model.StatusReport, 0, len(all))
	for _, rep := range all {
		if rep == nil || rep.ID == id {
			continue
		}
		kept = append(kept, rep)
	}

	return r.s.writeCollection(reportsFile, kept)
}
