package usecase

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// SaveReport records a member's declared status for one (date, timeSlot)
// cell, overwriting any earlier report at the same key. The in-memory state
// reflects the write immediately; the backend catches up in the background.
func (u *UseCases) SaveReport(ctx context.Context, report *model.StatusReport) error {
	if err := report.Validate(); err != nil {
		return goerr.Wrap(err, "invalid report")
	}
	report.Finalize()

	if _, err := u.Snapshot(ctx, report.Unit); err != nil {
		return err
	}

	st := u.state.get(report.Unit)
	st.mutate(func(s *unitState) {
		s.upsertReportLocked(report)
	})

	u.backgroundSync(ctx, report.Unit, "save_report", func(ctx context.Context) error {
		return u.gateway.Reports().Upsert(ctx, report)
	})

	return nil
}

// DeleteReport removes a report by id
func (u *UseCases) DeleteReport(ctx context.Context, unit types.Unit, id string) error {
	if _, err := u.Snapshot(ctx, unit); err != nil {
		return err
	}

	st := u.state.get(unit)
	st.mutate(func(s *unitState) {
		s.removeReportLocked(id)
	})

	u.backgroundSync(ctx, unit, "delete_report", func(ctx context.Context) error {
		return u.gateway.Reports().Delete(ctx, id)
	})

	return nil
}

// Reports returns the unit's reports, optionally narrowed to one position
func (u *UseCases) Reports(ctx context.Context, unit types.Unit, positionKey string) ([]*model.StatusReport, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}

	reports := snap.Reports
	if positionKey != "" {
		narrowed := make([]*model.StatusReport, 0, len(reports))
		for _, r := range reports {
			if r.PositionKey == positionKey {
				narrowed = append(narrowed, r)
			}
		}
		reports = narrowed
	}

	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Date != reports[j].Date {
			return reports[i].Date < reports[j].Date
		}
		if reports[i].TimeSlot != reports[j].TimeSlot {
			return reports[i].TimeSlot < reports[j].TimeSlot
		}
		return reports[i].PositionKey < reports[j].PositionKey
	})

	return reports, nil
}
