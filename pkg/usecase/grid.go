package usecase

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// Grid resolves the unit's attendance grid for one (date, timeSlot) cell
func (u *UseCases) Grid(ctx context.Context, unit types.Unit, date types.Date, slot types.TimeSlot) ([]model.GridRow, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}

	cellReports := make([]*model.StatusReport, 0, len(snap.Reports))
	for _, r := range snap.Reports {
		if r.Date == date && r.TimeSlot == slot {
			cellReports = append(cellReports, r)
		}
	}

	return model.BuildGrid(u.grid, snap.Roster, cellReports), nil
}

// GridStructure exposes the configured layout to the views
func (u *UseCases) GridStructure() *model.GridStructure {
	return u.grid
}
