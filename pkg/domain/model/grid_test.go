package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

func TestDefaultGridStructure(t *testing.T) {
	grid := model.DefaultGridStructure()
	gt.NoError(t, grid.Validate())

	// 4 HQ + 3 platoon + 6 staff + 12 squads * 11
	gt.Array(t, grid.Slots).Length(4 + 3 + 6 + 12*11)
}

func TestGridStructureValidate(t *testing.T) {
	t.Run("rejects duplicate keys", func(t *testing.T) {
		g := &model.GridStructure{Slots: []model.GridSlot{
			{Key: "HQ_1", Label: "a", RowGroup: "HQ"},
			{Key: "HQ_1", Label: "b", RowGroup: "HQ"},
		}}
		gt.Error(t, g.Validate())
	})

	t.Run("rejects empty structure", func(t *testing.T) {
		gt.Error(t, (&model.GridStructure{}).Validate())
	})

	t.Run("requires key and row group", func(t *testing.T) {
		g := &model.GridStructure{Slots: []model.GridSlot{{Label: "a", RowGroup: "HQ"}}}
		gt.Error(t, g.Validate())

		g = &model.GridStructure{Slots: []model.GridSlot{{Key: "HQ_1", Label: "a"}}}
		gt.Error(t, g.Validate())
	})
}

func TestBuildGrid(t *testing.T) {
	structure := &model.GridStructure{Slots: []model.GridSlot{
		{Key: "SQ_01_L", Label: "Squad 1 Leader", RowGroup: "Squad 1"},
		{Key: "SQ_01_01", Label: "Squad 1 Member 1", RowGroup: "Squad 1"},
		{Key: "SQ_02_L", Label: "Squad 2 Leader", RowGroup: "Squad 2"},
	}}
	roster := []*model.RosterEntry{entry("SQ_01_L", "lee")}
	reports := []*model.StatusReport{
		{Unit: types.UnitC3, PositionKey: "SQ_01_01", Date: "2026-03-02", TimeSlot: "08:00-09:00", Content: "sick call"},
	}

	rows := model.BuildGrid(structure, roster, reports)
	gt.Array(t, rows).Length(2).Required()

	gt.Value(t, rows[0].Group).Equal("Squad 1")
	gt.Array(t, rows[0].Cells).Length(2).Required()
	gt.Value(t, rows[0].Cells[0].Entry.Name).Equal("lee")
	gt.Value(t, rows[0].Cells[0].Report).Nil()

	// report is shown even though the roster entry is gone
	gt.Value(t, rows[0].Cells[1].Entry).Nil()
	gt.Value(t, rows[0].Cells[1].Report.Content).Equal("sick call")

	gt.Value(t, rows[1].Group).Equal("Squad 2")
	gt.Array(t, rows[1].Cells).Length(1)
}
