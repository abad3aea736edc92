package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

func TestReportID(t *testing.T) {
	t.Run("derived id strips slot colons", func(t *testing.T) {
		id := model.NewReportID(types.UnitC3, "SQ_01_02", types.Date("2026-03-02"), types.TimeSlot("08:00-09:00"))
		gt.Value(t, id).Equal("C3_SQ_01_02_2026-03-02_0800-0900")
	})

	t.Run("finalize sets id from the natural key", func(t *testing.T) {
		r := &model.StatusReport{
			Unit:        types.UnitC5,
			PositionKey: "HQ_1",
			Date:        types.Date("2026-03-02"),
			TimeSlot:    types.TimeSlot("13:00-14:00"),
			Content:     "class",
		}
		r.Finalize()

		gt.Value(t, r.ID).Equal(r.Key())
		gt.Value(t, r.Status).Equal(types.ReportStatusNone)
		gt.Number(t, r.Timestamp).Greater(0)
	})

	t.Run("same natural key means same id", func(t *testing.T) {
		a := &model.StatusReport{Unit: types.UnitC1, PositionKey: "PL_1", Date: "2026-03-02", TimeSlot: "08:00-09:00", Content: "x"}
		b := &model.StatusReport{Unit: types.UnitC1, PositionKey: "PL_1", Date: "2026-03-02", TimeSlot: "08:00-09:00", Content: "y"}
		gt.Bool(t, a.SameKey(b)).True()
		gt.Value(t, a.Key()).Equal(b.Key())
	})
}

func TestReportValidate(t *testing.T) {
	valid := func() *model.StatusReport {
		return &model.StatusReport{
			Unit:        types.UnitC3,
			PositionKey: "SQ_02_01",
			Date:        "2026-03-02",
			TimeSlot:    "08:00-09:00",
			Content:     "sick call",
		}
	}

	gt.NoError(t, valid().Validate())

	r := valid()
	r.Unit = "C99"
	gt.Error(t, r.Validate())

	r = valid()
	r.Content = ""
	gt.Error(t, r.Validate())

	r = valid()
	r.TimeSlot = "8-9"
	gt.Error(t, r.Validate())
}

func TestOnDutyMarker(t *testing.T) {
	r := &model.StatusReport{Content: model.ContentOnDuty}
	gt.Bool(t, r.IsOnDuty()).True()

	r.Content = "on-duty: gate guard"
	gt.Bool(t, r.IsOnDuty()).False()
}
