package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

func entry(key, name string) *model.RosterEntry {
	return &model.RosterEntry{
		Unit:        types.UnitC3,
		PositionKey: key,
		Name:        name,
		StudentID:   "S-" + key,
	}
}

func TestSelectCandidates(t *testing.T) {
	const (
		date = types.Date("2026-03-02")
		slot = types.TimeSlot("08:00-09:00")
	)
	roster := []*model.RosterEntry{
		entry("SQ_01_L", "lee"),
		entry("SQ_01_01", "kim"),
		entry("SQ_01_02", "park"),
		entry("SQ_01_03", "choi"),
	}

	t.Run("reports in the cell exclude the member", func(t *testing.T) {
		reports := []*model.StatusReport{
			{Unit: types.UnitC3, PositionKey: "SQ_01_01", Date: date, TimeSlot: slot, Content: "sick call"},
			{Unit: types.UnitC3, PositionKey: "SQ_01_02", Date: date, TimeSlot: types.TimeSlot("09:00-10:00"), Content: "class"},
		}

		candidates := model.SelectCandidates(roster, reports, nil, date, slot)
		gt.Array(t, candidates).Length(3)
		for _, c := range candidates {
			gt.Value(t, c.Entry.PositionKey).NotEqual("SQ_01_01")
		}
	})

	t.Run("in-progress tasks exclude assignees, completed release them", func(t *testing.T) {
		tasks := []*model.DispatchTask{
			{Unit: types.UnitC3, Date: date, TimeSlot: slot, TaskName: "gate guard",
				Assignees: []string{"SQ_01_01"}, Status: types.TaskStatusInProgress},
			{Unit: types.UnitC3, Date: date, TimeSlot: slot, TaskName: "sweep",
				Assignees: []string{"SQ_01_02"}, Status: types.TaskStatusCompleted},
		}

		candidates := model.SelectCandidates(roster, nil, tasks, date, slot)
		keys := make([]string, len(candidates))
		for i, c := range candidates {
			keys[i] = c.Entry.PositionKey
		}
		gt.Array(t, keys).Length(3)
		gt.Array(t, keys).Has("SQ_01_02")
		for _, key := range keys {
			gt.Value(t, key).NotEqual("SQ_01_01")
		}
	})

	t.Run("empty task status counts as in-progress", func(t *testing.T) {
		tasks := []*model.DispatchTask{
			{Unit: types.UnitC3, Date: date, TimeSlot: slot, TaskName: "laundry detail",
				Assignees: []string{"SQ_01_03"}},
		}

		candidates := model.SelectCandidates(roster, nil, tasks, date, slot)
		for _, c := range candidates {
			gt.Value(t, c.Entry.PositionKey).NotEqual("SQ_01_03")
		}
	})

	t.Run("daily count spans all slots of the date", func(t *testing.T) {
		tasks := []*model.DispatchTask{
			{Unit: types.UnitC3, Date: date, TimeSlot: types.TimeSlot("06:00-07:00"), TaskName: "a",
				Assignees: []string{"SQ_01_01"}, Status: types.TaskStatusCompleted},
			{Unit: types.UnitC3, Date: date, TimeSlot: types.TimeSlot("07:00-08:00"), TaskName: "b",
				Assignees: []string{"SQ_01_01", "SQ_01_02"}, Status: types.TaskStatusCompleted},
			{Unit: types.UnitC3, Date: types.Date("2026-03-01"), TimeSlot: slot, TaskName: "c",
				Assignees: []string{"SQ_01_01"}, Status: types.TaskStatusCompleted},
		}

		candidates := model.SelectCandidates(roster, nil, tasks, date, slot)
		gt.Array(t, candidates).Length(4)

		counts := make(map[string]int)
		for _, c := range candidates {
			counts[c.Entry.PositionKey] = c.DailyTaskCount
		}
		gt.Value(t, counts["SQ_01_01"]).Equal(2)
		gt.Value(t, counts["SQ_01_02"]).Equal(1)
		gt.Value(t, counts["SQ_01_03"]).Equal(0)
	})

	t.Run("sorted ascending by load, ties keep roster order", func(t *testing.T) {
		tasks := []*model.DispatchTask{
			{Unit: types.UnitC3, Date: date, TimeSlot: types.TimeSlot("06:00-07:00"), TaskName: "a",
				Assignees: []string{"SQ_01_L"}, Status: types.TaskStatusCompleted},
			{Unit: types.UnitC3, Date: date, TimeSlot: types.TimeSlot("07:00-08:00"), TaskName: "b",
				Assignees: []string{"SQ_01_L", "SQ_01_01"}, Status: types.TaskStatusCompleted},
		}

		candidates := model.SelectCandidates(roster, nil, tasks, date, slot)
		gt.Array(t, candidates).Length(4).Required()

		gt.Value(t, candidates[0].Entry.PositionKey).Equal("SQ_01_02")
		gt.Value(t, candidates[1].Entry.PositionKey).Equal("SQ_01_03")
		gt.Value(t, candidates[2].Entry.PositionKey).Equal("SQ_01_01")
		gt.Value(t, candidates[3].Entry.PositionKey).Equal("SQ_01_L")
	})

	t.Run("deterministic for the same inputs", func(t *testing.T) {
		reports := []*model.StatusReport{
			{Unit: types.UnitC3, PositionKey: "SQ_01_L", Date: date, TimeSlot: slot, Content: "leave"},
		}
		first := model.SelectCandidates(roster, reports, nil, date, slot)
		second := model.SelectCandidates(roster, reports, nil, date, slot)

		gt.Array(t, second).Length(len(first)).Required()
		for i := range first {
			gt.Value(t, second[i].Entry.PositionKey).Equal(first[i].Entry.PositionKey)
			gt.Value(t, second[i].DailyTaskCount).Equal(first[i].DailyTaskCount)
		}
	})
}
