package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

func TestTaskValidate(t *testing.T) {
	valid := func() *model.DispatchTask {
		return &model.DispatchTask{
			Unit:          types.UnitC3,
			Date:          "2026-03-02",
			TimeSlot:      "08:00-09:00",
			TaskName:      "gate guard",
			Assignees:     []string{"SQ_01_01", "SQ_01_02"},
			AssigneeNames: []string{"kim", "park"},
		}
	}

	gt.NoError(t, valid().Validate())

	t.Run("requires assignees", func(t *testing.T) {
		task := valid()
		task.Assignees = nil
		task.AssigneeNames = nil
		gt.Error(t, task.Validate())
	})

	t.Run("rejects duplicate assignees", func(t *testing.T) {
		task := valid()
		task.Assignees = []string{"SQ_01_01", "SQ_01_01"}
		gt.Error(t, task.Validate())
	})

	t.Run("rejects misaligned name snapshot", func(t *testing.T) {
		task := valid()
		task.AssigneeNames = []string{"kim"}
		gt.Error(t, task.Validate())
	})
}

func TestTaskFinalize(t *testing.T) {
	task := &model.DispatchTask{
		Unit:          types.UnitC3,
		Date:          "2026-03-02",
		TimeSlot:      "08:00-09:00",
		TaskName:      "sweep",
		Assignees:     []string{"SQ_01_01"},
		AssigneeNames: []string{"kim"},
	}
	task.Finalize()

	gt.String(t, task.ID).NotEqual("")
	gt.Value(t, task.Status).Equal(types.TaskStatusInProgress)
	gt.Number(t, task.Timestamp).Greater(0)

	other := task.Clone()
	other.Finalize()
	gt.Value(t, other.ID).Equal(task.ID)
}

func TestTaskIDUniqueness(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := model.NewTaskID()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate task id: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestTaskClone(t *testing.T) {
	task := &model.DispatchTask{
		Unit:          types.UnitC3,
		Date:          "2026-03-02",
		TimeSlot:      "08:00-09:00",
		TaskName:      "sweep",
		Assignees:     []string{"SQ_01_01"},
		AssigneeNames: []string{"kim"},
	}
	clone := task.Clone()
	clone.Assignees[0] = "SQ_01_02"

	gt.Value(t, task.Assignees[0]).Equal("SQ_01_01")
}
