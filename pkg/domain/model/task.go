package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// DispatchTask assigns N roster members to a named ad-hoc task for one
// (unit, date, timeSlot). AssigneeNames is a display snapshot kept
// index-aligned with Assignees.
type DispatchTask struct {
	ID            string           `json:"id"`
	Unit          types.Unit       `json:"unit"`
	Date          types.Date       `json:"date"`
	TimeSlot      types.TimeSlot   `json:"timeSlot"`
	TaskName      string           `json:"taskName"`
	Assignees     []string         `json:"assignees"`
	AssigneeNames []string         `json:"assigneeNames"`
	Status        types.TaskStatus `json:"status"`
	Timestamp     int64            `json:"timestamp"`
}

// NewTaskID returns a unique task identifier. Earlier revisions used the
// creation time in milliseconds, which collides under concurrent dispatch.
func NewTaskID() string {
	return uuid.NewString()
}

// Validate checks required fields and the assignee/name snapshot alignment
func (t *DispatchTask) Validate() error {
	if !t.Unit.IsValid() {
		return goerr.New("invalid unit", goerr.V("unit", t.Unit))
	}
	if !t.Date.IsValid() {
		return goerr.New("invalid date", goerr.V("date", t.Date))
	}
	if !t.TimeSlot.IsValid() {
		return goerr.New("invalid time slot", goerr.V("timeSlot", t.TimeSlot))
	}
	if t.TaskName == "" {
		return goerr.New("task name is required")
	}
	if len(t.Assignees) == 0 {
		return goerr.New("at least one assignee is required")
	}
	if len(t.AssigneeNames) != len(t.Assignees) {
		return goerr.New("assignee name snapshot out of alignment",
			goerr.V("assignees", len(t.Assignees)),
			goerr.V("assigneeNames", len(t.AssigneeNames)))
	}
	seen := make(map[string]struct{}, len(t.Assignees))
	for _, key := range t.Assignees {
		if key == "" {
			return goerr.New("empty assignee position key")
		}
		if _, ok := seen[key]; ok {
			return goerr.New("duplicate assignee", goerr.V("positionKey", key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Finalize fills id, default status and timestamp before the first write
func (t *DispatchTask) Finalize() {
	if t.ID == "" {
		t.ID = NewTaskID()
	}
	t.Status = t.Status.Normalize()
	if t.Timestamp == 0 {
		t.Timestamp = time.Now().UnixMilli()
	}
}

// Clone returns a deep copy of the task
func (t *DispatchTask) Clone() *DispatchTask {
	copied := *t
	copied.Assignees = append([]string(nil), t.Assignees...)
	copied.AssigneeNames = append([]string(nil), t.AssigneeNames...)
	return &copied
}
