package model

import (
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// ContentOnDuty is the content marker of reports generated by the dispatch
// reconciler. The reconciler only ever deletes reports carrying this marker,
// so a manually entered status at the same key is never destroyed by a task
// transition.
const ContentOnDuty = "on-duty"

// StatusReport is one person's declared or system-derived status for one
// (unit, date, timeSlot) cell. At most one report exists per
// (unit, positionKey, date, timeSlot); later writes overwrite.
type StatusReport struct {
	ID           string             `json:"id"`
	Unit         types.Unit         `json:"unit"`
	PositionKey  string             `json:"positionKey"`
	Name         string             `json:"userName"`
	StudentID    string             `json:"studentId"`
	PositionName string             `json:"positionName"`
	Date         types.Date         `json:"date"`
	TimeSlot     types.TimeSlot     `json:"timeSlot"`
	Content      string             `json:"content"`
	Status       types.ReportStatus `json:"status"`
	Timestamp    int64              `json:"timestamp"`
}

// NewReportID derives the deterministic identifier a report is persisted
// under remotely: unit_positionKey_date_timeSlot with colons stripped.
func NewReportID(unit types.Unit, positionKey string, date types.Date, slot types.TimeSlot) string {
	return fmt.Sprintf("%s_%s_%s_%s", unit, positionKey, date, slot.ID())
}

// Key returns the natural key of the report
func (r *StatusReport) Key() string {
	return NewReportID(r.Unit, r.PositionKey, r.Date, r.TimeSlot)
}

// SameKey reports whether two reports share the natural key
// (unit, positionKey, date, timeSlot)
func (r *StatusReport) SameKey(other *StatusReport) bool {
	return r.Unit == other.Unit &&
		r.PositionKey == other.PositionKey &&
		r.Date == other.Date &&
		r.TimeSlot == other.TimeSlot
}

// IsOnDuty reports whether this is a reconciler-generated synthetic report
func (r *StatusReport) IsOnDuty() bool {
	return r.Content == ContentOnDuty
}

// Validate checks required fields of the report
func (r *StatusReport) Validate() error {
	if !r.Unit.IsValid() {
		return goerr.New("invalid unit", goerr.V("unit", r.Unit))
	}
	if r.PositionKey == "" {
		return goerr.New("position key is required")
	}
	if !r.Date.IsValid() {
		return goerr.New("invalid date", goerr.V("date", r.Date))
	}
	if !r.TimeSlot.IsValid() {
		return goerr.New("invalid time slot", goerr.V("timeSlot", r.TimeSlot))
	}
	if r.Content == "" {
		return goerr.New("content is required")
	}
	return nil
}

// Finalize fills the derived id, default status and timestamp before a write
func (r *StatusReport) Finalize() {
	r.ID = r.Key()
	r.Status = r.Status.Normalize()
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
}
