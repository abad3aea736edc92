package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// RosterEntry is one position slot occupied by one person within a unit.
// At most one active entry exists per (unit, positionKey); registering into
// an occupied slot replaces the prior occupant.
type RosterEntry struct {
	Unit         types.Unit `json:"unit"`
	PositionKey  string     `json:"positionKey"`
	PositionName string     `json:"positionName"`
	Name         string     `json:"name"`
	StudentID    string     `json:"studentId"`
}

// Validate checks required fields of the roster entry
func (r *RosterEntry) Validate() error {
	if !r.Unit.IsValid() {
		return goerr.New("invalid unit", goerr.V("unit", r.Unit))
	}
	if r.PositionKey == "" {
		return goerr.New("position key is required")
	}
	if r.Name == "" {
		return goerr.New("name is required", goerr.V("positionKey", r.PositionKey))
	}
	return nil
}

// SameSlot reports whether two entries occupy the same (unit, positionKey)
func (r *RosterEntry) SameSlot(other *RosterEntry) bool {
	return r.Unit == other.Unit && r.PositionKey == other.PositionKey
}
