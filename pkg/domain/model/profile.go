package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// Profile is the self-declared local identity of the current user. Identity
// is not validated against anything; it only binds this client to a roster
// slot.
type Profile struct {
	Unit         types.Unit `json:"unit"`
	Role         types.Role `json:"role"`
	Name         string     `json:"name"`
	StudentID    string     `json:"studentId"`
	PositionName string     `json:"positionName"`
	PositionKey  string     `json:"positionKey"`
}

// Validate checks required fields of the profile
func (p *Profile) Validate() error {
	if !p.Unit.IsValid() {
		return goerr.New("invalid unit", goerr.V("unit", p.Unit))
	}
	if !p.Role.IsValid() {
		return goerr.New("invalid role", goerr.V("role", p.Role))
	}
	if p.Name == "" {
		return goerr.New("name is required")
	}
	if p.StudentID == "" {
		return goerr.New("student id is required")
	}
	if p.PositionKey == "" {
		return goerr.New("position key is required")
	}
	return nil
}

// RosterEntry projects the profile onto the shared roster
func (p *Profile) RosterEntry() *RosterEntry {
	return &RosterEntry{
		Unit:         p.Unit,
		PositionKey:  p.PositionKey,
		PositionName: p.PositionName,
		Name:         p.Name,
		StudentID:    p.StudentID,
	}
}

// HQPositionKey returns the position key of the n-th (1-based) cadet HQ seat
func HQPositionKey(seat int) string {
	return fmt.Sprintf("HQ_%d", seat)
}

// PlatoonPositionKey returns the position key of the n-th platoon leader seat
func PlatoonPositionKey(seat int) string {
	return fmt.Sprintf("PL_%d", seat)
}

// StaffPositionKey returns the position key of the n-th staff seat
func StaffPositionKey(seat int) string {
	return fmt.Sprintf("ST_%d", seat)
}

// SquadLeaderPositionKey returns the position key of a squad leader slot
func SquadLeaderPositionKey(squad int) string {
	return fmt.Sprintf("SQ_%02d_L", squad)
}

// SquadMemberPositionKey returns the position key of a squad member slot
func SquadMemberPositionKey(squad, member int) string {
	return fmt.Sprintf("SQ_%02d_%02d", squad, member)
}
