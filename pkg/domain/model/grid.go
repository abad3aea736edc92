package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// GridSlot is one cell of the duty officer attendance grid
type GridSlot struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	RowGroup string `json:"rowGroup"`
}

// GridStructure is the ordered list of position slots a unit tracks,
// grouped into display rows
type GridStructure struct {
	Slots []GridSlot `json:"slots"`
}

// DefaultGridStructure returns the standard company layout: four cadet HQ
// seats, three platoon leaders, six staff seats, and twelve squads of one
// leader plus ten members.
func DefaultGridStructure() *GridStructure {
	slots := []GridSlot{
		{Key: HQPositionKey(1), Label: "Company Commander (Cadet)", RowGroup: "HQ"},
		{Key: HQPositionKey(2), Label: "Deputy Commander (Cadet)", RowGroup: "HQ"},
		{Key: HQPositionKey(3), Label: "Political Officer (Cadet)", RowGroup: "HQ"},
		{Key: HQPositionKey(4), Label: "First Sergeant (Cadet)", RowGroup: "HQ"},
		{Key: PlatoonPositionKey(1), Label: "1st Platoon Leader", RowGroup: "Platoon"},
		{Key: PlatoonPositionKey(2), Label: "2nd Platoon Leader", RowGroup: "Platoon"},
		{Key: PlatoonPositionKey(3), Label: "3rd Platoon Leader", RowGroup: "Platoon"},
	}

	staffLabels := []string{
		"Personnel NCO", "Training NCO", "Logistics NCO",
		"Political Warfare NCO", "Armorer NCO", "InfoSec NCO",
	}
	for i, label := range staffLabels {
		slots = append(slots, GridSlot{Key: StaffPositionKey(i + 1), Label: label, RowGroup: "Staff"})
	}

	for squad := 1; squad <= 12; squad++ {
		group := fmt.Sprintf("Squad %d", squad)
		slots = append(slots, GridSlot{
			Key:      SquadLeaderPositionKey(squad),
			Label:    fmt.Sprintf("Squad %d Leader", squad),
			RowGroup: group,
		})
		for member := 1; member <= 10; member++ {
			slots = append(slots, GridSlot{
				Key:      SquadMemberPositionKey(squad, member),
				Label:    fmt.Sprintf("Squad %d Member %d", squad, member),
				RowGroup: group,
			})
		}
	}

	return &GridStructure{Slots: slots}
}

// Validate checks slot key uniqueness and required fields
func (g *GridStructure) Validate() error {
	if len(g.Slots) == 0 {
		return goerr.New("grid structure has no slots")
	}
	seen := make(map[string]struct{}, len(g.Slots))
	for _, slot := range g.Slots {
		if slot.Key == "" {
			return goerr.New("grid slot key is required", goerr.V("label", slot.Label))
		}
		if slot.RowGroup == "" {
			return goerr.New("grid slot row group is required", goerr.V("key", slot.Key))
		}
		if _, ok := seen[slot.Key]; ok {
			return goerr.New("duplicate grid slot key", goerr.V("key", slot.Key))
		}
		seen[slot.Key] = struct{}{}
	}
	return nil
}

// GridCell is one resolved cell: the slot plus whoever occupies it and
// their report for the queried (date, timeSlot), if any
type GridCell struct {
	Slot   GridSlot      `json:"slot"`
	Entry  *RosterEntry  `json:"entry,omitempty"`
	Report *StatusReport `json:"report,omitempty"`
}

// GridRow groups cells under one display row
type GridRow struct {
	Group string     `json:"group"`
	Cells []GridCell `json:"cells"`
}

// BuildGrid resolves the grid structure against a roster and the reports of
// one (date, timeSlot) cell. Reports enrich the display even when the
// roster entry has disappeared; unresolvable slots stay empty.
func BuildGrid(structure *GridStructure, roster []*RosterEntry, reports []*StatusReport) []GridRow {
	entryByKey := make(map[string]*RosterEntry, len(roster))
	for _, e := range roster {
		entryByKey[e.PositionKey] = e
	}
	reportByKey := make(map[string]*StatusReport, len(reports))
	for _, r := range reports {
		reportByKey[r.PositionKey] = r
	}

	var rows []GridRow
	rowIndex := make(map[string]int)
	for _, slot := range structure.Slots {
		idx, ok := rowIndex[slot.RowGroup]
		if !ok {
			idx = len(rows)
			rowIndex[slot.RowGroup] = idx
			rows = append(rows, GridRow{Group: slot.RowGroup})
		}
		rows[idx].Cells = append(rows[idx].Cells, GridCell{
			Slot:   slot,
			Entry:  entryByKey[slot.Key],
			Report: reportByKey[slot.Key],
		})
	}
	return rows
}
