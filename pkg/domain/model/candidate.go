package model

import (
	"sort"

	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// Candidate pairs a roster entry with its cumulative task load for one day
type Candidate struct {
	Entry          *RosterEntry `json:"entry"`
	DailyTaskCount int          `json:"dailyTaskCount"`
}

// SelectCandidates computes the roster members eligible for a new task
// assignment at (date, slot). A member is busy, and therefore excluded, if
// they have any status report for that exact cell, or are assigned to an
// in-progress task in the same cell. Completed tasks release their
// assignees but still count toward the daily load.
//
// The result is sorted ascending by DailyTaskCount; members with equal
// counts keep their roster order. Purely derived from its inputs.
func SelectCandidates(roster []*RosterEntry, reports []*StatusReport, tasks []*DispatchTask, date types.Date, slot types.TimeSlot) []*Candidate {
	busy := make(map[string]struct{})
	for _, r := range reports {
		if r.Date == date && r.TimeSlot == slot {
			busy[r.PositionKey] = struct{}{}
		}
	}
	for _, t := range tasks {
		if t.Date == date && t.TimeSlot == slot && t.Status.Normalize() == types.TaskStatusInProgress {
			for _, key := range t.Assignees {
				busy[key] = struct{}{}
			}
		}
	}

	dailyCounts := make(map[string]int)
	for _, t := range tasks {
		if t.Date == date {
			for _, key := range t.Assignees {
				dailyCounts[key]++
			}
		}
	}

	candidates := make([]*Candidate, 0, len(roster))
	for _, entry := range roster {
		if _, ok := busy[entry.PositionKey]; ok {
			continue
		}
		candidates = append(candidates, &Candidate{
			Entry:          entry,
			DailyTaskCount: dailyCounts[entry.PositionKey],
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DailyTaskCount < candidates[j].DailyTaskCount
	})

	return candidates
}
