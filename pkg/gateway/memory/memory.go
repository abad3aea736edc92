package memory

import (
	"github.com/milstat-dev/milstat/pkg/domain/interfaces"
)

// Memory is an in-memory gateway used in tests and development mode. It has
// no network failure mode and keeps the same key semantics as the remote
// backend.
type Memory struct {
	roster  *rosterStore
	reports *reportStore
	tasks   *taskStore
}

var _ interfaces.Gateway = &Memory{}

func New() *Memory {
	return &Memory{
		roster:  newRosterStore(),
		reports: newReportStore(),
		tasks:   newTaskStore(),
	}
}

func (m *Memory) Roster() interfaces.RosterStore {
	return m.roster
}

func (m *Memory) Reports() interfaces.ReportStore {
	return m.reports
}

func (m *Memory) Tasks() interfaces.TaskStore {
	return m.tasks
}

func (m *Memory) Close() error {
	return nil
}
