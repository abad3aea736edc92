package interfaces

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// Gateway provides uniform read/write access to the three shared record
// collections. Every write is an upsert by natural key; every list returns
// only records of the requested unit, re-filtered at this layer regardless
// of what the backend returns. The gateway never retries internally.
type Gateway interface {
	Roster() RosterStore
	Reports() ReportStore
	Tasks() TaskStore
	Close() error
}

// RosterStore persists roster entries keyed by (unit, positionKey)
type RosterStore interface {
	List(ctx context.Context, unit types.Unit) ([]*model.RosterEntry, error)
	Upsert(ctx context.Context, entry *model.RosterEntry) error
	Remove(ctx context.Context, unit types.Unit, positionKey string) error
}

// ReportStore persists status reports keyed by
// (unit, positionKey, date, timeSlot), addressed by their derived id
type ReportStore interface {
	List(ctx context.Context, unit types.Unit) ([]*model.StatusReport, error)
	Upsert(ctx context.Context, report *model.StatusReport) error
	Delete(ctx context.Context, id string) error
}

// TaskStore persists dispatch tasks keyed by id
type TaskStore interface {
	List(ctx context.Context, unit types.Unit) ([]*model.DispatchTask, error)
	Upsert(ctx context.Context, task *model.DispatchTask) error
	Delete(ctx context.Context, id string) error
}

// ProfileStore persists the local session profile. The profile stays on the
// local store even when a remote gateway is configured.
type ProfileStore interface {
	Load(ctx context.Context) (*model.Profile, error)
	Save(ctx context.Context, profile *model.Profile) error
	Clear(ctx context.Context) error
}
