package usecase

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
	"github.com/milstat-dev/milstat/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// unitState is the optimistic in-memory mirror of one unit's collections.
// Mutations apply here first so dependent views reflect them with zero
// latency; the remote store catches up in the background. The generation
// counter guards against a slow background fetch overwriting newer local
// writes.
type unitState struct {
	mu         sync.RWMutex
	generation uint64
	loaded     bool
	roster     []*model.RosterEntry
	reports    []*model.StatusReport
	tasks      []*model.DispatchTask
}

type stateCache struct {
	mu    sync.Mutex
	units map[types.Unit]*unitState
}

func newStateCache() *stateCache {
	return &stateCache{units: make(map[types.Unit]*unitState)}
}

func (c *stateCache) get(unit types.Unit) *unitState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.units[unit]
	if !ok {
		st = &unitState{}
		c.units[unit] = st
	}
	return st
}

// Snapshot is a point-in-time copy of one unit's collections
type Snapshot struct {
	Unit    types.Unit
	Roster  []*model.RosterEntry
	Reports []*model.StatusReport
	Tasks   []*model.DispatchTask
}

func (s *unitState) snapshot(unit types.Unit) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		Unit:    unit,
		Roster:  make([]*model.RosterEntry, len(s.roster)),
		Reports: make([]*model.StatusReport, len(s.reports)),
		Tasks:   make([]*model.DispatchTask, 0, len(s.tasks)),
	}
	for i, e := range s.roster {
		copied := *e
		snap.Roster[i] = &copied
	}
	for i, r := range s.reports {
		copied := *r
		snap.Reports[i] = &copied
	}
	for _, t := range s.tasks {
		snap.Tasks = append(snap.Tasks, t.Clone())
	}
	return snap
}

// Snapshot returns a copy of the unit's in-memory collections, loading them
// from the gateway on first access.
func (u *UseCases) Snapshot(ctx context.Context, unit types.Unit) (*Snapshot, error) {
	if !unit.IsValid() {
		return nil, goerr.New("invalid unit", goerr.V("unit", unit))
	}

	st := u.state.get(unit)
	st.mu.RLock()
	loaded := st.loaded
	st.mu.RUnlock()

	if !loaded {
		if err := u.Reload(ctx, unit, true); err != nil {
			return nil, err
		}
	}
	return st.snapshot(unit), nil
}

// Reload fetches the unit's roster, reports and tasks jointly and replaces
// the in-memory state. It is the universal recovery path. A non-forced
// reload is a background reconcile: its result is discarded when a local
// mutation has advanced the state since the fetch started, so stale data
// never overwrites newer optimistic writes. A forced reload (manual, or the
// periodic refresh) always replaces.
func (u *UseCases) Reload(ctx context.Context, unit types.Unit, force bool) error {
	if !unit.IsValid() {
		return goerr.New("invalid unit", goerr.V("unit", unit))
	}

	st := u.state.get(unit)
	st.mu.RLock()
	startGen := st.generation
	st.mu.RUnlock()

	var (
		roster  []*model.RosterEntry
		reports []*model.StatusReport
		tasks   []*model.DispatchTask
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		roster, err = u.gateway.Roster().List(egCtx, unit)
		return err
	})
	eg.Go(func() error {
		var err error
		reports, err = u.gateway.Reports().List(egCtx, unit)
		return err
	})
	eg.Go(func() error {
		var err error
		tasks, err = u.gateway.Tasks().List(egCtx, unit)
		return err
	})
	if err := eg.Wait(); err != nil {
		return goerr.Wrap(err, "failed to reload unit state", goerr.V("unit", unit))
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if !force && st.generation != startGen {
		logging.From(ctx).Debug("discarding stale reload result",
			"unit", unit, "fetched_at_generation", startGen, "current_generation", st.generation)
		return nil
	}

	st.roster = roster
	st.reports = reports
	st.tasks = tasks
	st.loaded = true
	st.generation++
	return nil
}

// mutate applies fn to the unit state under lock and bumps the generation
func (s *unitState) mutate(fn func(s *unitState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
	s.generation++
}

// upsertRosterLocked replaces any entry occupying the same slot
func (s *unitState) upsertRosterLocked(entry *model.RosterEntry) {
	kept := make([]*model.RosterEntry, 0, len(s.roster)+1)
	for _, e := range s.roster {
		if e.SameSlot(entry) {
			continue
		}
		kept = append(kept, e)
	}
	s.roster = append(kept, entry)
}

func (s *unitState) removeRosterLocked(positionKey string) {
	kept := make([]*model.RosterEntry, 0, len(s.roster))
	for _, e := range s.roster {
		if e.PositionKey == positionKey {
			continue
		}
		kept = append(kept, e)
	}
	s.roster = kept
}

// upsertReportLocked overwrites by natural key
func (s *unitState) upsertReportLocked(report *model.StatusReport) {
	kept := make([]*model.StatusReport, 0, len(s.reports)+1)
	for _, r := range s.reports {
		if r.SameKey(report) {
			continue
		}
		kept = append(kept, r)
	}
	s.reports = append(kept, report)
}

func (s *unitState) removeReportLocked(id string) {
	kept := make([]*model.StatusReport, 0, len(s.reports))
	for _, r := range s.reports {
		if r.ID == id {
			continue
		}
		kept = append(kept, r)
	}
	s.reports = kept
}

// removeOnDutyReportLocked deletes the synthetic report at the given key,
// leaving any report whose content is not the on-duty marker untouched.
// Reports whether a synthetic report was actually removed.
func (s *unitState) removeOnDutyReportLocked(id string) bool {
	removed := false
	kept := make([]*model.StatusReport, 0, len(s.reports))
	for _, r := range s.reports {
		if r.ID == id && r.IsOnDuty() {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	s.reports = kept
	return removed
}

func (s *unitState) upsertTaskLocked(task *model.DispatchTask) {
	kept := make([]*model.DispatchTask, 0, len(s.tasks)+1)
	for _, t := range s.tasks {
		if t.ID == task.ID {
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = append(kept, task)
}

func (s *unitState) removeTaskLocked(id string) {
	kept := make([]*model.DispatchTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.ID == id {
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
}

func (s *unitState) findTaskLocked(id string) *model.DispatchTask {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
