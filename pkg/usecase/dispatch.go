package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

// The dispatch reconciler governs the one-to-many relationship between a
// task and its synthetic on-duty reports: creating a task plants one report
// per assignee, completing it withdraws them, re-opening it plants them
// again, deleting it withdraws them. Withdrawal only ever touches reports
// carrying the on-duty marker.

// dutyReports builds the synthetic report batch for a task, snapshotting
// display attributes from the roster. Assignees whose roster entry has
// disappeared are skipped silently; the soft reference is display-only.
func dutyReports(task *model.DispatchTask, roster []*model.RosterEntry) []*model.StatusReport {
	byKey := make(map[string]*model.RosterEntry, len(roster))
	for _, e := range roster {
		byKey[e.PositionKey] = e
	}

	now := time.Now().UnixMilli()
	reports := make([]*model.StatusReport, 0, len(task.Assignees))
	for _, key := range task.Assignees {
		entry, ok := byKey[key]
		if !ok {
			continue
		}
		r := &model.StatusReport{
			Unit:         task.Unit,
			PositionKey:  key,
			Name:         entry.Name,
			StudentID:    entry.StudentID,
			PositionName: entry.PositionName,
			Date:         task.Date,
			TimeSlot:     task.TimeSlot,
			Content:      model.ContentOnDuty,
			Status:       types.MirrorTaskStatus(task.Status),
			Timestamp:    now,
		}
		r.Finalize()
		reports = append(reports, r)
	}
	return reports
}

// syntheticReportIDs returns the derived report ids a task owns
func syntheticReportIDs(task *model.DispatchTask) []string {
	ids := make([]string, 0, len(task.Assignees))
	for _, key := range task.Assignees {
		ids = append(ids, model.NewReportID(task.Unit, key, task.Date, task.TimeSlot))
	}
	return ids
}

// fanOut applies op per item, attempting every item even when some fail.
// One assignee's write failing must not block the rest of the batch.
func fanOut[T any](ctx context.Context, items []T, op func(ctx context.Context, item T) error) error {
	var errs []error
	for _, item := range items {
		if err := op(ctx, item); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return goerr.Wrap(errors.Join(errs...), "partial fan-out failure",
			goerr.V("failed", len(errs)), goerr.V("total", len(items)))
	}
	return nil
}

// Dispatch creates an in-progress task for the given assignees and plants
// an on-duty report for each of them. A manual report already sitting at an
// assignee's (date, timeSlot) key is overwritten; duty officers are
// expected to pick from the candidate list, which excludes such members.
func (u *UseCases) Dispatch(ctx context.Context, unit types.Unit, date types.Date, slot types.TimeSlot, taskName string, assignees []string) (*model.DispatchTask, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}

	nameByKey := make(map[string]string, len(snap.Roster))
	for _, e := range snap.Roster {
		nameByKey[e.PositionKey] = e.Name
	}
	names := make([]string, len(assignees))
	for i, key := range assignees {
		if name, ok := nameByKey[key]; ok {
			names[i] = name
		} else {
			names[i] = key
		}
	}

	task := &model.DispatchTask{
		Unit:          unit,
		Date:          date,
		TimeSlot:      slot,
		TaskName:      taskName,
		Assignees:     append([]string(nil), assignees...),
		AssigneeNames: names,
		Status:        types.TaskStatusInProgress,
	}
	task.Finalize()
	if err := task.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid dispatch task")
	}

	reports := dutyReports(task, snap.Roster)

	st := u.state.get(unit)
	st.mutate(func(s *unitState) {
		s.upsertTaskLocked(task)
		for _, r := range reports {
			s.upsertReportLocked(r)
		}
	})

	u.backgroundSync(ctx, unit, "save_task", func(ctx context.Context) error {
		if err := u.gateway.Tasks().Upsert(ctx, task); err != nil {
			return err
		}
		return fanOut(ctx, reports, func(ctx context.Context, r *model.StatusReport) error {
			return u.gateway.Reports().Upsert(ctx, r)
		})
	})

	return task.Clone(), nil
}

// ToggleTask flips a task between in-progress and completed. Completion
// withdraws the task's on-duty reports, releasing the assignees for the
// slot; re-opening plants them again from the current roster.
func (u *UseCases) ToggleTask(ctx context.Context, unit types.Unit, taskID string) (*model.DispatchTask, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}

	st := u.state.get(unit)

	var toggled *model.DispatchTask
	var planted []*model.StatusReport
	var withdrawn []string

	st.mutate(func(s *unitState) {
		task := s.findTaskLocked(taskID)
		if task == nil {
			return
		}
		task.Status = task.Status.Toggle()
		toggled = task.Clone()

		if task.Status == types.TaskStatusCompleted {
			for _, id := range syntheticReportIDs(task) {
				if s.removeOnDutyReportLocked(id) {
					withdrawn = append(withdrawn, id)
				}
			}
		} else {
			planted = dutyReports(task, snap.Roster)
			for _, r := range planted {
				s.upsertReportLocked(r)
			}
		}
	})

	if toggled == nil {
		return nil, goerr.Wrap(ErrTaskNotFound, "cannot toggle", goerr.V("id", taskID))
	}

	// Only ids that were synthetic in our latest state are deleted
	// remotely, so a manually entered status sharing the key survives.
	u.backgroundSync(ctx, unit, "save_task", func(ctx context.Context) error {
		if err := u.gateway.Tasks().Upsert(ctx, toggled); err != nil {
			return err
		}
		if toggled.Status == types.TaskStatusCompleted {
			return fanOut(ctx, withdrawn, func(ctx context.Context, id string) error {
				return u.gateway.Reports().Delete(ctx, id)
			})
		}
		return fanOut(ctx, planted, func(ctx context.Context, r *model.StatusReport) error {
			return u.gateway.Reports().Upsert(ctx, r)
		})
	})

	return toggled, nil
}

// DeleteTask cancels a dispatch entirely, withdrawing its on-duty reports
func (u *UseCases) DeleteTask(ctx context.Context, unit types.Unit, taskID string) error {
	if _, err := u.Snapshot(ctx, unit); err != nil {
		return err
	}

	st := u.state.get(unit)

	var deleted *model.DispatchTask
	var withdrawn []string

	st.mutate(func(s *unitState) {
		task := s.findTaskLocked(taskID)
		if task == nil {
			return
		}
		deleted = task.Clone()
		s.removeTaskLocked(taskID)
		for _, id := range syntheticReportIDs(task) {
			if s.removeOnDutyReportLocked(id) {
				withdrawn = append(withdrawn, id)
			}
		}
	})

	if deleted == nil {
		return goerr.Wrap(ErrTaskNotFound, "cannot delete", goerr.V("id", taskID))
	}

	u.backgroundSync(ctx, unit, "delete_task", func(ctx context.Context) error {
		if err := u.gateway.Tasks().Delete(ctx, taskID); err != nil {
			return err
		}
		return fanOut(ctx, withdrawn, func(ctx context.Context, id string) error {
			return u.gateway.Reports().Delete(ctx, id)
		})
	})

	return nil
}

// Tasks returns the unit's tasks, optionally narrowed to one (date, slot)
func (u *UseCases) Tasks(ctx context.Context, unit types.Unit, date types.Date, slot types.TimeSlot) ([]*model.DispatchTask, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}

	tasks := make([]*model.DispatchTask, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		if date != "" && t.Date != date {
			continue
		}
		if slot != "" && t.TimeSlot != slot {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Candidates computes who may be assigned a new task at (date, slot),
// ordered by ascending daily task load. Recomputed from the current
// in-memory state on every call.
func (u *UseCases) Candidates(ctx context.Context, unit types.Unit, date types.Date, slot types.TimeSlot) ([]*model.Candidate, error) {
	snap, err := u.Snapshot(ctx, unit)
	if err != nil {
		return nil, err
	}
	return model.SelectCandidates(snap.Roster, snap.Reports, snap.Tasks, date, slot), nil
}
