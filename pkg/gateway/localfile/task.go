package localfile

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type taskStore struct {
	s *Store
}

func (t *taskStore) List(ctx context.Context, unit types.Unit) ([]*model.DispatchTask, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var all []*model.DispatchTask
	if err := t.s.readCollection(tasksFile, &all); err != nil {
		return nil, err
	}

	tasks := make([]*model.DispatchTask, 0, len(all))
	for _, task := range all {
		if task == nil || task.Unit != unit {
			continue
		}
		task.Status = task.Status.Normalize()
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func (t *taskStore) Upsert(ctx context.Context, task *model.DispatchTask) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var all []*model.DispatchTask
	if err := t.s.readCollection(tasksFile, &all); err != nil {
		return err
	}

	kept := make([]*model.DispatchTask, 0, len(all)+1)
	for _, existing := range all {
		if existing == nil || existing.ID == task.ID {
			continue
		}
		kept = append(kept, existing)
	}
	kept = append(kept, task)

	return t.s.writeCollection(tasksFile, kept)
}

func (t *taskStore) Delete(ctx context.Context, id string) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	var all []*model.DispatchTask
	if err := t.s.readCollection(tasksFile, &all); err != nil {
		return err
	}

	kept := make([]*model.DispatchTask, 0, len(all))
	for _, task := range all {
		if task == nil || task.ID == id {
			continue
		}
		kept = append(kept, task)
	}

	return t.s.writeCollection(tasksFile, kept)
}
