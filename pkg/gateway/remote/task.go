package remote

import (
	"context"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type taskStore struct {
	g *Gateway
}

func (s *taskStore) List(ctx context.Context, unit types.Unit) ([]*model.DispatchTask, error) {
	var tasks []*model.DispatchTask
	if err := s.g.call(ctx, "get_tasks", map[string]any{"unit": unit}, &tasks); err != nil {
		return nil, err
	}

	filtered := make([]*model.DispatchTask, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || t.Unit != unit || t.ID == "" {
			continue
		}
		t.Status = t.Status.Normalize()
		filtered = append(filtered, t)
	}
	return filtered, nil
}

func (s *taskStore) Upsert(ctx context.Context, task *model.DispatchTask) error {
	return s.g.call(ctx, "save_task", map[string]any{"task": task}, nil)
}

func (s *taskStore) Delete(ctx context.Context, id string) error {
	return s.g.call(ctx, "delete_task", map[string]any{"id": id}, nil)
}
