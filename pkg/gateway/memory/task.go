package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/milstat-dev/milstat/pkg/domain/model"
	"github.com/milstat-dev/milstat/pkg/domain/types"
)

type taskStore struct {
	mu    sync.RWMutex
	tasks map[string]*model.DispatchTask
}

func newTaskStore() *taskStore {
	return &taskStore{
		tasks: make(map[string]*model.DispatchTask),
	}
}

func (s *taskStore) List(ctx context.Context, unit types.Unit) ([]*model.DispatchTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*model.DispatchTask, 0)
	for _, t := range s.tasks {
		if t.Unit == unit {
			tasks = append(tasks, t.Clone())
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Timestamp != tasks[j].Timestamp {
			return tasks[i].Timestamp < tasks[j].Timestamp
		}
		return tasks[i].ID < tasks[j].ID
	})

	return tasks, nil
}

func (s *taskStore) Upsert(ctx context.Context, task *model.DispatchTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task.Clone()
	return nil
}

func (s *taskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
	return nil
}
