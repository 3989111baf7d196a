package memory

import (
	"context"
	"sort"
	"sync"

	"pet-care-log/internal/domain/logs"
)

// logsRepo es el repo in-memory para dev y tests; replica el
// comportamiento del repo postgres (ids crecientes, orden de List,
// not-found en update/delete sin filas).
type logsRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]logs.Log
}

func NewLogsRepo() logs.Repository {
	return &logsRepo{
		nextID: 1,
		byID:   make(map[int64]logs.Log),
	}
}

func (r *logsRepo) Create(ctx context.Context, l logs.Log) (logs.Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l.ID = r.nextID
	r.nextID++
	r.byID[l.ID] = l
	return l, nil
}

func (r *logsRepo) GetByID(ctx context.Context, id int64) (logs.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.byID[id]
	if !ok {
		return logs.Log{}, logs.ErrNotFound
	}
	return l, nil
}

func (r *logsRepo) List(ctx context.Context) ([]logs.Log, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]logs.Log, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Time.Equal(out[j].Time) {
			return out[i].Time.After(out[j].Time)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *logsRepo) Update(ctx context.Context, l logs.Log) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[l.ID]
	if !ok {
		return logs.ErrNotFound
	}

	cur.PetName = l.PetName
	cur.Task = l.Task
	cur.Time = l.Time
	cur.UpdatedAt = l.UpdatedAt
	r.byID[l.ID] = cur
	return nil
}

func (r *logsRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return logs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
