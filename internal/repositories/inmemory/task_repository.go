package inmemory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// TaskStorage is a map-backed TaskRepository. It is selected by the
// repository.type config for local runs and backs the test suite.
type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[int64]models.Task
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]models.Task),
		nextID:  1,
	}
}

func (s *TaskStorage) Store(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task.ID = s.nextID
	s.nextID++
	s.storage[task.ID] = *task
	return nil
}

func (s *TaskStorage) FindByID(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.storage[id]
	if !ok || task.OwnerID != ownerID {
		return nil, repositories.ErrNotFound
	}
	return &task, nil
}

func (s *TaskStorage) FindAll(ctx context.Context, ownerID int64, q models.ListQuery) ([]models.Task, error) {
	s.mtx.RLock()
	matched := s.match(ownerID, q)
	s.mtx.RUnlock()

	sortTasks(matched, q.Sort)

	if q.Offset >= len(matched) {
		return []models.Task{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func (s *TaskStorage) Count(ctx context.Context, ownerID int64, q models.ListQuery) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	return len(s.match(ownerID, q)), nil
}

func (s *TaskStorage) Update(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return repositories.ErrNotFound
	}
	s.storage[task.ID] = *task
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, ownerID, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task, ok := s.storage[id]
	if !ok || task.OwnerID != ownerID {
		return repositories.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) CountByStatus(ctx context.Context, ownerID int64) (map[models.TaskStatus]int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	counts := make(map[models.TaskStatus]int)
	for _, task := range s.storage {
		if task.OwnerID == ownerID {
			counts[task.Status]++
		}
	}
	return counts, nil
}

func (s *TaskStorage) FindRecent(ctx context.Context, ownerID int64, limit int) ([]models.Task, error) {
	s.mtx.RLock()
	recent := s.match(ownerID, models.ListQuery{})
	s.mtx.RUnlock()

	sortTasks(recent, models.SortField{Field: "createdAt", Desc: true})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent, nil
}

// match applies the owner predicate plus the optional search and status
// filters. Callers hold at least a read lock.
func (s *TaskStorage) match(ownerID int64, q models.ListQuery) []models.Task {
	needle := strings.ToLower(q.Search)
	res := []models.Task{}
	for _, task := range s.storage {
		if task.OwnerID != ownerID {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(task.Title), needle) &&
			!strings.Contains(strings.ToLower(task.Description), needle) {
			continue
		}
		if q.Status != "" && string(task.Status) != q.Status {
			continue
		}
		res = append(res, task)
	}
	return res
}

var priorityRank = map[models.TaskPriority]int{
	models.PriorityLow:    0,
	models.PriorityMedium: 1,
	models.PriorityHigh:   2,
}

func sortTasks(tasks []models.Task, s models.SortField) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if s.Desc {
			a, b = b, a
		}
		switch s.Field {
		case "title":
			return a.Title < b.Title
		case "priority":
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		case "dueDate":
			// tasks without a due date sort last
			if a.DueDate == nil || b.DueDate == nil {
				return b.DueDate == nil && a.DueDate != nil
			}
			return a.DueDate.Before(*b.DueDate)
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}
	})
}
