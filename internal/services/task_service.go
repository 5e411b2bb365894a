package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// TaskService defines the task-related business logic. Every operation is
// scoped to the owner passed in; a task owned by someone else is
// indistinguishable from a task that does not exist.
type TaskService interface {
	List(ctx context.Context, ownerID int64, params models.ListParams) ([]models.Task, models.Pagination, error)
	Get(ctx context.Context, ownerID, id int64) (*models.Task, error)
	Create(ctx context.Context, ownerID int64, in models.CreateTaskInput) (*models.Task, error)
	Update(ctx context.Context, ownerID, id int64, in models.UpdateTaskInput) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id int64) error
	Dashboard(ctx context.Context, ownerID int64) (*models.Dashboard, error)
}

type taskService struct {
	repo repositories.TaskRepository
}

func NewTaskService(repo repositories.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) List(ctx context.Context, ownerID int64, params models.ListParams) ([]models.Task, models.Pagination, error) {
	q := BuildListQuery(params)

	tasks, err := s.repo.FindAll(ctx, ownerID, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.repo.Count(ctx, ownerID, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	pages := (total + q.Limit - 1) / q.Limit
	if pages < 1 {
		pages = 1
	}
	return tasks, models.Pagination{
		Page:  q.Page(),
		Limit: q.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

func (s *taskService) Get(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, ownerID, id)
}

func (s *taskService) Create(ctx context.Context, ownerID int64, in models.CreateTaskInput) (*models.Task, error) {
	var verr ValidationError
	if in.Title == "" {
		verr.add("title", "Title is required")
	}
	if in.Status != "" && !in.Status.IsValid() {
		verr.add("status", "Invalid status")
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		verr.add("priority", "Invalid priority")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = models.StatusPending
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	now := time.Now()
	task := &models.Task{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	logger.Info("task created", zap.Int64("task_id", task.ID), zap.Int64("owner_id", ownerID))
	return task, nil
}

func (s *taskService) Update(ctx context.Context, ownerID, id int64, in models.UpdateTaskInput) (*models.Task, error) {
	var verr ValidationError
	if in.Title != nil && *in.Title == "" {
		verr.add("title", "Title cannot be empty")
	}
	if in.Status != nil && !in.Status.IsValid() {
		verr.add("status", "Invalid status")
	}
	if in.Priority != nil && !in.Priority.IsValid() {
		verr.add("priority", "Invalid priority")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	// Only fields present in the payload change; everything else keeps its
	// stored value.
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.ClearDueDate {
		task.DueDate = nil
	} else if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	task.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	logger.Info("task deleted", zap.Int64("task_id", id), zap.Int64("owner_id", ownerID))
	return nil
}

// Dashboard issues independent reads; the counts may reflect slightly
// different instants under concurrent writes, which is acceptable for a
// per-user summary.
func (s *taskService) Dashboard(ctx context.Context, ownerID int64) (*models.Dashboard, error) {
	counts, err := s.repo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, ownerID, models.ListQuery{})
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.FindRecent(ctx, ownerID, 5)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Summary: models.DashboardSummary{
			Total:      total,
			Completed:  counts[models.StatusCompleted],
			Pending:    counts[models.StatusPending],
			InProgress: counts[models.StatusInProgress],
		},
		RecentActivity: recent,
	}, nil
}
