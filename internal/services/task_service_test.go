package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
	"taskboard/internal/repositories/inmemory"
	"taskboard/internal/services"
)

const (
	ownerA int64 = 1
	ownerB int64 = 2
)

func newService(t *testing.T) services.TaskService {
	t.Helper()
	return services.NewTaskService(inmemory.NewTaskStorage())
}

func mustCreate(t *testing.T, s services.TaskService, owner int64, in models.CreateTaskInput) *models.Task {
	t.Helper()
	task, err := s.Create(context.Background(), owner, in)
	require.NoError(t, err)
	return task
}

func TestCreate_Defaults(t *testing.T) {
	s := newService(t)

	task := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "Write report"})

	assert.Equal(t, ownerA, task.OwnerID)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.CreatedAt.IsZero())
}

func TestCreate_Validation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    models.CreateTaskInput
		field string
	}{
		{"missing title", models.CreateTaskInput{}, "title"},
		{"bad status", models.CreateTaskInput{Title: "x", Status: "done"}, "status"},
		{"bad priority", models.CreateTaskInput{Title: "x", Priority: "urgent"}, "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(ctx, ownerA, tt.in)

			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}

	// nothing was persisted by the failed creates
	_, pagination, err := s.List(ctx, ownerA, models.ListParams{})
	require.NoError(t, err)
	assert.Zero(t, pagination.Total)
}

func TestOwnershipIsolation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	task := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "private"})

	// another identity sees the exact same NotFound as a missing id
	_, err := s.Get(ctx, ownerB, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, missingErr := s.Get(ctx, ownerB, 9999)
	assert.Equal(t, missingErr, err)

	title := "hijacked"
	_, err = s.Update(ctx, ownerB, task.ID, models.UpdateTaskInput{Title: &title})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, ownerB, task.ID), repositories.ErrNotFound)

	// the owner still sees the task untouched
	got, err := s.Get(ctx, ownerA, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Title)
}

func TestList_Pagination(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "task"})
	}

	tasks, pagination, err := s.List(ctx, ownerA, models.ListParams{Page: "2", Limit: "2"})
	require.NoError(t, err)

	assert.Len(t, tasks, 2)
	assert.Equal(t, models.Pagination{Page: 2, Limit: 2, Total: 5, Pages: 3}, pagination)

	// past the last page: empty result, not an error
	tasks, pagination, err = s.List(ctx, ownerA, models.ListParams{Page: "9", Limit: "2"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.Equal(t, 3, pagination.Pages)
}

func TestList_EmptyResultHasOnePage(t *testing.T) {
	s := newService(t)

	tasks, pagination, err := s.List(context.Background(), ownerA, models.ListParams{})
	require.NoError(t, err)

	assert.Empty(t, tasks)
	assert.Equal(t, 0, pagination.Total)
	assert.Equal(t, 1, pagination.Pages)
}

func TestList_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "Buy Milk"})
	mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "other", Description: "buy milky snacks"})
	mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "unrelated"})

	for _, term := range []string{"milk", "MILK", "y mi"} {
		tasks, _, err := s.List(ctx, ownerA, models.ListParams{Search: term})
		require.NoError(t, err)
		assert.Len(t, tasks, 2, "term %q", term)
	}

	tasks, _, err := s.List(ctx, ownerA, models.ListParams{Search: "cheese"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestList_StatusFilterIsExact(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "a", Status: models.StatusPending})
	mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "b", Status: models.StatusInProgress})

	tasks, _, err := s.List(ctx, ownerA, models.ListParams{Status: "pending"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, models.StatusPending, tasks[0].Status)

	// unknown status values are passed through and simply match nothing
	tasks, _, err = s.List(ctx, ownerA, models.ListParams{Status: "bogus"})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestList_DefaultSortNewestFirst(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	first := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "first"})
	second := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "second"})

	tasks, _, err := s.List(ctx, ownerA, models.ListParams{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	tasks, _, err = s.List(ctx, ownerA, models.ListParams{Sort: "title"})
	require.NoError(t, err)
	assert.Equal(t, "first", tasks[0].Title)
}

func TestUpdate_PartialSemantics(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	due := time.Now().Add(48 * time.Hour)
	task := mustCreate(t, s, ownerA, models.CreateTaskInput{
		Title:    "report",
		Status:   models.StatusInProgress,
		Priority: models.PriorityHigh,
		DueDate:  &due,
	})

	// payload only carries a title: everything else stays
	title := "quarterly report"
	updated, err := s.Update(ctx, ownerA, task.ID, models.UpdateTaskInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "quarterly report", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)

	// explicitly clearing the due date removes it, other fields persist
	updated, err = s.Update(ctx, ownerA, task.ID, models.UpdateTaskInput{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)
	assert.Equal(t, "quarterly report", updated.Title)
}

func TestUpdate_Validation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	task := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "keep me"})

	empty := ""
	_, err := s.Update(ctx, ownerA, task.ID, models.UpdateTaskInput{Title: &empty})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)

	bad := models.TaskStatus("archived")
	_, err = s.Update(ctx, ownerA, task.ID, models.UpdateTaskInput{Status: &bad})
	require.ErrorAs(t, err, &verr)

	// failed updates left the task alone
	got, err := s.Get(ctx, ownerA, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestDelete_SecondDeleteIsNotFound(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	task := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "temp"})

	require.NoError(t, s.Delete(ctx, ownerA, task.ID))
	assert.ErrorIs(t, s.Delete(ctx, ownerA, task.ID), repositories.ErrNotFound)
	_, err := s.Get(ctx, ownerA, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

// The walkthrough from the product scenario: create, cross-user get, status
// update, delete, get.
func TestTaskLifecycleScenario(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	task := mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "Write report"})
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Equal(t, ownerA, task.OwnerID)

	_, err := s.Get(ctx, ownerB, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	done := models.StatusCompleted
	updated, err := s.Update(ctx, ownerA, task.ID, models.UpdateTaskInput{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "Write report", updated.Title)

	require.NoError(t, s.Delete(ctx, ownerA, task.ID))
	_, err = s.Get(ctx, ownerA, task.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "p", Status: models.StatusPending})
	}
	for i := 0; i < 2; i++ {
		mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "c", Status: models.StatusCompleted})
	}
	// another user's tasks never leak into the aggregate
	mustCreate(t, s, ownerB, models.CreateTaskInput{Title: "other", Status: models.StatusPending})

	dashboard, err := s.Dashboard(ctx, ownerA)
	require.NoError(t, err)

	assert.Equal(t, models.DashboardSummary{
		Total:      5,
		Completed:  2,
		Pending:    3,
		InProgress: 0,
	}, dashboard.Summary)

	require.LessOrEqual(t, len(dashboard.RecentActivity), 5)
	for i := 1; i < len(dashboard.RecentActivity); i++ {
		prev, cur := dashboard.RecentActivity[i-1], dashboard.RecentActivity[i]
		assert.False(t, prev.CreatedAt.Before(cur.CreatedAt), "recent activity must be newest-first")
	}
}

func TestDashboard_RecentActivityCapped(t *testing.T) {
	s := newService(t)

	for i := 0; i < 8; i++ {
		mustCreate(t, s, ownerA, models.CreateTaskInput{Title: "t"})
	}

	dashboard, err := s.Dashboard(context.Background(), ownerA)
	require.NoError(t, err)
	assert.Len(t, dashboard.RecentActivity, 5)
	assert.Equal(t, 8, dashboard.Summary.Total)
}
