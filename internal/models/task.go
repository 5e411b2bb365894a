package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether s is one of the enumerated statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task represents one unit of work. OwnerID is set at creation from the
// authenticated caller and never changes afterwards.
type Task struct {
	ID          int64        `json:"id"`
	OwnerID     int64        `json:"owner"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ListParams carries the raw, untrusted query parameters of a list request.
type ListParams struct {
	Page   string
	Limit  string
	Search string
	Status string
	Sort   string
}

// SortField is a whitelisted sort column plus direction.
type SortField struct {
	Field string
	Desc  bool
}

// ListQuery is the normalized form of ListParams: a filter expression plus a
// pagination window. The owner predicate is not part of it; the repository
// adds that unconditionally.
type ListQuery struct {
	Search string
	Status string
	Offset int
	Limit  int
	Sort   SortField
}

// Page derives the page number back from the window for response payloads.
func (q ListQuery) Page() int {
	return q.Offset/q.Limit + 1
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// DashboardSummary holds the per-status counts for one owner.
type DashboardSummary struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
}

// Dashboard is the aggregate returned by GET /tasks/dashboard.
type Dashboard struct {
	Summary        DashboardSummary `json:"summary"`
	RecentActivity []Task           `json:"recentActivity"`
}

// CreateTaskInput is the payload accepted by Create. Owner is never part of
// it; the service forces the authenticated caller as owner.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update: nil means "leave unchanged".
// ClearDueDate distinguishes "dueDate omitted" from "dueDate explicitly
// cleared" (an empty string on the wire).
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *TaskStatus
	Priority     *TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
}
