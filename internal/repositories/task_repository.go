package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"taskboard/internal/models"
)

// TaskRepository is the owner-scoped persistence interface for tasks. Every
// method takes the owner id; there is no unscoped variant, so no caller can
// reach another user's rows.
type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, ownerID, id int64) (*models.Task, error)
	FindAll(ctx context.Context, ownerID int64, q models.ListQuery) ([]models.Task, error)
	Count(ctx context.Context, ownerID int64, q models.ListQuery) (int, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, ownerID, id int64) error

	// Dashboard reads.
	CountByStatus(ctx context.Context, ownerID int64) (map[models.TaskStatus]int, error)
	FindRecent(ctx context.Context, ownerID int64, limit int) ([]models.Task, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, owner_id, title, description, status, priority, due_date, created_at, updated_at`

// sortColumns maps the whitelisted API sort fields to real columns. Sort
// identifiers cannot be bound as query parameters, hence the lookup.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
}

func orderClause(s models.SortField) string {
	col, ok := sortColumns[s.Field]
	if !ok {
		col = "created_at"
	}
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col, dir, dir)
}

// filterClause builds the WHERE part shared by FindAll and Count. The owner
// predicate always comes first and is never optional.
func filterClause(ownerID int64, q models.ListQuery) (string, []interface{}) {
	conditions := []string{"owner_id = $1"}
	args := []interface{}{ownerID}
	argID := 2

	if q.Search != "" {
		conditions = append(conditions,
			fmt.Sprintf("(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", argID, argID))
		args = append(args, q.Search)
		argID++
	}
	if q.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argID))
		args = append(args, q.Status)
		argID++
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (owner_id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		task.OwnerID, task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID)
}

func (r *taskRepository) FindByID(ctx context.Context, ownerID, id int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND owner_id = $2`
	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&task.ID, &task.OwnerID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) FindAll(ctx context.Context, ownerID int64, q models.ListQuery) ([]models.Task, error) {
	where, args := filterClause(ownerID, q)
	query := `SELECT ` + taskColumns + ` FROM tasks` + where + orderClause(q.Sort)
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func (r *taskRepository) Count(ctx context.Context, ownerID int64, q models.ListQuery) (int, error) {
	where, args := filterClause(ownerID, q)
	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`+where, args...).Scan(&total)
	return total, err
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			title=$1, description=$2, status=$3, priority=$4, due_date=$5, updated_at=$6
		WHERE id=$7 AND owner_id=$8`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority,
		task.DueDate, task.UpdatedAt, task.ID, task.OwnerID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, ownerID int64) (map[models.TaskStatus]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks WHERE owner_id = $1 GROUP BY status`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.TaskStatus]int)
	for rows.Next() {
		var status models.TaskStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (r *taskRepository) FindRecent(ctx context.Context, ownerID int64, limit int) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

func scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.OwnerID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
