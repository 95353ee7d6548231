package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/taskmasterhq/taskmaster/internal/models"
)

// SQLTaskRepository stores tasks in a relational database through sqlx.
// Queries use `?` bindvars and are rebound for the active driver, so the
// same repository runs against Postgres in production and sqlite in tests.
type SQLTaskRepository struct {
	db *sqlx.DB
}

func NewSQLTaskRepository(db *sqlx.DB) *SQLTaskRepository {
	return &SQLTaskRepository{db: db}
}

func (r *SQLTaskRepository) Create(ctx context.Context, task *models.Task) error {
	const query = `
		INSERT INTO tasks (id, title, description, due_date, priority, category, status, created_at, updated_at)
		VALUES (:id, :title, :description, :due_date, :priority, :category, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	query := r.db.Rebind(`SELECT * FROM tasks WHERE id = ?`)
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select task: %w", err)
	}
	return &task, nil
}

func (r *SQLTaskRepository) List(ctx context.Context, filter ListFilter) ([]*models.Task, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conds = append(conds, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, *filter.Category)
	}

	query := "SELECT * FROM tasks"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + orderClause(filter.SortBy, filter.SortOrder)

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query += " LIMIT ?"
	args = append(args, limit)

	tasks := []*models.Task{}
	if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

// orderClause builds the ORDER BY expression for a whitelisted sort key.
// Priority ordering is semantic (high > medium > low), not lexical, and
// tasks without a due date always sort after tasks that have one.
func orderClause(sortBy, sortOrder string) string {
	dir := "DESC"
	if sortOrder == "asc" {
		dir = "ASC"
	}

	switch sortBy {
	case "title":
		return "title " + dir
	case "due_date":
		return "due_date " + dir + " NULLS LAST"
	case "priority":
		return "CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 END " + dir
	case "updated_at":
		return "updated_at " + dir
	default:
		return "created_at " + dir
	}
}

func (r *SQLTaskRepository) Update(ctx context.Context, id string, update *TaskUpdate) (*models.Task, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{update.UpdatedAt}

	if update.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *update.Description)
	}
	if update.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *update.DueDate)
	}
	if update.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *update.Priority)
	}
	if update.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *update.Category)
	}
	if update.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *update.Status)
	}

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *SQLTaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SQLStatusCheckRepository stores status checks alongside tasks.
type SQLStatusCheckRepository struct {
	db *sqlx.DB
}

func NewSQLStatusCheckRepository(db *sqlx.DB) *SQLStatusCheckRepository {
	return &SQLStatusCheckRepository{db: db}
}

func (r *SQLStatusCheckRepository) Create(ctx context.Context, check *models.StatusCheck) error {
	const query = `
		INSERT INTO status_checks (id, client_name, timestamp)
		VALUES (:id, :client_name, :timestamp)`

	if _, err := r.db.NamedExecContext(ctx, query, check); err != nil {
		return fmt.Errorf("insert status check: %w", err)
	}
	return nil
}

func (r *SQLStatusCheckRepository) List(ctx context.Context) ([]*models.StatusCheck, error) {
	checks := []*models.StatusCheck{}
	query := r.db.Rebind(`SELECT * FROM status_checks ORDER BY timestamp DESC LIMIT ?`)
	if err := r.db.SelectContext(ctx, &checks, query, DefaultListLimit); err != nil {
		return nil, fmt.Errorf("query status checks: %w", err)
	}
	return checks, nil
}
