package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type TaskRepo struct {
	db DBTX
}

func NewTaskRepo(db DBTX) *TaskRepo {
	return &TaskRepo{db: db}
}

type TaskInsert struct {
	OwnerID          string
	Title            string
	Category         string
	Importance       string
	EstimatedMinutes int
	Details          *string
	Subtasks         []Subtask
	DueDate          *time.Time
	OriginRitualID   *int64
}

func (r *TaskRepo) Insert(ctx context.Context, in TaskInsert) (int64, error) {
	subtasksJSON, err := marshalSubtasks(in.Subtasks)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (
			owner_id, title, category, importance,
			estimated_minutes, details, subtasks,
			due_date, origin_ritual_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.OwnerID, in.Title, in.Category, in.Importance, in.EstimatedMinutes, in.Details, subtasksJSON, in.DueDate, in.OriginRitualID)
	if err != nil {
		return 0, fmt.Errorf("task insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("task last insert id: %w", err)
	}
	return id, nil
}

func (r *TaskRepo) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, category, importance, estimated_minutes,
			details, subtasks, completed, created_at, due_date, origin_ritual_id
		FROM tasks
		WHERE id = ?
	`, id)

	return scanTaskRow(row)
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID string) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, category, importance, estimated_minutes,
			details, subtasks, completed, created_at, due_date, origin_ritual_id
		FROM tasks
		WHERE owner_id = ?
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func (r *TaskRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET completed = ? WHERE id = ?`, boolToInt(completed), id)
	if err != nil {
		return fmt.Errorf("task set completed: %w", err)
	}
	return nil
}

func (r *TaskRepo) UpdateSubtasks(ctx context.Context, id int64, subtasks []Subtask) error {
	subtasksJSON, err := marshalSubtasks(subtasks)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE tasks SET subtasks = ? WHERE id = ?`, subtasksJSON, id)
	if err != nil {
		return fmt.Errorf("task update subtasks: %w", err)
	}
	return nil
}

// DeleteByIDs removes the given tasks in one statement.
func (r *TaskRepo) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return fmt.Errorf("task delete: %w", err)
	}
	return nil
}

// HasSpawnDueBetween reports whether a live task stamped with the given
// ritual already has a due date inside [start, end).
func (r *TaskRepo) HasSpawnDueBetween(ctx context.Context, ritualID int64, start, end time.Time) (bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT 1
		FROM tasks
		WHERE origin_ritual_id = ? AND due_date >= ? AND due_date < ?
		LIMIT 1
	`, ritualID, start, end)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("task spawn check: %w", err)
	}
	return true, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func marshalSubtasks(subtasks []Subtask) (*string, error) {
	if len(subtasks) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(subtasks)
	if err != nil {
		return nil, fmt.Errorf("marshal subtasks: %w", err)
	}
	s := string(data)
	return &s, nil
}

func unmarshalSubtasks(raw sql.NullString) ([]Subtask, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []Subtask
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("unmarshal subtasks: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTaskRow(row scanner) (*Task, error) {
	var (
		id             int64
		ownerID        string
		title          string
		category       sql.NullString
		importance     sql.NullString
		estimatedMins  sql.NullInt64
		details        sql.NullString
		subtasksRaw    sql.NullString
		completed      int
		createdAt      time.Time
		dueDate        sql.NullTime
		originRitualID sql.NullInt64
	)

	if err := row.Scan(
		&id, &ownerID, &title, &category, &importance, &estimatedMins,
		&details, &subtasksRaw, &completed, &createdAt, &dueDate, &originRitualID,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}

	subtasks, err := unmarshalSubtasks(subtasksRaw)
	if err != nil {
		return nil, err
	}

	var det *string
	if details.Valid {
		v := details.String
		det = &v
	}
	var due *time.Time
	if dueDate.Valid {
		v := dueDate.Time
		due = &v
	}
	var origin *int64
	if originRitualID.Valid {
		v := originRitualID.Int64
		origin = &v
	}

	// Legacy rows may predate the category/importance defaults.
	cat := "task"
	if category.Valid && category.String != "" {
		cat = category.String
	}
	imp := "medium"
	if importance.Valid && importance.String != "" {
		imp = importance.String
	}
	mins := 30
	if estimatedMins.Valid && estimatedMins.Int64 > 0 {
		mins = int(estimatedMins.Int64)
	}

	return &Task{
		ID:               id,
		OwnerID:          ownerID,
		Title:            title,
		Category:         cat,
		Importance:       imp,
		EstimatedMinutes: mins,
		Details:          det,
		Subtasks:         subtasks,
		Completed:        completed != 0,
		CreatedAt:        createdAt,
		DueDate:          due,
		OriginRitualID:   origin,
	}, nil
}
