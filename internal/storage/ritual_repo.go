package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type RitualRepo struct {
	db DBTX
}

func NewRitualRepo(db DBTX) *RitualRepo {
	return &RitualRepo{db: db}
}

type RitualInsert struct {
	OwnerID          string
	Title            string
	Importance       string
	EstimatedMinutes int
	Details          *string
	Subtasks         []Subtask
}

func (r *RitualRepo) Insert(ctx context.Context, in RitualInsert) (int64, error) {
	subtasksJSON, err := marshalSubtasks(in.Subtasks)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO rituals (owner_id, title, importance, estimated_minutes, details, subtasks)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.OwnerID, in.Title, in.Importance, in.EstimatedMinutes, in.Details, subtasksJSON)
	if err != nil {
		return 0, fmt.Errorf("ritual insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ritual last insert id: %w", err)
	}
	return id, nil
}

func (r *RitualRepo) Get(ctx context.Context, id int64) (*Ritual, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, title, importance, estimated_minutes, details, subtasks, created_at
		FROM rituals
		WHERE id = ?
	`, id)
	return scanRitualRow(row)
}

func (r *RitualRepo) ListByOwner(ctx context.Context, ownerID string) ([]Ritual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_id, title, importance, estimated_minutes, details, subtasks, created_at
		FROM rituals
		WHERE owner_id = ?
		ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ritual list: %w", err)
	}
	defer rows.Close()

	var out []Ritual
	for rows.Next() {
		rt, err := scanRitualRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ritual rows: %w", err)
	}
	return out, nil
}

func (r *RitualRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rituals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ritual delete: %w", err)
	}
	return nil
}

func scanRitualRow(row scanner) (*Ritual, error) {
	var (
		id            int64
		ownerID       string
		title         string
		importance    sql.NullString
		estimatedMins sql.NullInt64
		details       sql.NullString
		subtasksRaw   sql.NullString
		createdAt     time.Time
	)

	if err := row.Scan(&id, &ownerID, &title, &importance, &estimatedMins, &details, &subtasksRaw, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ritual scan: %w", err)
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

	imp := "medium"
	if importance.Valid && importance.String != "" {
		imp = importance.String
	}
	mins := 30
	if estimatedMins.Valid && estimatedMins.Int64 > 0 {
		mins = int(estimatedMins.Int64)
	}

	return &Ritual{
		ID:               id,
		OwnerID:          ownerID,
		Title:            title,
		Importance:       imp,
		EstimatedMinutes: mins,
		Details:          det,
		Subtasks:         subtasks,
		CreatedAt:        createdAt,
	}, nil
}
