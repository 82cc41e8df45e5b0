package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type ChronicleRepo struct {
	db DBTX
}

func NewChronicleRepo(db DBTX) *ChronicleRepo {
	return &ChronicleRepo{db: db}
}

type ChronicleInsert struct {
	OwnerID             string
	DateKey             string
	Victories           []string
	Retained            []string
	ReflectionVictories *string
	ReflectionShadow    *string
	ReflectionIntention *string
	Streak              int
	SealType            string
}

// InsertIfAbsent creates the entry for (owner_id, date_key) unless one
// already exists. The conditional write is a single statement so two
// competing sealers cannot both observe "no entry yet"; the returned bool
// reports whether this call created the row.
func (r *ChronicleRepo) InsertIfAbsent(ctx context.Context, in ChronicleInsert) (bool, error) {
	victoriesJSON, err := marshalTitles(in.Victories)
	if err != nil {
		return false, err
	}
	retainedJSON, err := marshalTitles(in.Retained)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO chronicle (
			owner_id, date_key, victories, retained,
			reflection_victories, reflection_shadow, reflection_intention,
			streak, seal_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(owner_id, date_key) DO NOTHING
	`, in.OwnerID, in.DateKey, victoriesJSON, retainedJSON,
		in.ReflectionVictories, in.ReflectionShadow, in.ReflectionIntention,
		in.Streak, in.SealType)
	if err != nil {
		return false, fmt.Errorf("chronicle insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("chronicle rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *ChronicleRepo) Get(ctx context.Context, ownerID, dateKey string) (*ChronicleEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date_key, created_at, victories, retained,
			reflection_victories, reflection_shadow, reflection_intention,
			streak, seal_type
		FROM chronicle
		WHERE owner_id = ? AND date_key = ?
	`, ownerID, dateKey)
	return scanChronicleRow(row)
}

// ListByOwner returns entries newest first, up to limit (0 means all).
func (r *ChronicleRepo) ListByOwner(ctx context.Context, ownerID string, limit int) ([]ChronicleEntry, error) {
	q := `
		SELECT id, owner_id, date_key, created_at, victories, retained,
			reflection_victories, reflection_shadow, reflection_intention,
			streak, seal_type
		FROM chronicle
		WHERE owner_id = ?
		ORDER BY date_key DESC
	`
	args := []any{ownerID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("chronicle list: %w", err)
	}
	defer rows.Close()

	var out []ChronicleEntry
	for rows.Next() {
		e, err := scanChronicleRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chronicle rows: %w", err)
	}
	return out, nil
}

func marshalTitles(titles []string) (string, error) {
	if titles == nil {
		titles = []string{}
	}
	data, err := json.Marshal(titles)
	if err != nil {
		return "", fmt.Errorf("marshal titles: %w", err)
	}
	return string(data), nil
}

func unmarshalTitles(raw sql.NullString) ([]string, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("unmarshal titles: %w", err)
	}
	return out, nil
}

func scanChronicleRow(row scanner) (*ChronicleEntry, error) {
	var (
		e            ChronicleEntry
		createdAt    time.Time
		victoriesRaw sql.NullString
		retainedRaw  sql.NullString
		reflVict     sql.NullString
		reflShadow   sql.NullString
		reflIntent   sql.NullString
	)

	if err := row.Scan(
		&e.ID, &e.OwnerID, &e.DateKey, &createdAt, &victoriesRaw, &retainedRaw,
		&reflVict, &reflShadow, &reflIntent,
		&e.Streak, &e.SealType,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("chronicle scan: %w", err)
	}

	victories, err := unmarshalTitles(victoriesRaw)
	if err != nil {
		return nil, err
	}
	retained, err := unmarshalTitles(retainedRaw)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = createdAt
	e.Victories = victories
	e.Retained = retained
	if reflVict.Valid {
		v := reflVict.String
		e.ReflectionVictories = &v
	}
	if reflShadow.Valid {
		v := reflShadow.String
		e.ReflectionShadow = &v
	}
	if reflIntent.Valid {
		v := reflIntent.String
		e.ReflectionIntention = &v
	}
	return &e, nil
}
