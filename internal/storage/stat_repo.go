package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type StatRepo struct {
	db DBTX
}

func NewStatRepo(db DBTX) *StatRepo {
	return &StatRepo{db: db}
}

func (r *StatRepo) Get(ctx context.Context, ownerID string) (*Stat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT owner_id, current_streak, max_streak, history, last_sealed_date
		FROM stats
		WHERE owner_id = ?
	`, ownerID)

	var (
		st         Stat
		historyRaw sql.NullString
		lastSealed sql.NullString
	)
	if err := row.Scan(&st.OwnerID, &st.CurrentStreak, &st.MaxStreak, &historyRaw, &lastSealed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("stat get: %w", err)
	}

	if historyRaw.Valid && historyRaw.String != "" {
		if err := json.Unmarshal([]byte(historyRaw.String), &st.History); err != nil {
			return nil, fmt.Errorf("unmarshal history: %w", err)
		}
	}
	if lastSealed.Valid {
		st.LastSealedDate = lastSealed.String
	}
	return &st, nil
}

// GetOrCreate resolves the per-owner stat record, creating a zeroed one on
// first use.
func (r *StatRepo) GetOrCreate(ctx context.Context, ownerID string) (*Stat, error) {
	st, err := r.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if st != nil {
		return st, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO stats (owner_id) VALUES (?)`, ownerID); err != nil {
		return nil, fmt.Errorf("stat insert: %w", err)
	}
	return r.Get(ctx, ownerID)
}

func (r *StatRepo) Update(ctx context.Context, st *Stat) error {
	history := st.History
	if history == nil {
		history = []int{}
	}
	historyJSON, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE stats
		SET current_streak = ?, max_streak = ?, history = ?, last_sealed_date = ?
		WHERE owner_id = ?
	`, st.CurrentStreak, st.MaxStreak, string(historyJSON), st.LastSealedDate, st.OwnerID)
	if err != nil {
		return fmt.Errorf("stat update: %w", err)
	}
	return nil
}
