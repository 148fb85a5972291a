package repository

import (
	"context"
	"database/sql"
)

// OverrideRepo stores per-description merchant corrections. An override
// pins a raw description to a canonical merchant name and wins over
// every dictionary match.
type OverrideRepo struct{ db *sql.DB }

func NewOverrideRepo(db *sql.DB) *OverrideRepo { return &OverrideRepo{db: db} }

func (r *OverrideRepo) Set(ctx context.Context, rawDescription, canonicalName string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO overrides(raw_description, canonical_name, created_at)
	VALUES(?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(raw_description) DO UPDATE SET canonical_name = excluded.canonical_name
	`, rawDescription, canonicalName)
	return err
}

func (r *OverrideRepo) Delete(ctx context.Context, rawDescription string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM overrides WHERE raw_description = ?`, rawDescription)
	return err
}

// All returns the override map keyed by raw description.
func (r *OverrideRepo) All(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT raw_description, canonical_name FROM overrides`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var raw, name string
		if err := rows.Scan(&raw, &name); err != nil {
			return nil, err
		}
		out[raw] = name
	}
	return out, rows.Err()
}
