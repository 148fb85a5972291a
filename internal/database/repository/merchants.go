package repository

import (
	"context"
	"database/sql"

	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
)

// MerchantRepo stores user merchant dictionary entries.
type MerchantRepo struct{ db *sql.DB }

func NewMerchantRepo(db *sql.DB) *MerchantRepo { return &MerchantRepo{db: db} }

func (r *MerchantRepo) Upsert(ctx context.Context, e ledger.MerchantEntry) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO merchants(canonical_name, aliases, patterns, default_category, created_at, updated_at)
	VALUES(?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(canonical_name) DO UPDATE SET
	 aliases = excluded.aliases,
	 patterns = excluded.patterns,
	 default_category = excluded.default_category,
	 updated_at = CURRENT_TIMESTAMP
	`, e.CanonicalName, encodeStrings(e.Aliases), encodeStrings(e.PatternStrings), e.DefaultCategory)
	return err
}

func (r *MerchantRepo) Delete(ctx context.Context, canonicalName string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM merchants WHERE canonical_name = ?`, canonicalName)
	return err
}

// List returns all stored entries with their patterns recompiled.
func (r *MerchantRepo) List(ctx context.Context) ([]ledger.MerchantEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT canonical_name, aliases, patterns, COALESCE(default_category, '')
	FROM merchants ORDER BY canonical_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.MerchantEntry
	for rows.Next() {
		var name, aliases, patterns, category string
		if err := rows.Scan(&name, &aliases, &patterns, &category); err != nil {
			return nil, err
		}
		out = append(out, merchant.NewEntry(name, decodeStrings(aliases), decodeStrings(patterns), category))
	}
	return out, rows.Err()
}
