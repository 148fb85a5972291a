package repository

import (
	"context"
	"database/sql"

	"github.com/banksift/banksift/internal/ledger"
)

// SettingsRepo stores the single refund-linker settings row.
type SettingsRepo struct{ db *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Save(ctx context.Context, s ledger.RefundSettings) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO refund_settings(id, days_window, amount_tolerance, match_threshold)
	VALUES(1, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 days_window = excluded.days_window,
	 amount_tolerance = excluded.amount_tolerance,
	 match_threshold = excluded.match_threshold
	`, s.DaysWindow, s.AmountTolerance, s.MatchThreshold)
	return err
}

// Get returns stored settings, falling back to fallback when the row
// does not exist yet.
func (r *SettingsRepo) Get(ctx context.Context, fallback ledger.RefundSettings) (ledger.RefundSettings, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT days_window, amount_tolerance, match_threshold FROM refund_settings WHERE id = 1`)
	var s ledger.RefundSettings
	err := row.Scan(&s.DaysWindow, &s.AmountTolerance, &s.MatchThreshold)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return ledger.RefundSettings{}, err
	}
	return s, nil
}
