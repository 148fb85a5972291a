package repository

import (
	"context"
	"database/sql"

	"github.com/banksift/banksift/internal/ledger"
)

// RuleRepo stores user categorization rules.
type RuleRepo struct{ db *sql.DB }

func NewRuleRepo(db *sql.DB) *RuleRepo { return &RuleRepo{db: db} }

func (r *RuleRepo) Upsert(ctx context.Context, rule ledger.Rule) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO rules(id, name, merchant, keyword, regex, amount_min, amount_max,
	 category, txn_type, tags, priority, enabled, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, '[]', ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name = excluded.name,
	 merchant = excluded.merchant,
	 keyword = excluded.keyword,
	 regex = excluded.regex,
	 amount_min = excluded.amount_min,
	 amount_max = excluded.amount_max,
	 category = excluded.category,
	 txn_type = excluded.txn_type,
	 priority = excluded.priority,
	 enabled = excluded.enabled
	`, rule.ID, rule.Name, rule.Match.Merchant, rule.Match.Keyword, rule.Match.Regex,
		rule.Match.AmountMin, rule.Match.AmountMax,
		rule.Action.Category, string(rule.Action.Type), rule.Priority, rule.Enabled)
	return err
}

func (r *RuleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rules WHERE id = ?`, id)
	return err
}

// List returns all rules ordered by priority then name.
func (r *RuleRepo) List(ctx context.Context) ([]ledger.Rule, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, COALESCE(merchant, ''), COALESCE(keyword, ''), COALESCE(regex, ''),
	 amount_min, amount_max, COALESCE(category, ''), COALESCE(txn_type, ''), priority, enabled
	FROM rules ORDER BY priority, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Rule
	for rows.Next() {
		var rule ledger.Rule
		var txnType string
		var amountMin, amountMax sql.NullFloat64
		if err := rows.Scan(&rule.ID, &rule.Name, &rule.Match.Merchant, &rule.Match.Keyword,
			&rule.Match.Regex, &amountMin, &amountMax,
			&rule.Action.Category, &txnType, &rule.Priority, &rule.Enabled); err != nil {
			return nil, err
		}
		if amountMin.Valid {
			rule.Match.AmountMin = &amountMin.Float64
		}
		if amountMax.Valid {
			rule.Match.AmountMax = &amountMax.Float64
		}
		rule.Action.Type = ledger.TransactionType(txnType)
		out = append(out, rule)
	}
	return out, rows.Err()
}
