package repository

import (
	"context"
	"database/sql"

	"github.com/banksift/banksift/internal/ledger"
)

// FormatRepo remembers confirmed column mappings keyed by header
// signature, so a re-imported export from the same bank skips the
// mapping confirmation step.
type FormatRepo struct{ db *sql.DB }

func NewFormatRepo(db *sql.DB) *FormatRepo { return &FormatRepo{db: db} }

func (r *FormatRepo) Save(ctx context.Context, rec ledger.FormatSignatureRecord) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO formats(signature, name, columns, date_column, description_column,
	 amount_column, debit_column, credit_column, category_column, account_type, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(signature) DO UPDATE SET
	 name = excluded.name,
	 columns = excluded.columns,
	 date_column = excluded.date_column,
	 description_column = excluded.description_column,
	 amount_column = excluded.amount_column,
	 debit_column = excluded.debit_column,
	 credit_column = excluded.credit_column,
	 category_column = excluded.category_column,
	 account_type = excluded.account_type
	`, rec.ID, rec.Name, encodeStrings(rec.Columns),
		rec.Mapping.Date, rec.Mapping.Description, rec.Mapping.Amount,
		rec.Mapping.Debit, rec.Mapping.Credit, rec.Mapping.Category,
		string(rec.AccountType))
	return err
}

// Get returns the record for a signature, or nil when unknown.
func (r *FormatRepo) Get(ctx context.Context, signature string) (*ledger.FormatSignatureRecord, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT signature, name, columns, date_column, description_column,
	 COALESCE(amount_column, ''), COALESCE(debit_column, ''), COALESCE(credit_column, ''),
	 COALESCE(category_column, ''), account_type
	FROM formats WHERE signature = ?`, signature)

	var rec ledger.FormatSignatureRecord
	var columns, accountType string
	err := row.Scan(&rec.ID, &rec.Name, &columns,
		&rec.Mapping.Date, &rec.Mapping.Description, &rec.Mapping.Amount,
		&rec.Mapping.Debit, &rec.Mapping.Credit, &rec.Mapping.Category, &accountType)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Columns = decodeStrings(columns)
	rec.AccountType = ledger.AccountType(accountType)
	return &rec, nil
}
