package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/banksift/banksift/internal/ledger"
)

// TransactionFilters defines list filters.
type TransactionFilters struct {
	Category string
	Merchant string
	Type     string
	Month    string // "2024-03"; empty = no month filter
	Search   string
}

// TransactionRepo handles processed transactions.
type TransactionRepo struct{ db *sql.DB }

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t ledger.Transaction, sourceHash string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, date, amount, raw_description, merchant_canonical, merchant_confidence,
	 category, category_confidence, csv_category, txn_type, account_type,
	 linked_transaction_id, tags, source_row, source_hash, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`,
		t.ID, t.Date, t.AmountSigned, t.RawDescription, t.MerchantCanonical, t.MerchantConfidence,
		t.Category, t.CategoryConfidence, t.CSVCategory, string(t.Type), string(t.AccountType),
		nullable(t.LinkedTransactionID), encodeStrings(t.Tags), t.SourceRow, sourceHash)
	return err
}

// InsertBatch writes transactions inside tx so a failed import leaves
// nothing behind.
func (r *TransactionRepo) InsertBatch(ctx context.Context, tx *sql.Tx, ts []ledger.Transaction, hashes []string) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO transactions(
	 id, date, amount, raw_description, merchant_canonical, merchant_confidence,
	 category, category_confidence, csv_category, txn_type, account_type,
	 linked_transaction_id, tags, source_row, source_hash, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, t := range ts {
		hash := ""
		if i < len(hashes) {
			hash = hashes[i]
		}
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Date, t.AmountSigned, t.RawDescription, t.MerchantCanonical, t.MerchantConfidence,
			t.Category, t.CategoryConfidence, t.CSVCategory, string(t.Type), string(t.AccountType),
			nullable(t.LinkedTransactionID), encodeStrings(t.Tags), t.SourceRow, hash); err != nil {
			return err
		}
	}
	return nil
}

func (r *TransactionRepo) UpdateCategory(ctx context.Context, id, category string, confidence float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, category_confidence = ? WHERE id = ?`,
		category, confidence, id)
	return err
}

func (r *TransactionRepo) UpdateMerchant(ctx context.Context, id, canonical string, confidence float64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET merchant_canonical = ?, merchant_confidence = ? WHERE id = ?`,
		canonical, confidence, id)
	return err
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]ledger.Transaction, error) {
	var where []string
	var args []interface{}

	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Merchant != "" {
		where = append(where, "merchant_canonical = ?")
		args = append(args, f.Merchant)
	}
	if f.Type != "" {
		where = append(where, "txn_type = ?")
		args = append(args, f.Type)
	}
	if f.Month != "" {
		where = append(where, "substr(date, 1, 7) = ?")
		args = append(args, f.Month)
	}
	if f.Search != "" {
		where = append(where, "raw_description LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := selectColumns + " FROM transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, source_row DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SourceHashes returns every stored source hash, for duplicate checks
// before a re-import.
func (r *TransactionRepo) SourceHashes(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT source_hash FROM transactions WHERE source_hash != ''`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]bool)
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		out[h] = true
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

const selectColumns = `SELECT id, date, amount, raw_description, merchant_canonical,
 merchant_confidence, category, category_confidence, csv_category, txn_type,
 account_type, linked_transaction_id, tags, source_row`

// scanTransaction handles nullable fields for both Row and Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (ledger.Transaction, error) {
	var t ledger.Transaction
	var txnType, accountType, tags string
	var linked sql.NullString
	if err := row.Scan(&t.ID, &t.Date, &t.AmountSigned, &t.RawDescription,
		&t.MerchantCanonical, &t.MerchantConfidence, &t.Category, &t.CategoryConfidence,
		&t.CSVCategory, &txnType, &accountType, &linked, &tags, &t.SourceRow); err != nil {
		return ledger.Transaction{}, err
	}
	t.Type = ledger.TransactionType(txnType)
	t.AccountType = ledger.AccountType(accountType)
	if linked.Valid {
		t.LinkedTransactionID = linked.String
	}
	t.Tags = decodeStrings(tags)
	return t, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
