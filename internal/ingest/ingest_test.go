package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/banksift/banksift/internal/ledger"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	data := strings.Join([]string{
		" Date ,Description,Amount",
		"2024-03-01,STARBUCKS,-6.50",
		"",
		"2024-03-02,TARGET",
		"2024-03-03,SHELL,-40.00,extra",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, []string{"Date", "Description", "Amount"}, res.Headers)
	require.Len(t, res.Rows, 3)
	require.Equal(t, "", res.Rows[1]["Amount"]) // short row padded
	require.Equal(t, "-40.00", res.Rows[2]["Amount"])
	require.Len(t, res.Warnings, 2)

	_, err = ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"2024-03-05":   "2024-03-05",
		"3/5/2024":     "2024-03-05",
		"03-05-2024":   "2024-03-05",
		"12/31/99":     "1999-12-31",
		"1/2/50":       "2050-01-02",
		"2024/03/05":   "2024-03-05",
		"Mar 5, 2024":  "2024-03-05",
		"5 Mar 2024":   "2024-03-05",
		"not a date":   "not a date",
		" 2024-03-05 ": "2024-03-05",
	}
	for raw, want := range cases {
		require.Equal(t, want, ParseDate(raw), "raw=%q", raw)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 1234.56, ParseAmount("$1,234.56"))
	require.Equal(t, -45.0, ParseAmount("(45.00)"))
	require.Equal(t, 12.5, ParseAmount(" 12.5 "))
	require.Equal(t, -7.25, ParseAmount("-7.25"))
	require.Equal(t, 0.0, ParseAmount("abc"))
	require.Equal(t, 0.0, ParseAmount(""))
}

func TestDetectColumnMapping(t *testing.T) {
	t.Parallel()

	m := DetectColumnMapping([]string{"Date", "Description", "Amount", "Category"})
	require.NotNil(t, m)
	require.Equal(t, "Date", m.Date)
	require.Equal(t, "Amount", m.Amount)
	require.Equal(t, "Category", m.Category)

	m = DetectColumnMapping([]string{"Posting Date", "Memo", "Debit", "Credit"})
	require.NotNil(t, m)
	require.Equal(t, "Posting Date", m.Date)
	require.Equal(t, "Memo", m.Description)
	require.Equal(t, "Debit", m.Debit)
	require.Equal(t, "Credit", m.Credit)
	require.Empty(t, m.Amount)

	require.Nil(t, DetectColumnMapping([]string{"Date", "Description"}))
	require.Nil(t, DetectColumnMapping([]string{"Foo", "Bar", "Amount"}))
}

func TestFormatSignature(t *testing.T) {
	t.Parallel()

	sig := FormatSignature([]string{"Description", " Date ", "Amount"})
	require.Equal(t, "amount|date|description", sig)
	require.Equal(t, sig, FormatSignature([]string{"Amount", "Date", "Description"}))
}

func TestDetectAccountType(t *testing.T) {
	t.Parallel()

	t.Run("credit card headers", func(t *testing.T) {
		t.Parallel()
		det := DetectAccountType([]string{"Date", "Description", "Amount", "Credit Limit", "Statement Balance"}, nil)
		require.Equal(t, ledger.AccountCreditCard, det.Type)
		require.Equal(t, "high", det.Confidence)
		require.NotEmpty(t, det.Reasons)
	})

	t.Run("bank transaction text", func(t *testing.T) {
		t.Parallel()
		rows := []ledger.RawRow{
			{"Description": "DIRECT DEPOSIT ACME PAYROLL"},
			{"Description": "ATM WITHDRAWAL MAIN ST"},
		}
		det := DetectAccountType([]string{"Date", "Description", "Amount"}, rows)
		require.Equal(t, ledger.AccountBank, det.Type)
		require.Equal(t, "high", det.Confidence)
	})

	t.Run("no signals", func(t *testing.T) {
		t.Parallel()
		det := DetectAccountType([]string{"Date", "Description", "Amount"}, nil)
		require.Equal(t, ledger.AccountUnknown, det.Type)
		require.Equal(t, "low", det.Confidence)
	})
}

func TestMapRows(t *testing.T) {
	t.Parallel()

	t.Run("single amount column", func(t *testing.T) {
		t.Parallel()
		rows := []ledger.RawRow{
			{"Date": "3/5/2024", "Description": " STARBUCKS #123 ", "Amount": "($6.50)", "Category": " Dining "},
		}
		mapping := ledger.ColumnMapping{Date: "Date", Description: "Description", Amount: "Amount", Category: "Category"}
		out := MapRows(rows, mapping, ledger.AccountCreditCard)
		require.Len(t, out, 1)
		require.NotEmpty(t, out[0].ID)
		require.Equal(t, "2024-03-05", out[0].Date)
		require.Equal(t, -6.50, out[0].AmountSigned)
		require.Equal(t, "STARBUCKS #123", out[0].RawDescription)
		require.Equal(t, "Dining", out[0].CSVCategory)
		require.Equal(t, ledger.TypeUnknown, out[0].Type)
		require.Equal(t, ledger.AccountCreditCard, out[0].AccountType)
		require.Equal(t, 0, out[0].SourceRow)
	})

	t.Run("split debit and credit columns", func(t *testing.T) {
		t.Parallel()
		rows := []ledger.RawRow{
			{"Date": "2024-03-01", "Description": "GROCERY", "Debit": "52.40", "Credit": ""},
			{"Date": "2024-03-02", "Description": "PAYROLL", "Debit": "", "Credit": "2500.00"},
		}
		mapping := ledger.ColumnMapping{Date: "Date", Description: "Description", Debit: "Debit", Credit: "Credit"}
		out := MapRows(rows, mapping, ledger.AccountBank)
		require.Equal(t, -52.40, out[0].AmountSigned)
		require.Equal(t, 2500.0, out[1].AmountSigned)
		require.Equal(t, 1, out[1].SourceRow)
	})
}
