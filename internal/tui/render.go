package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/banksift/banksift/internal/aggregate"
	"github.com/banksift/banksift/internal/ledger"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	creditStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	linkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

var errNoDatabase = errors.New("database not configured")

func (a *App) View() string {
	var body string
	switch a.state {
	case viewTransactions:
		body = a.renderTransactions()
	case viewSummary:
		body = a.renderSummary()
	default:
		body = a.renderMapping()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) renderMapping() string {
	title := titleStyle.Render("Confirm Import")
	out := title + "\n"
	out += fmt.Sprintf("Columns: %s\n", strings.Join(a.parse.Headers, ", "))
	out += "Detected mapping:\n"
	out += fmt.Sprintf("  date:        %s\n", a.mapping.Date)
	out += fmt.Sprintf("  description: %s\n", a.mapping.Description)
	if a.mapping.Amount != "" {
		out += fmt.Sprintf("  amount:      %s\n", a.mapping.Amount)
	} else {
		out += fmt.Sprintf("  debit:       %s\n  credit:      %s\n", a.mapping.Debit, a.mapping.Credit)
	}
	if a.mapping.Category != "" {
		out += fmt.Sprintf("  category:    %s\n", a.mapping.Category)
	}
	out += fmt.Sprintf("Account type: %s (%s confidence)\n", a.detection.Type, a.detection.Confidence)
	for _, r := range a.detection.Reasons {
		out += dimStyle.Render("  - "+r) + "\n"
	}
	for _, w := range a.parse.Warnings {
		out += dimStyle.Render("  ! "+w) + "\n"
	}
	out += fmt.Sprintf("%d rows ready.\n", len(a.parse.Rows))
	out += "[enter] Process  [a] Toggle account type  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderTransactions() string {
	title := titleStyle.Render("Transactions")
	out := title + "\n"
	for i, t := range a.transactions {
		marker := " "
		if i == a.txCursor {
			marker = "▶"
		}
		amount := fmt.Sprintf("%s%.2f", a.currency, t.AmountSigned)
		line := fmt.Sprintf("%s %s  %-30s  %10s  %-16s %.2f  %s",
			marker, t.Date, clip(t.MerchantCanonical, 30), amount, clip(t.Category, 16), t.CategoryConfidence, t.Type)
		if t.AmountSigned > 0 {
			line = creditStyle.Render(line)
		}
		if t.LinkedTransactionID != "" {
			line += linkStyle.Render("  ↩ linked")
		}
		out += line + "\n"
	}
	out += "[c] Category  [m] Merchant  [s] Summary  [w] Save  [q] Quit"
	if a.saved {
		out += dimStyle.Render("  (saved)")
	}
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSummary() string {
	title := titleStyle.Render("Spending Summary")
	out := title + "\n"
	for _, s := range aggregate.ByCategory(a.transactions, false) {
		out += fmt.Sprintf("  %-20s %s%10.2f  (%d txns)\n", s.Category, a.currency, s.Total, s.Count)
	}
	out += "\nMonthly cash flow:\n"
	for _, m := range aggregate.CashFlow(a.transactions) {
		out += fmt.Sprintf("  %s  in %s%.2f  out %s%.2f  net %s%.2f\n",
			m.Month, a.currency, m.Income, a.currency, m.Spending, a.currency, m.Net)
	}
	out += "[esc] Back  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalCategoryPicker:
		out := titleStyle.Render("Select Category") + "\n"
		for i, c := range ledger.Categories {
			marker := " "
			if i == a.catCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %s\n", marker, c)
		}
		out += "[enter] Apply  [esc] Cancel"
		return out
	case modalMerchantEdit:
		return titleStyle.Render("Correct merchant") + "\n" + a.merchInput.View() + "\n[enter] Save  [esc] Cancel"
	default:
		return ""
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func saveSummary(inserted, skipped, flagged int) string {
	out := fmt.Sprintf("saved %d transactions", inserted)
	if skipped > 0 {
		out += fmt.Sprintf(", %d duplicates skipped", skipped)
	}
	if flagged > 0 {
		out += fmt.Sprintf(", %d possible duplicates saved anyway", flagged)
	}
	return out
}

func ruleID(merchant, category string) string {
	return "rule:" + strings.ToLower(merchant) + ":" + strings.ToLower(category)
}

