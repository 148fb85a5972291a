// Package tui is the interactive import flow: confirm the detected
// column mapping and account type, review processed transactions, and
// persist the run.
package tui

import (
	"context"
	"database/sql"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/banksift/banksift/internal/config"
	"github.com/banksift/banksift/internal/database"
	"github.com/banksift/banksift/internal/database/repository"
	"github.com/banksift/banksift/internal/dedup"
	"github.com/banksift/banksift/internal/ingest"
	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/pipeline"
)

// App ties together views.
type App struct {
	ctx   context.Context
	db    *sql.DB
	repos Repos
	cfg   config.Config

	// import inputs
	parse     ingest.ParseResult
	mapping   ledger.ColumnMapping
	detection ingest.AccountTypeDetection
	inputs    pipeline.Inputs

	state        appState
	modal        modalState
	transactions []ledger.Transaction
	txCursor     int
	catCursor    int
	merchInput   textinput.Model
	status       string
	currency     string
	saved        bool
}

type Repos struct {
	Merchants    *repository.MerchantRepo
	Rules        *repository.RuleRepo
	Overrides    *repository.OverrideRepo
	Formats      *repository.FormatRepo
	Settings     *repository.SettingsRepo
	Transactions *repository.TransactionRepo
}

type appState string

const (
	viewMapping      appState = "mapping"
	viewTransactions appState = "transactions"
	viewSummary      appState = "summary"
)

type modalState string

const (
	modalNone           modalState = ""
	modalCategoryPicker modalState = "categoryPicker"
	modalMerchantEdit   modalState = "merchantEdit"
)

func New(ctx context.Context, cfg config.Config, db *sql.DB, repos Repos, parse ingest.ParseResult, mapping ledger.ColumnMapping, detection ingest.AccountTypeDetection, inputs pipeline.Inputs) *App {
	ti := textinput.New()
	ti.Placeholder = "canonical merchant name"
	ti.CharLimit = 80
	return &App{
		ctx:        ctx,
		db:         db,
		repos:      repos,
		cfg:        cfg,
		parse:      parse,
		mapping:    mapping,
		detection:  detection,
		inputs:     inputs,
		state:      viewMapping,
		merchInput: ti,
		currency:   cfg.UI.CurrencySymbol,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewMapping:
			return a.handleMappingKey(m)
		case viewTransactions:
			return a.handleTransactionsKey(m)
		case viewSummary:
			return a.handleSummaryKey(m)
		}
	case processedMsg:
		a.transactions = []ledger.Transaction(m)
		a.txCursor = 0
		a.state = viewTransactions
		a.status = ""
	case savedMsg:
		a.saved = true
		a.status = string(m)
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleMappingKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c", "esc":
		return a, tea.Quit
	case "a":
		a.toggleAccountType()
	case "enter":
		a.status = "processing..."
		return a, a.processCmd()
	}
	return a, nil
}

func (a *App) toggleAccountType() {
	switch a.detection.Type {
	case ledger.AccountCreditCard:
		a.detection.Type = ledger.AccountBank
	default:
		a.detection.Type = ledger.AccountCreditCard
	}
	a.detection.Confidence = "manual"
	a.inputs.AccountType = a.detection.Type
}

func (a *App) handleTransactionsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.txCursor > 0 {
			a.txCursor--
		}
	case "down", "j":
		if a.txCursor < len(a.transactions)-1 {
			a.txCursor++
		}
	case "c":
		if len(a.transactions) > 0 {
			a.modal = modalCategoryPicker
			a.catCursor = 0
		}
	case "m":
		if len(a.transactions) > 0 {
			a.modal = modalMerchantEdit
			a.merchInput.SetValue(a.transactions[a.txCursor].MerchantCanonical)
			a.merchInput.Focus()
		}
	case "s":
		a.state = viewSummary
	case "w":
		a.status = "saving..."
		return a, a.saveCmd()
	}
	return a, nil
}

func (a *App) handleSummaryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "t":
		a.state = viewTransactions
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalCategoryPicker:
		switch m.String() {
		case "esc":
			a.modal = modalNone
		case "up", "k":
			if a.catCursor > 0 {
				a.catCursor--
			}
		case "down", "j":
			if a.catCursor < len(ledger.Categories)-1 {
				a.catCursor++
			}
		case "enter":
			a.modal = modalNone
			if len(a.transactions) == 0 {
				return a, nil
			}
			category := ledger.Categories[a.catCursor]
			tx := a.transactions[a.txCursor]
			return a, a.setCategoryRuleCmd(tx, category)
		}
	case modalMerchantEdit:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.merchInput.Blur()
			return a, nil
		case tea.KeyEnter:
			a.modal = modalNone
			a.merchInput.Blur()
			name := strings.TrimSpace(a.merchInput.Value())
			if name == "" || len(a.transactions) == 0 {
				return a, nil
			}
			return a, a.setOverrideCmd(a.transactions[a.txCursor].RawDescription, name)
		}
		var cmd tea.Cmd
		a.merchInput, cmd = a.merchInput.Update(m)
		return a, cmd
	}
	return a, nil
}

// commands

func (a *App) processCmd() tea.Cmd {
	return func() tea.Msg {
		return processedMsg(pipeline.Run(a.inputs))
	}
}

// setOverrideCmd records a merchant correction and reprocesses, so the
// fix applies to every transaction with the same raw description.
func (a *App) setOverrideCmd(rawDescription, canonical string) tea.Cmd {
	return func() tea.Msg {
		if a.repos.Overrides != nil {
			if err := a.repos.Overrides.Set(a.ctx, rawDescription, canonical); err != nil {
				return errMsg{err}
			}
		}
		if a.inputs.Overrides == nil {
			a.inputs.Overrides = map[string]string{}
		}
		a.inputs.Overrides[rawDescription] = canonical
		return processedMsg(pipeline.Run(a.inputs))
	}
}

// setCategoryRuleCmd turns a manual category pick into a merchant rule
// so future imports categorize the same merchant consistently.
func (a *App) setCategoryRuleCmd(tx ledger.Transaction, category string) tea.Cmd {
	return func() tea.Msg {
		rule := ledger.Rule{
			ID:       ruleID(tx.MerchantCanonical, category),
			Enabled:  true,
			Priority: 0,
			Name:     "set " + tx.MerchantCanonical + " to " + category,
			Match:    ledger.RuleMatch{Merchant: tx.MerchantCanonical},
			Action:   ledger.RuleAction{Category: category},
		}
		if a.repos.Rules != nil {
			if err := a.repos.Rules.Upsert(a.ctx, rule); err != nil {
				return errMsg{err}
			}
		}
		a.inputs.Rules = append(a.inputs.Rules, rule)
		return processedMsg(pipeline.Run(a.inputs))
	}
}

func (a *App) saveCmd() tea.Cmd {
	return func() tea.Msg {
		if a.db == nil || a.repos.Transactions == nil {
			return errMsg{errNoDatabase}
		}
		stored, err := a.repos.Transactions.SourceHashes(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		var fresh []ledger.Transaction
		var hashes []string
		for _, t := range a.transactions {
			h := dedup.SourceHash(t)
			if stored[h] {
				continue
			}
			fresh = append(fresh, t)
			hashes = append(hashes, h)
		}
		// near-misses (same amount, close date, similar text) are saved
		// but called out
		existing, err := a.repos.Transactions.List(a.ctx, repository.TransactionFilters{})
		if err != nil {
			return errMsg{err}
		}
		flagged := 0
		for _, m := range dedup.Detect(existing, fresh) {
			if !m.Exact {
				flagged++
			}
		}
		err = database.WithTx(a.db, func(sqlTx *sql.Tx) error {
			return a.repos.Transactions.InsertBatch(a.ctx, sqlTx, fresh, hashes)
		})
		if err != nil {
			return errMsg{err}
		}
		if a.repos.Formats != nil {
			rec := ledger.FormatSignatureRecord{
				ID:          ingest.FormatSignature(a.parse.Headers),
				Columns:     a.parse.Headers,
				Mapping:     a.mapping,
				AccountType: a.detection.Type,
			}
			if err := a.repos.Formats.Save(a.ctx, rec); err != nil {
				return errMsg{err}
			}
		}
		return savedMsg(saveSummary(len(fresh), len(a.transactions)-len(fresh), flagged))
	}
}

// messages

type processedMsg []ledger.Transaction

type savedMsg string

type statusMsg string

type errMsg struct{ error }
