package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/banksift/banksift/internal/aggregate"
	"github.com/banksift/banksift/internal/config"
	"github.com/banksift/banksift/internal/database"
	"github.com/banksift/banksift/internal/database/repository"
	"github.com/banksift/banksift/internal/ingest"
	"github.com/banksift/banksift/internal/ledger"
	"github.com/banksift/banksift/internal/merchant"
	"github.com/banksift/banksift/internal/pipeline"
	"github.com/banksift/banksift/internal/tui"
)

func main() {
	summary := flag.Bool("summary", false, "process without the TUI and print a spending summary")
	sample := flag.Int("sample", 0, "print up to N processed transactions as JSON, amounts and dates stripped, and exit")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: banksift [-summary] [-sample N] <export.csv>")
		os.Exit(2)
	}
	csvPath := flag.Arg(0)

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// repositories
	repos := tui.Repos{
		Merchants:    repository.NewMerchantRepo(db),
		Rules:        repository.NewRuleRepo(db),
		Overrides:    repository.NewOverrideRepo(db),
		Formats:      repository.NewFormatRepo(db),
		Settings:     repository.NewSettingsRepo(db),
		Transactions: repository.NewTransactionRepo(db),
	}

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("open %s: %v", csvPath, err)
	}
	parse, err := ingest.ReadCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("read %s: %v", csvPath, err)
	}

	mapping, detection := resolveFormat(ctx, repos.Formats, parse)
	if mapping == nil {
		log.Fatalf("could not detect date/description/amount columns in %s", csvPath)
	}

	inputs, err := buildInputs(ctx, cfg, repos, parse, *mapping, detection.Type)
	if err != nil {
		log.Fatalf("load stored data: %v", err)
	}

	if *sample > 0 {
		entries := aggregate.SanitizedSample(pipeline.Run(inputs), *sample)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			log.Fatalf("encode sample: %v", err)
		}
		return
	}

	if *summary {
		printSummary(pipeline.Run(inputs), cfg.UI.CurrencySymbol)
		return
	}

	app := tui.New(ctx, cfg, db, repos, parse, *mapping, detection, inputs)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// resolveFormat prefers a previously confirmed mapping for this header
// signature and falls back to fresh detection.
func resolveFormat(ctx context.Context, formats *repository.FormatRepo, parse ingest.ParseResult) (*ledger.ColumnMapping, ingest.AccountTypeDetection) {
	sig := ingest.FormatSignature(parse.Headers)
	if rec, err := formats.Get(ctx, sig); err == nil && rec != nil {
		det := ingest.AccountTypeDetection{
			Type:       rec.AccountType,
			Confidence: "high",
			Reasons:    []string{"format seen before"},
		}
		mapping := rec.Mapping
		return &mapping, det
	}
	mapping := ingest.DetectColumnMapping(parse.Headers)
	det := ingest.DetectAccountType(parse.Headers, parse.Rows)
	return mapping, det
}

func buildInputs(ctx context.Context, cfg config.Config, repos tui.Repos, parse ingest.ParseResult, mapping ledger.ColumnMapping, accountType ledger.AccountType) (pipeline.Inputs, error) {
	userEntries, err := repos.Merchants.List(ctx)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	overrides, err := repos.Overrides.All(ctx)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	rules, err := repos.Rules.List(ctx)
	if err != nil {
		return pipeline.Inputs{}, err
	}
	// config file values apply until settings are saved in the database
	settings, err := repos.Settings.Get(ctx, ledger.RefundSettings{
		DaysWindow:      cfg.Refunds.DaysWindow,
		AmountTolerance: cfg.Refunds.AmountTolerance,
		MatchThreshold:  cfg.Refunds.MatchThreshold,
	})
	if err != nil {
		return pipeline.Inputs{}, err
	}
	return pipeline.Inputs{
		Rows:        parse.Rows,
		Mapping:     mapping,
		AccountType: accountType,
		Dictionary:  merchant.MergeDictionary(merchant.SeedDictionary(), userEntries),
		Overrides:   overrides,
		Rules:       rules,
		Settings:    settings,
	}, nil
}

func printSummary(transactions []ledger.Transaction, currency string) {
	fmt.Printf("%d transactions\n\n", len(transactions))
	fmt.Println("Spending by category:")
	for _, s := range aggregate.ByCategory(transactions, false) {
		fmt.Printf("  %-20s %s%10.2f  (%d)\n", s.Category, currency, s.Total, s.Count)
	}
	fmt.Println("\nTop merchants:")
	merchants := aggregate.ByMerchant(transactions)
	if len(merchants) > 10 {
		merchants = merchants[:10]
	}
	for _, m := range merchants {
		fmt.Printf("  %-30s %s%10.2f  (%d)\n", m.Merchant, currency, m.Total, m.Count)
	}
	fmt.Println("\nMonthly cash flow:")
	for _, m := range aggregate.CashFlow(transactions) {
		fmt.Printf("  %s  in %s%.2f  out %s%.2f  net %s%.2f\n", m.Month, currency, m.Income, currency, m.Spending, currency, m.Net)
	}

	trends := aggregate.MonthlyTrends(transactions)
	if len(trends) > 1 {
		fmt.Println("\nMonthly spending by category:")
		for _, tr := range trends {
			fmt.Printf("  %s\n", tr.Month)
			cats := make([]string, 0, len(tr.Totals))
			for cat := range tr.Totals {
				cats = append(cats, cat)
			}
			sort.Strings(cats)
			for _, cat := range cats {
				fmt.Printf("    %-20s %s%10.2f\n", cat, currency, tr.Totals[cat])
			}
		}
	}
}
