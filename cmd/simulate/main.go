// cmd/simulate/main.go

// 離線 what-if 模擬：由情境檔或隨機客戶建立帳本，往後推進 N 個月並印出每月報告。
// 真實帳本（情境檔）不會被修改；可另外匯出模擬結果。

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"banksim/internal/bank"
	"banksim/internal/config"
	"banksim/internal/generator"
	"banksim/internal/logging"
	"banksim/internal/money"
	"banksim/internal/storage"
)

func main() {
	def := generator.DefaultConfig()
	var (
		months       = flag.Int("months", 12, "number of months to simulate (1-30)")
		customers    = flag.Int("customers", def.Customers, "number of random customers when no scenario is given")
		seed         = flag.Uint64("seed", 0, "random seed for deterministic customers (0 = random)")
		capital      = flag.String("capital", bank.DefaultInitialCapital.String(), "initial bank capital")
		scenario     = flag.String("scenario", "", "scenario file to start from instead of random customers")
		saveScenario = flag.String("save-scenario", "", "write the starting ledger to this scenario file")
		out          = flag.String("out", "", "write the projections as a JSON export to this file")
		asJSON       = flag.Bool("json", false, "print projections as JSON instead of a table")
		logLevel     = flag.String("log-level", "warn", "log level (debug|info|warn|error)")
	)
	flag.Parse()

	logger := logging.NewWithWriter(config.LoggingConfig{Level: *logLevel}, os.Stderr)

	initial, err := decimal.NewFromString(*capital)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -capital: %v\n", err)
		os.Exit(2)
	}

	b := bank.NewBank(initial, logger)
	if *scenario != "" {
		sc, err := storage.LoadScenario(*scenario)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load scenario: %v\n", err)
			os.Exit(1)
		}
		if err := b.Restore(sc); err != nil {
			fmt.Fprintf(os.Stderr, "invalid scenario: %v\n", err)
			os.Exit(1)
		}
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		res, err := generator.New(generator.Config{Customers: *customers, Seed: *seed}).Populate(ctx, b)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
			os.Exit(1)
		}
		if res.Skipped > 0 {
			fmt.Fprintf(os.Stderr, "skipped %d customers the bank could not afford\n", res.Skipped)
		}
	}

	if *saveScenario != "" {
		if err := storage.SaveScenario(*saveScenario, b.Snapshot()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save scenario: %v\n", err)
			os.Exit(1)
		}
	}

	projections, err := b.Simulate(*months)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation failed: %v\n", err)
		os.Exit(2)
	}

	if *out != "" {
		note := fmt.Sprintf("%d months from month %d", len(projections), b.Now())
		if err := storage.SaveExport(*out, note, projections); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write export: %v\n", err)
			os.Exit(1)
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(projections); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write projections: %v\n", err)
			os.Exit(1)
		}
		return
	}
	printReport(os.Stdout, b.Totals(), projections)
}

func printReport(w io.Writer, start bank.Totals, projections []bank.Projection) {
	fmt.Fprintf(w, "Starting at month %d with %d customers, capital %s\n\n",
		start.Month, start.Customers, money.Format(start.Capital))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "month\tactive\toverdue\tlocked\tserviced\tcapital\t")
	for _, p := range projections {
		s := p.Summary
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\t%s\t\n",
			p.Month, s.Active, s.OverdueLoans, s.Locked, money.Format(s.AmountServiced), money.Format(p.Capital))
	}
	_ = tw.Flush()

	if len(projections) == 0 {
		return
	}
	last := projections[len(projections)-1]
	fmt.Fprintf(w, "\nCustomers at month %d:\n", last.Month)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "name\tstatus\tsavings\tloans\t")
	for _, c := range last.Customers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", c.Name, c.Status, money.Format(c.Savings), money.Format(c.TotalLoans))
	}
	_ = tw.Flush()
}
