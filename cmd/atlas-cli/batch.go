package main

import (
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/atlas/atlas"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Match every row of a CSV, TSV or XLSX file",
	Long: `Match one text column of a table and write the results CSV.

Rows whose matched class of business is closed to all four lines of business
are written with only the input description filled in.

Examples:
  atlas-cli batch --input accounts.xlsx
  atlas-cli batch --input accounts.csv --column "Business Description" --output out/results.csv`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("input", "", "CSV, TSV or XLSX file to match")
	f.String("column", "", "text column to match (default: auto-detect)")
	f.String("mode", "text", "scoring mode: text, naics or auto")
	f.String("output", "", "results file (default: "+atlas.DefaultBatchFileName+")")
	f.Bool("stdout", false, "print a summary of the results")
	_ = batchCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "batch"))
	inputPath, _ := cmd.Flags().GetString("input")
	column, _ := cmd.Flags().GetString("column")
	mode, _ := cmd.Flags().GetString("mode")
	outputPath, _ := cmd.Flags().GetString("output")
	summary, _ := cmd.Flags().GetBool("stdout")

	table, err := atlas.ReadTable(strings.TrimSpace(inputPath))
	if err != nil {
		return err
	}
	if column == "" {
		column = cfg.UI.BatchColumn
	}
	column, err = atlas.SelectTextColumn(table, column)
	if err != nil {
		return err
	}
	inputs, err := table.Column(column)
	if err != nil {
		return err
	}
	naicsMode, err := resolveMode(mode, inputs...)
	if err != nil {
		return err
	}
	log.Info("batch input", zap.String("file", filepath.Base(inputPath)), zap.String("column", column), zap.Int("rows", len(inputs)))

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	rows, err := svc.RunBatch(ctx, inputs, naicsMode, nil)
	if err != nil {
		return err
	}

	out, err := resolveOutputPath(outputPath, cfg.UI.ExportName)
	if err != nil {
		return err
	}
	if err := atlas.WriteBatchFile(out, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), out)

	if summary {
		printSummary(cmd.OutOrStdout(), rows)
	}
	return nil
}

func resolveOutputPath(path, fallback string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = fallback
	}
	if path == "" {
		path = atlas.DefaultBatchFileName
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", eris.Wrap(err, "resolve output path")
	}
	return abs, nil
}

func printSummary(w io.Writer, rows []atlas.BatchResultRow) {
	counts := map[atlas.Appetite]int{}
	var order []atlas.Appetite
	masked := 0
	for _, r := range rows {
		if _, ok := counts[r.Appetite]; !ok {
			order = append(order, r.Appetite)
		}
		counts[r.Appetite]++
		if r.Masked {
			masked++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "==== Batch summary ====")
	for _, a := range order {
		fmt.Fprintf(w, "  %-16s %d\n", a, counts[a])
	}
	fmt.Fprintf(w, "  %-16s %d\n", "Masked rows", masked)
	for i, r := range rows {
		if i == 10 {
			fmt.Fprintf(w, "  ... %d more\n", len(rows)-i)
			break
		}
		fmt.Fprintf(w, "%d. %s -> %s\n", i+1, summarize(r.InputDescription), displayCOB(r))
	}
}

func displayCOB(r atlas.BatchResultRow) string {
	if r.Masked {
		return "(" + r.Appetite.String() + ")"
	}
	return fmt.Sprintf("%s [%s] %s", r.COB, r.IndustryCode, r.Appetite)
}

func summarize(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return text
}
