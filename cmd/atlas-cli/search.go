package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/atlas/atlas"
)

var searchCmd = &cobra.Command{
	Use:   "search TEXT",
	Short: "Match a single business description",
	Long: `Match one description against the reference table.

Examples:
  atlas-cli search "artisan bakery"
  atlas-cli search 311811 --mode auto
  atlas-cli search "retail bakeries" --mode naics --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.String("mode", "text", "scoring mode: text, naics or auto")
	f.Bool("json", false, "print the result as JSON")
	f.Bool("alternatives", false, "also print the runner-up classes of business")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return eris.New("search text is empty")
	}
	mode, _ := cmd.Flags().GetString("mode")
	naicsMode, err := resolveMode(mode, text)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	showAlt, _ := cmd.Flags().GetBool("alternatives")

	svc, err := newService(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	res, err := svc.Match(ctx, text, naicsMode)
	if err != nil {
		return err
	}
	zap.L().Debug("search complete", zap.String("cob", res.Matched.COB), zap.Bool("naics_mode", naicsMode))

	out := cmd.OutOrStdout()
	if asJSON {
		return writeSearchJSON(out, toSearchResult(res))
	}
	printSearch(out, res, showAlt)
	return nil
}

func toSearchResult(res atlas.MatchResult) atlas.SearchResult {
	return atlas.SearchResult{
		COB:           res.Matched.COB,
		IndustryCode:  res.Matched.IndustryCode,
		Appetite:      res.Appetite.String(),
		AppetiteStyle: res.Appetite.Style(),
		LOBDetails:    res.Matched.Flags,
		Score:         res.Score.Total,
	}
}

func writeSearchJSON(w io.Writer, res atlas.SearchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(res), "encode result")
}

func printSearch(w io.Writer, res atlas.MatchResult, alternatives bool) {
	fmt.Fprintf(w, "Class of business: %s\n", res.Matched.COB)
	code := res.Matched.IndustryCode
	if sector := atlas.SectorLabel(code); sector != "" {
		code = fmt.Sprintf("%s (%s)", code, sector)
	}
	fmt.Fprintf(w, "Industry code:     %s\n", code)
	fmt.Fprintf(w, "Appetite:          %s\n", res.Appetite)
	for _, l := range atlas.LOBs {
		fmt.Fprintf(w, "  %-6s %s\n", l.String()+":", res.Matched.Flags.Value(l))
	}
	fmt.Fprintf(w, "Score:             %.3f (keyword=%.3f semantic=%.3f naics=%.3f boost=%.2f)\n",
		res.Score.Total, res.Score.Keyword, res.Score.Semantic, res.Score.NAICS, res.Score.PartnerBoost)
	if !alternatives || len(res.Alternatives) <= 1 {
		return
	}
	fmt.Fprintln(w, "Alternatives:")
	for _, s := range res.Alternatives[1:] {
		fmt.Fprintf(w, "  - %s [%s] (score=%.3f)\n", s.Label, s.Code, s.Score.Total)
	}
}
