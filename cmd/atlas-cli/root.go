package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yashubustudio/atlas/atlas"
)

var (
	cfgPath string
	cfg     atlas.Config
)

var rootCmd = &cobra.Command{
	Use:   "atlas-cli",
	Short: "Match business descriptions to a class of business and appetite",
	Long: `Matches free-text business descriptions or NAICS-style queries against the
class-of-business reference table and reports the matched row, its industry
code and the appetite across PL, GL, BOP and Cyber.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := atlas.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if _, err := atlas.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config.yaml (default: ./config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newService builds the embedder and loads the reference tables named in the config.
func newService(ctx context.Context) (*atlas.Service, error) {
	embedder, err := atlas.NewOrtEmbedder(cfg.Embedder, zap.L().Named("embedder"))
	if err != nil {
		return nil, eris.Wrap(err, "init embedder")
	}
	svc, err := atlas.NewService(embedder, cfg, zap.L())
	if err != nil {
		embedder.Close()
		return nil, eris.Wrap(err, "init service")
	}
	if err := svc.LoadReferenceFiles(ctx, cfg.Reference.Path, cfg.Reference.PartnerPath); err != nil {
		svc.Close()
		return nil, eris.Wrap(err, "load reference")
	}
	return svc, nil
}

// resolveMode turns the --mode flag into the NAICS-mode switch. In auto mode a query is
// scored in NAICS mode when every sample looks like a six digit NAICS code.
func resolveMode(mode string, samples ...string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "text":
		return false, nil
	case "naics":
		return true, nil
	case "auto":
		seen := false
		for _, s := range samples {
			if strings.TrimSpace(s) == "" {
				continue
			}
			if !atlas.LooksLikeNAICSCode(s) {
				return false, nil
			}
			seen = true
		}
		return seen, nil
	default:
		return false, eris.Errorf("unknown mode %q (want text, naics or auto)", mode)
	}
}
