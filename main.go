package main

import (
	"os"

	"github.com/spf13/cobra"

	"yashubustudio/atlas/internal/app"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:          "atlas",
		Short:        "Desktop class-of-business and appetite lookup",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.yaml (default: ./config.yaml)")
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
