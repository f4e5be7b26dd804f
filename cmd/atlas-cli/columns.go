package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"yashubustudio/atlas/atlas"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "List the text columns of a batch input file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		inputPath, _ := cmd.Flags().GetString("input")
		table, err := atlas.ReadTable(strings.TrimSpace(inputPath))
		if err != nil {
			return err
		}
		text := atlas.TextColumns(table)
		if len(text) == 0 {
			return atlas.ErrNoTextColumnSelected
		}
		preferred, _ := atlas.SelectTextColumn(table, "")
		for _, name := range text {
			marker := " "
			if name == preferred {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name)
		}
		return nil
	},
}

func init() {
	columnsCmd.Flags().String("input", "", "CSV, TSV or XLSX file")
	_ = columnsCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(columnsCmd)
}
