package app

import (
	"fmt"
	"strings"

	"yashubustudio/atlas/atlas"
)

// columnChoice is one selectable text column of a loaded batch table.
type columnChoice struct {
	Name  string
	Label string
}

func buildColumnChoices(t atlas.Table) []columnChoice {
	names := atlas.TextColumns(t)
	choices := make([]columnChoice, 0, len(names))
	for _, name := range names {
		label := name
		if sample := columnSample(t, name); sample != "" {
			label = fmt.Sprintf("%s (e.g. %s)", name, sample)
		}
		choices = append(choices, columnChoice{Name: name, Label: label})
	}
	return choices
}

func columnSample(t atlas.Table, name string) string {
	values, err := t.Column(name)
	if err != nil {
		return ""
	}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return truncateText(v, 20)
		}
	}
	return ""
}

// defaultChoice returns the index of the remembered column if present, else the detected one.
func defaultChoice(t atlas.Table, choices []columnChoice, remembered string) int {
	want, err := atlas.SelectTextColumn(t, remembered)
	if err != nil {
		want, _ = atlas.SelectTextColumn(t, "")
	}
	for i, c := range choices {
		if c.Name == want {
			return i
		}
	}
	return 0
}

func choiceLabels(choices []columnChoice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Label
	}
	return out
}

func truncateText(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "…"
}
