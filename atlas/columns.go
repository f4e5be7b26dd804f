package atlas

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ColumnCandidates lists the header spellings accepted for each reference field.
type ColumnCandidates struct {
	COB              []string
	IndustryCode     []string
	NAICSDescription []string
	NAICSTitle       []string
	Partner          []string
	Description      []string
}

// DefaultColumnCandidates returns the built-in header aliases.
func DefaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		COB:              []string{"Hiscox_COB", "COB"},
		IndustryCode:     []string{"full_industry_code", "Full_Industry_Code", "industry_code"},
		NAICSDescription: []string{"NAICS_Description"},
		NAICSTitle:       []string{"NAICS_Title"},
		Partner:          []string{"Partner_Description"},
		Description:      []string{"Input_Description", "description", "business_description", "business description", "text"},
	}
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range header {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// TextColumns returns the header names of columns holding text, in header order.
// A column counts as text when at least one cell is non-empty and not a number.
func TextColumns(t Table) []string {
	var out []string
	for col, name := range t.Header {
		for _, row := range t.Rows {
			if col >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[col])
			if v == "" || isNumber(v) {
				continue
			}
			out = append(out, name)
			break
		}
	}
	return out
}

// SelectTextColumn picks the batch input column. An explicit name must be one of the text
// columns; otherwise a description-like header is preferred, then the first text column.
func SelectTextColumn(t Table, explicit string) (string, error) {
	text := TextColumns(t)
	if len(text) == 0 {
		return "", ErrNoTextColumnSelected
	}
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		for _, name := range text {
			if strings.EqualFold(name, explicit) {
				return name, nil
			}
		}
		return "", eris.Wrapf(ErrNoTextColumnSelected, "column %q is not a text column (have %s)", explicit, strings.Join(text, ", "))
	}
	if idx := findColumn(text, DefaultColumnCandidates().Description); idx >= 0 {
		return text[idx], nil
	}
	return text[0], nil
}

func isNumber(v string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	return err == nil
}
