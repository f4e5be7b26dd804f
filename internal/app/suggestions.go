package app

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/widget"

	"yashubustudio/atlas/atlas"
)

func suggestionLabel(s atlas.Suggestion) string {
	if len(s.AlsoCodes) == 0 {
		return fmt.Sprintf("%s [%s]", s.Label, s.Code)
	}
	return fmt.Sprintf("%s [%s / %s]", s.Label, s.Code, strings.Join(s.AlsoCodes, " / "))
}

// formatAlternatives lists the runner-up suggestions, skipping the winner.
func formatAlternatives(res atlas.MatchResult) string {
	if len(res.Alternatives) <= 1 {
		return ""
	}
	var b strings.Builder
	for i, s := range res.Alternatives[1:] {
		fmt.Fprintf(&b, "%d. %s  %.3f\n", i+2, suggestionLabel(s), s.Score.Total)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatIndustryCode(code string) string {
	if sector := atlas.SectorLabel(code); sector != "" {
		return fmt.Sprintf("%s (%s)", code, sector)
	}
	return code
}

func formatBreakdown(b atlas.Breakdown) string {
	s := fmt.Sprintf("%.3f  keyword %.3f / semantic %.3f / naics %.3f", b.Total, b.Keyword, b.Semantic, b.NAICS)
	if b.PartnerBoost > 0 {
		s += fmt.Sprintf(" / partner +%.2f", b.PartnerBoost)
	}
	return s
}

func appetiteImportance(a atlas.Appetite) widget.Importance {
	if a.Style() == atlas.StyleRed {
		return widget.DangerImportance
	}
	return widget.SuccessImportance
}
