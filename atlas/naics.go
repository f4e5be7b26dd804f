package atlas

import "strings"

// SectorEntry is one two-digit NAICS sector.
type SectorEntry struct {
	Code  string
	Label string
}

// NAICSSectors returns the 2022 NAICS sectors in code order.
func NAICSSectors() []SectorEntry {
	return []SectorEntry{
		{Code: "11", Label: "Agriculture, Forestry, Fishing and Hunting"},
		{Code: "21", Label: "Mining, Quarrying, and Oil and Gas Extraction"},
		{Code: "22", Label: "Utilities"},
		{Code: "23", Label: "Construction"},
		{Code: "31", Label: "Manufacturing"},
		{Code: "32", Label: "Manufacturing"},
		{Code: "33", Label: "Manufacturing"},
		{Code: "42", Label: "Wholesale Trade"},
		{Code: "44", Label: "Retail Trade"},
		{Code: "45", Label: "Retail Trade"},
		{Code: "48", Label: "Transportation and Warehousing"},
		{Code: "49", Label: "Transportation and Warehousing"},
		{Code: "51", Label: "Information"},
		{Code: "52", Label: "Finance and Insurance"},
		{Code: "53", Label: "Real Estate and Rental and Leasing"},
		{Code: "54", Label: "Professional, Scientific, and Technical Services"},
		{Code: "55", Label: "Management of Companies and Enterprises"},
		{Code: "56", Label: "Administrative and Support and Waste Management and Remediation Services"},
		{Code: "61", Label: "Educational Services"},
		{Code: "62", Label: "Health Care and Social Assistance"},
		{Code: "71", Label: "Arts, Entertainment, and Recreation"},
		{Code: "72", Label: "Accommodation and Food Services"},
		{Code: "81", Label: "Other Services (except Public Administration)"},
		{Code: "92", Label: "Public Administration"},
	}
}

var sectorLabels = func() map[string]string {
	m := make(map[string]string)
	for _, e := range NAICSSectors() {
		m[e.Code] = e.Label
	}
	return m
}()

// SectorLabel returns the sector name for a NAICS code of two or more digits, or "".
func SectorLabel(code string) string {
	code = strings.TrimSpace(code)
	if len(code) < 2 || !allDigits(code) {
		return ""
	}
	return sectorLabels[code[:2]]
}

// LooksLikeNAICSCode reports whether text is a six digit code in a known sector.
func LooksLikeNAICSCode(text string) bool {
	text = strings.TrimSpace(text)
	return len(text) == 6 && allDigits(text) && sectorLabels[text[:2]] != ""
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
