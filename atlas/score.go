package atlas

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Weight tables. These are business constants, not runtime settings.
const (
	naicsKeywordWeight  = 0.20
	naicsSemanticWeight = 0.30
	naicsNAICSWeight    = 0.50

	textKeywordWeight  = 0.25
	textSemanticWeight = 0.30
	textNAICSWeight    = 0.20

	// PartnerBoost is added in free-text mode when a partner term occurs in the query.
	PartnerBoost = 0.15
)

// Query is a normalized input prepared once and shared by every candidate score.
type Query struct {
	Text    string
	Vector  []float32
	Partner string
	runes   []string
}

// NewQuery prepares a query from already normalized text, its embedding and the partner terms.
// The first partner term found in the text is recorded.
func NewQuery(text string, vec []float32, partnerTerms []string) Query {
	q := Query{Text: text, Vector: vec, runes: splitChars(text)}
	for _, term := range partnerTerms {
		if term != "" && strings.Contains(text, term) {
			q.Partner = term
			break
		}
	}
	return q
}

// Candidate pairs a reference row with the embedding of its document text.
type Candidate struct {
	Row    CandidateRow
	Vector []float32
}

// Score computes the composite match score of one candidate for the query.
func Score(q Query, c Candidate, naicsMode bool) Breakdown {
	if q.runes == nil && q.Text != "" {
		q.runes = splitChars(q.Text)
	}
	b := Breakdown{
		Keyword:  ratio(q.runes, strings.ToLower(c.Row.COB)),
		Semantic: cosineSimilarity(q.Vector, c.Vector),
	}
	if naicsMode {
		b.NAICS = ratio(q.runes, strings.ToLower(c.Row.NAICSDescription))
		b.Total = naicsKeywordWeight*b.Keyword + naicsSemanticWeight*b.Semantic + naicsNAICSWeight*b.NAICS
		return b
	}
	if q.Partner != "" {
		b.PartnerBoost = PartnerBoost
	}
	b.Total = textKeywordWeight*b.Keyword + textSemanticWeight*b.Semantic + textNAICSWeight*b.NAICS + b.PartnerBoost
	return b
}

// Ratio is the difflib sequence similarity 2*M/T between two strings, compared character by character.
func Ratio(a, b string) float64 {
	return ratio(splitChars(a), b)
}

func ratio(a []string, b string) float64 {
	m := difflib.NewMatcher(a, splitChars(b))
	return m.Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		fa := float64(a[i])
		fb := float64(b[i])
		dot += fa * fb
		na += fa * fa
		nb += fb * fb
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
