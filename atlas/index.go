package atlas

import "strings"

// Store is the read-only reference table: candidates in source order plus partner terms.
// A Store is never modified after NewStore returns; reloading builds a new one.
type Store struct {
	candidates []Candidate
	partners   []string
}

// NewStore copies the candidates and partner terms into a new store.
// Partner terms are lowercased, trimmed and de-duplicated; blanks are dropped.
func NewStore(candidates []Candidate, partnerTerms []string) *Store {
	s := &Store{
		candidates: make([]Candidate, len(candidates)),
		partners:   make([]string, 0, len(partnerTerms)),
	}
	for i, c := range candidates {
		s.candidates[i] = Candidate{Row: c.Row, Vector: cloneVector(c.Vector)}
	}
	seen := make(map[string]struct{}, len(partnerTerms))
	for _, term := range partnerTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		s.partners = append(s.partners, term)
	}
	return s
}

// Candidates returns the candidates in source-table order.
func (s *Store) Candidates() []Candidate {
	if s == nil {
		return nil
	}
	out := make([]Candidate, len(s.candidates))
	for i, c := range s.candidates {
		out[i] = Candidate{Row: c.Row, Vector: cloneVector(c.Vector)}
	}
	return out
}

// Candidate returns the candidate at position i in source order.
func (s *Store) Candidate(i int) Candidate {
	return s.candidates[i]
}

// PartnerTerms returns the lowercase partner keywords.
func (s *Store) PartnerTerms() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.partners))
	copy(out, s.partners)
	return out
}

// Len returns the number of candidates.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.candidates)
}
