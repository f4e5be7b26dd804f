package atlas

import "strings"

type suggestionCluster struct {
	best  Suggestion
	codes map[string]struct{}
}

// clusterSuggestions folds suggestions that share a class-of-business label into the
// highest-scoring one. Input must be sorted best first; output keeps that order.
func clusterSuggestions(in []Suggestion, limit int) []Suggestion {
	if len(in) <= 1 {
		return in
	}
	clusters := make([]*suggestionCluster, 0, len(in))
	byLabel := make(map[string]*suggestionCluster, len(in))
	for _, s := range in {
		key := strings.ToLower(strings.TrimSpace(s.Label))
		if c, ok := byLabel[key]; ok {
			if s.Code == "" || s.Code == c.best.Code {
				continue
			}
			if _, seen := c.codes[s.Code]; !seen {
				c.codes[s.Code] = struct{}{}
				c.best.AlsoCodes = append(c.best.AlsoCodes, s.Code)
			}
			continue
		}
		if limit > 0 && len(clusters) == limit {
			continue
		}
		c := &suggestionCluster{best: s, codes: map[string]struct{}{}}
		c.best.AlsoCodes = nil
		clusters = append(clusters, c)
		byLabel[key] = c
	}
	out := make([]Suggestion, len(clusters))
	for i, c := range clusters {
		out[i] = c.best
	}
	return out
}
