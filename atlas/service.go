package atlas

import (
	"context"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service owns the reference store and the embedder and answers match queries.
type Service struct {
	embedder Embedder

	cfgMu sync.RWMutex
	cfg   Config

	storeMu sync.RWMutex
	store   *Store

	logger *zap.Logger
}

// NewService constructs a service with the given embedder and configuration.
// The reference store starts empty; call LoadReference or LoadReferenceFiles.
func NewService(embedder Embedder, cfg Config, logger *zap.Logger) (*Service, error) {
	if embedder == nil {
		return nil, eris.New("embedder is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.ApplyDefaults()
	return &Service{
		embedder: embedder,
		cfg:      cfg,
		store:    NewStore(nil, nil),
		logger:   logger,
	}, nil
}

// Close releases embedder resources.
func (s *Service) Close() error {
	if s.embedder != nil {
		return s.embedder.Close()
	}
	return nil
}

// Config returns a copy of the current configuration.
func (s *Service) Config() Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// UpdateConfig replaces the configuration.
func (s *Service) UpdateConfig(cfg Config) {
	cfg.ApplyDefaults()
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

// LoadReferenceFiles reads the reference and partner tables and loads them.
func (s *Service) LoadReferenceFiles(ctx context.Context, referencePath, partnerPath string) error {
	rows, err := LoadReferenceTable(referencePath)
	if err != nil {
		return err
	}
	partners, err := LoadPartnerTerms(partnerPath)
	if err != nil {
		return err
	}
	return s.LoadReference(ctx, rows, partners)
}

// LoadReference embeds every row's document text and swaps in a new store.
func (s *Service) LoadReference(ctx context.Context, rows []CandidateRow, partnerTerms []string) error {
	docs := make([]string, len(rows))
	for i, row := range rows {
		docs[i] = row.Document()
	}
	vecs, err := s.embedder.EmbedTexts(ctx, docs)
	if err != nil {
		return eris.Wrap(err, "embed reference rows")
	}
	candidates := make([]Candidate, len(rows))
	for i, row := range rows {
		candidates[i] = Candidate{Row: row, Vector: vecs[i]}
	}
	store := NewStore(candidates, partnerTerms)

	s.storeMu.Lock()
	s.store = store
	s.storeMu.Unlock()

	s.logger.Info("reference loaded",
		zap.Int("candidates", store.Len()),
		zap.Int("partner_terms", len(store.PartnerTerms())),
		zap.String("model", s.embedder.ModelID()),
	)
	return nil
}

// Store returns the current reference store.
func (s *Service) Store() *Store {
	s.storeMu.RLock()
	defer s.storeMu.RUnlock()
	return s.store
}

// CandidateCount returns how many reference rows are loaded.
func (s *Service) CandidateCount() int {
	return s.Store().Len()
}

// Match scores every candidate against the text and returns the best one.
// Ties go to the row that appears first in the reference table.
func (s *Service) Match(ctx context.Context, text string, naicsMode bool) (MatchResult, error) {
	store := s.Store()
	if store.Len() == 0 {
		return MatchResult{}, eris.Wrapf(ErrEmptyReferenceStore, "match %q", text)
	}
	cfg := s.Config()

	normalized := NormalizeQuery(text)
	vec, err := s.embedder.EmbedText(ctx, normalized)
	if err != nil {
		return MatchResult{}, eris.Wrapf(err, "embed query %q", normalized)
	}
	q := NewQuery(normalized, vec, store.PartnerTerms())

	scores, err := scoreAll(ctx, q, store, naicsMode, cfg.Matcher.Workers)
	if err != nil {
		return MatchResult{}, err
	}
	best := argMax(scores)
	winner := store.Candidate(best).Row

	res := MatchResult{
		InputText:    normalized,
		Matched:      winner,
		Index:        best,
		Score:        scores[best],
		Appetite:     Classify(winner.Flags),
		Alternatives: topK(store, scores, cfg.Matcher.TopK),
	}
	s.logger.Debug("match",
		zap.String("input", normalized),
		zap.Bool("naics_mode", naicsMode),
		zap.String("cob", winner.COB),
		zap.Float64("score", res.Score.Total),
		zap.String("partner", q.Partner),
	)
	return res, nil
}

// Search runs Match and shapes the result for display.
func (s *Service) Search(ctx context.Context, text string, naicsMode bool) (SearchResult, error) {
	res, err := s.Match(ctx, text, naicsMode)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		COB:           res.Matched.COB,
		IndustryCode:  res.Matched.IndustryCode,
		Appetite:      res.Appetite.String(),
		AppetiteStyle: res.Appetite.Style(),
		LOBDetails:    res.Matched.Flags,
		Score:         res.Score.Total,
	}, nil
}

// scoreAll returns one breakdown per candidate, indexed by table position.
// With workers > 1 the table is split into contiguous chunks scored concurrently.
func scoreAll(ctx context.Context, q Query, store *Store, naicsMode bool, workers int) ([]Breakdown, error) {
	n := store.Len()
	scores := make([]Breakdown, n)
	if workers <= 1 || n < 2*workers {
		for i := 0; i < n; i++ {
			scores[i] = Score(q, store.Candidate(i), naicsMode)
		}
		return scores, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		lo, hi := start, min(start+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[i] = Score(q, store.Candidate(i), naicsMode)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "score candidates")
	}
	return scores, nil
}

// argMax returns the first index holding the maximum total.
func argMax(scores []Breakdown) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i].Total > scores[best].Total {
			best = i
		}
	}
	return best
}

func topK(store *Store, scores []Breakdown, k int) []Suggestion {
	if k <= 0 {
		return nil
	}
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]].Total > scores[order[b]].Total
	})
	all := make([]Suggestion, len(order))
	for i, idx := range order {
		row := store.Candidate(idx).Row
		all[i] = Suggestion{Label: row.COB, Code: row.IndustryCode, Score: scores[idx], Index: idx}
	}
	out := clusterSuggestions(all, k)
	if len(out) > k {
		out = out[:k]
	}
	return out
}
