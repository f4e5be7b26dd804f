package atlas

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// fakeEmbedder maps text onto three axes by keyword so scores are predictable.
type fakeEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "bak"):
		return []float32{1, 0, 0}, nil
	case strings.Contains(t, "cyber"), strings.Contains(t, "software"):
		return []float32{0, 1, 0}, nil
	default:
		return []float32{0, 0, 1}, nil
	}
}

func (f *fakeEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := f.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *fakeEmbedder) Close() error    { return nil }
func (f *fakeEmbedder) ModelID() string { return "fake" }

func yesNo(pl, gl, bop, cyber string) Flags {
	return Flags{pl, gl, bop, cyber}
}

func sampleRows() []CandidateRow {
	return []CandidateRow{
		{
			COB:              "Bakery",
			IndustryCode:     "311811",
			NAICSDescription: "Retail Bakeries",
			NAICSTitle:       "Bakeries",
			Flags:            yesNo("Yes", "Yes", "Yes", "No"),
		},
		{
			COB:              "Software Consulting",
			IndustryCode:     "541512",
			NAICSDescription: "Computer Systems Design Services",
			NAICSTitle:       "Computer Systems Design",
			Flags:            yesNo("No", "No", "No", "Yes"),
		},
		{
			COB:              "Coal Mining",
			IndustryCode:     "212114",
			NAICSDescription: "Surface Coal Mining",
			NAICSTitle:       "Coal Mining",
			Flags:            yesNo("No", "No", "No", "No"),
		},
	}
}

func newTestService(cfg Config) (*Service, *fakeEmbedder) {
	fe := &fakeEmbedder{}
	svc, err := NewService(fe, cfg, zap.NewNop())
	if err != nil {
		panic(err)
	}
	return svc, fe
}

func loadedService(partners ...string) *Service {
	svc, _ := newTestService(Config{})
	if err := svc.LoadReference(context.Background(), sampleRows(), partners); err != nil {
		panic(err)
	}
	return svc
}
