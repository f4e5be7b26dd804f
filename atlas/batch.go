package atlas

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ProgressFunc is called after each processed batch row.
type ProgressFunc func(done, total int)

// NewBatchRow flattens a match into a batch output row. A match whose four flags are all "no"
// is masked: every field except the input description is blanked. The appetite label is kept.
func NewBatchRow(input string, res MatchResult) BatchResultRow {
	row := BatchResultRow{
		InputDescription: input,
		COB:              res.Matched.COB,
		IndustryCode:     res.Matched.IndustryCode,
		Flags:            res.Matched.Flags,
		Appetite:         res.Appetite,
		Score:            res.Score.Total,
	}
	if res.Matched.Flags.AllNo() {
		row.COB = ""
		row.IndustryCode = ""
		row.Flags = Flags{}
		row.Masked = true
	}
	return row
}

// RunBatch matches every non-empty input in order. Empty inputs produce no row.
// The first failing row aborts the batch.
func (s *Service) RunBatch(ctx context.Context, inputs []string, naicsMode bool, progress ProgressFunc) ([]BatchResultRow, error) {
	logger := s.logger.With(zap.String("batch_id", uuid.NewString()))
	if s.CandidateCount() == 0 {
		return nil, eris.Wrap(ErrEmptyReferenceStore, "run batch")
	}

	total := 0
	for _, in := range inputs {
		if strings.TrimSpace(in) != "" {
			total++
		}
	}
	logger.Info("batch started", zap.Int("inputs", len(inputs)), zap.Int("rows", total), zap.Bool("naics_mode", naicsMode))

	rows := make([]BatchResultRow, 0, total)
	masked := 0
	for i, in := range inputs {
		if strings.TrimSpace(in) == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "batch cancelled")
		}
		res, err := s.Match(ctx, in, naicsMode)
		if err != nil {
			return nil, eris.Wrapf(err, "batch row %d", i+1)
		}
		row := NewBatchRow(in, res)
		if row.Masked {
			masked++
		}
		rows = append(rows, row)
		if progress != nil {
			progress(len(rows), total)
		}
	}
	logger.Info("batch finished", zap.Int("rows", len(rows)), zap.Int("masked", masked))
	return rows, nil
}
