package atlas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunBatch(t *testing.T) {
	svc := loadedService()
	var progress [][2]int

	rows, err := svc.RunBatch(context.Background(),
		[]string{"Bakery", "", "   ", "coal mine", "cybersecurity audit firm"},
		false,
		func(done, total int) { progress = append(progress, [2]int{done, total}) },
	)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Bakery", rows[0].InputDescription)
	assert.Equal(t, "Bakery", rows[0].COB)
	assert.Equal(t, InAppetite, rows[0].Appetite)
	assert.False(t, rows[0].Masked)

	assert.Equal(t, "coal mine", rows[1].InputDescription)
	assert.True(t, rows[1].Masked)
	assert.Empty(t, rows[1].COB)
	assert.Empty(t, rows[1].IndustryCode)
	assert.Equal(t, Flags{}, rows[1].Flags)
	assert.Equal(t, OutOfAppetite, rows[1].Appetite)

	assert.Equal(t, "Software Consulting", rows[2].COB)
	assert.Equal(t, "Yes", rows[2].Flags.Value(Cyber))

	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress)
}

func TestRunBatchEmptyStore(t *testing.T) {
	svc, _ := newTestService(Config{})
	_, err := svc.RunBatch(context.Background(), []string{"bakery"}, false, nil)
	assert.ErrorIs(t, err, ErrEmptyReferenceStore)
}

func TestRunBatchNoInputs(t *testing.T) {
	svc := loadedService()
	rows, err := svc.RunBatch(context.Background(), []string{"", " "}, true, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunBatchCancelled(t *testing.T) {
	svc := loadedService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.RunBatch(ctx, []string{"bakery"}, false, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewBatchRowRecord(t *testing.T) {
	res := MatchResult{
		Matched:  sampleRows()[0],
		Appetite: InAppetite,
		Score:    Breakdown{Total: 0.5},
	}
	row := NewBatchRow("Bakery", res)
	assert.Equal(t, []string{"Bakery", "Bakery", "311811", "Yes", "Yes", "Yes", "No"}, row.Record())

	masked := NewBatchRow("coal", MatchResult{Matched: sampleRows()[2], Appetite: OutOfAppetite})
	assert.Equal(t, []string{"coal", "", "", "", "", "", ""}, masked.Record())
	assert.Len(t, BatchHeader, len(masked.Record()))
}
