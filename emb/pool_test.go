package emb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	ort "github.com/yalue/onnxruntime_go"
)

func TestMeanPoolIgnoresPadding(t *testing.T) {
	hidden := []float32{
		1, 2,
		3, 4,
		100, 100,
	}
	mask := []int64{1, 1, 0}

	got := meanPool(hidden, mask, 3, 2)

	assert.InDeltaSlice(t, []float64{2, 3}, toFloat64(got), 1e-6)
}

func TestMeanPoolAllPadding(t *testing.T) {
	got := meanPool([]float32{5, 5}, []int64{0}, 1, 2)
	assert.Equal(t, []float32{0, 0}, got)
}

func TestL2Normalize(t *testing.T) {
	vec := []float32{3, 4}
	l2Normalize(vec)
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, toFloat64(vec), 1e-6)

	zero := []float32{0, 0}
	l2Normalize(zero)
	assert.Equal(t, []float32{0, 0}, zero)
}

func TestTruncateKeepsSeparator(t *testing.T) {
	ids := []int{101, 7, 8, 9, 102}
	mask := []int{1, 1, 1, 1, 1}
	types := []int{0, 0, 0, 0, 0}

	gotIDs, gotMask, gotTypes := truncate(ids, mask, types, 3)

	assert.Equal(t, []int64{101, 7, 102}, gotIDs)
	assert.Equal(t, []int64{1, 1, 1}, gotMask)
	assert.Equal(t, []int64{0, 0, 0}, gotTypes)
}

func TestTruncateShortSequence(t *testing.T) {
	gotIDs, gotMask, _ := truncate([]int{101, 102}, nil, nil, 8)
	assert.Equal(t, []int64{101, 102}, gotIDs)
	assert.Equal(t, []int64{1, 1}, gotMask)
}

func TestSelectInputsOptionalTokenTypes(t *testing.T) {
	t.Run("with token types", func(t *testing.T) {
		names, err := selectInputs(infos("input_ids", "token_type_ids", "attention_mask"))
		assert.NoError(t, err)
		assert.Equal(t, []string{"input_ids", "attention_mask", "token_type_ids"}, names)
	})
	t.Run("without token types", func(t *testing.T) {
		names, err := selectInputs(infos("attention_mask", "input_ids"))
		assert.NoError(t, err)
		assert.Equal(t, []string{"input_ids", "attention_mask"}, names)
	})
	t.Run("missing mask", func(t *testing.T) {
		_, err := selectInputs(infos("input_ids"))
		assert.Error(t, err)
	})
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func infos(names ...string) []ort.InputOutputInfo {
	out := make([]ort.InputOutputInfo, len(names))
	for i, n := range names {
		out[i] = ort.InputOutputInfo{Name: n}
	}
	return out
}
