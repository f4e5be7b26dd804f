package emb

import "math"

// meanPool averages the hidden states of a single sequence over positions where mask is 1.
//
// hidden: flat [seqLen * dim] float32
// mask:   [seqLen] int64
func meanPool(hidden []float32, mask []int64, seqLen, dim int64) []float32 {
	out := make([]float32, dim)
	var count float32
	for s := int64(0); s < seqLen; s++ {
		if mask[s] != 1 {
			continue
		}
		count++
		off := s * dim
		for d := int64(0); d < dim; d++ {
			out[d] += hidden[off+d]
		}
	}
	if count == 0 {
		return out
	}
	inv := 1.0 / count
	for d := range out {
		out[d] *= inv
	}
	return out
}

func l2Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
