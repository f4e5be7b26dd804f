package atlas

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "vectors.db")
	c, err := OpenVectorCache(path)
	require.NoError(t, err)

	key := cacheKey("model", "bakery")
	_, ok := c.Get(key)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, []float32{0.5, -1, 2}))
	require.NoError(t, c.Close())

	c, err = OpenVectorCache(path)
	require.NoError(t, err)
	defer c.Close()
	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []float32{0.5, -1, 2}, got)
}

func TestDecodeVectorRejectsCorruptData(t *testing.T) {
	_, err := decodeVector([]byte{1, 2})
	assert.Error(t, err)

	buf := encodeVector([]float32{1, 2})
	_, err = decodeVector(buf[:len(buf)-1])
	assert.Error(t, err)
}

func TestCacheKeyDependsOnModel(t *testing.T) {
	assert.Equal(t, cacheKey("a", "x"), cacheKey("a", "x"))
	assert.NotEqual(t, cacheKey("a", "x"), cacheKey("b", "x"))
}

func TestCloseNilCache(t *testing.T) {
	var c *VectorCache
	assert.NoError(t, c.Close())
}
