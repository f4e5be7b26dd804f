package atlas

import (
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	bolt "go.etcd.io/bbolt"
)

var bucketVectors = []byte("vectors")

// VectorCache persists embeddings in a bbolt file so model output survives restarts.
type VectorCache struct {
	db *bolt.DB
}

// OpenVectorCache opens (or creates) the cache file at path.
func OpenVectorCache(path string) (*VectorCache, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrap(err, "create cache dir")
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, eris.Wrapf(err, "open vector cache %s", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVectors)
		return err
	})
	if err != nil {
		db.Close()
		return nil, eris.Wrap(err, "create vector bucket")
	}
	return &VectorCache{db: db}, nil
}

// Get returns the cached vector for key. A corrupt entry reads as a miss.
func (c *VectorCache) Get(key string) ([]float32, bool) {
	var vec []float32
	_ = c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketVectors).Get([]byte(key))
		if data == nil {
			return nil
		}
		v, err := decodeVector(data)
		if err != nil {
			return nil
		}
		vec = v
		return nil
	})
	return vec, vec != nil
}

// Put stores the vector under key.
func (c *VectorCache) Put(key string, vec []float32) error {
	buf := encodeVector(vec)
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketVectors).Put([]byte(key), buf)
	})
}

// Close closes the underlying bbolt database.
func (c *VectorCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4+len(vec)*4)
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(vec)))
	off := 4
	for _, v := range vec {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return buf
}

func decodeVector(data []byte) ([]float32, error) {
	if len(data) < 4 {
		return nil, eris.New("cache entry too small")
	}
	length := int(binary.LittleEndian.Uint32(data[:4]))
	data = data[4:]
	if len(data) != length*4 {
		return nil, eris.Errorf("cache length mismatch: want %d floats, have %d bytes", length, len(data))
	}
	vec := make([]float32, length)
	for i := 0; i < length; i++ {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4 : (i+1)*4]))
	}
	return vec, nil
}

func cacheKey(modelID, text string) string {
	h := sha1.New()
	_, _ = io.WriteString(h, modelID)
	_, _ = io.WriteString(h, "|")
	_, _ = io.WriteString(h, text)
	return hex.EncodeToString(h.Sum(nil))
}
