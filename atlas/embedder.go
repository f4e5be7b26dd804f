package atlas

import (
	"context"
	"path/filepath"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"yashubustudio/atlas/emb"
)

// Embedder exposes the minimal surface required by the service layer.
type Embedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	Close() error
	ModelID() string
}

// OrtEmbedder is a thin wrapper over emb.Encoder with caching.
type OrtEmbedder struct {
	enc    *emb.Encoder
	cfg    EmbedderConfig
	mem    *gocache.Cache
	disk   *VectorCache
	logger *zap.Logger
}

// NewOrtEmbedder initializes the encoder and opens the vector cache.
func NewOrtEmbedder(cfg EmbedderConfig, logger *zap.Logger) (*OrtEmbedder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ModelID == "" && cfg.ModelPath != "" {
		cfg.ModelID = filepath.Base(filepath.Dir(cfg.ModelPath)) + "/" + filepath.Base(cfg.ModelPath)
	}
	encoder := &emb.Encoder{}
	if err := encoder.Init(emb.Config{
		OrtDLL:        cfg.OrtLib,
		ModelPath:     cfg.ModelPath,
		TokenizerPath: cfg.TokenizerPath,
		MaxSeqLen:     cfg.MaxSeqLen,
	}); err != nil {
		return nil, eris.Wrap(err, "init encoder")
	}
	logger.Info("encoder ready", zap.String("model", cfg.ModelID), zap.Int("dim", encoder.Dim()), zap.Int("max_seq_len", cfg.MaxSeqLen))
	o := &OrtEmbedder{
		enc:    encoder,
		cfg:    cfg,
		mem:    gocache.New(gocache.NoExpiration, 0),
		logger: logger,
	}
	if cfg.CachePath != "" {
		disk, err := OpenVectorCache(cfg.CachePath)
		if err != nil {
			logger.Warn("vector cache disabled", zap.String("path", cfg.CachePath), zap.Error(err))
		} else {
			o.disk = disk
		}
	}
	return o, nil
}

// Close releases ORT resources and the cache file.
func (o *OrtEmbedder) Close() error {
	if o == nil {
		return nil
	}
	if o.enc != nil {
		o.enc.Close()
		o.enc = nil
	}
	o.mem.Flush()
	return o.disk.Close()
}

// ModelID returns the identifier used for cache keys.
func (o *OrtEmbedder) ModelID() string {
	return o.cfg.ModelID
}

// EmbedText embeds a single string with caching.
func (o *OrtEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if o == nil || o.enc == nil {
		return nil, eris.New("embedder is not initialized")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	normalized := NormalizeText(text)
	key := cacheKey(o.cfg.ModelID, normalized)
	if v, ok := o.mem.Get(key); ok {
		return cloneVector(v.([]float32)), nil
	}
	if o.disk != nil {
		if vec, ok := o.disk.Get(key); ok {
			o.mem.Set(key, vec, gocache.NoExpiration)
			return cloneVector(vec), nil
		}
	}
	vec, err := o.enc.Encode(normalized)
	if err != nil {
		return nil, eris.Wrapf(err, "encode %q", normalized)
	}
	o.mem.Set(key, cloneVector(vec), gocache.NoExpiration)
	if o.disk != nil {
		if err := o.disk.Put(key, vec); err != nil {
			o.logger.Debug("vector cache write failed", zap.Error(err))
		}
	}
	return vec, nil
}

// EmbedTexts embeds a slice of strings sequentially.
func (o *OrtEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := o.EmbedText(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func cloneVector(vec []float32) []float32 {
	if vec == nil {
		return nil
	}
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
