// Package emb runs a BERT-style sentence embedding model in-process with ONNX Runtime.
//
// The pipeline is tokenize → ONNX inference → attention-mask mean pool → L2 normalize,
// which reproduces sentence-transformers output for models such as all-MiniLM-L6-v2.
package emb

import (
	"sync"

	"github.com/rotisserie/eris"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// Config locates the runtime library, model and tokenizer files.
type Config struct {
	OrtDLL        string
	ModelPath     string
	TokenizerPath string
	MaxSeqLen     int
}

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// Encoder turns text into a fixed-length embedding. Encode is safe for concurrent use.
type Encoder struct {
	mu         sync.Mutex
	tk         *tokenizer.Tokenizer
	session    *ort.DynamicAdvancedSession
	inputNames []string
	outputName string
	embedDim   int64
	maxSeqLen  int
}

// Init loads the tokenizer and model and creates the inference session.
func (e *Encoder) Init(cfg Config) error {
	if cfg.ModelPath == "" {
		return eris.New("emb: model path is required")
	}
	if cfg.TokenizerPath == "" {
		return eris.New("emb: tokenizer path is required")
	}
	if cfg.MaxSeqLen <= 0 {
		cfg.MaxSeqLen = 256
	}
	tk, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return eris.Wrapf(err, "emb: load tokenizer %s", cfg.TokenizerPath)
	}
	if err := initORT(cfg.OrtDLL); err != nil {
		return eris.Wrap(err, "emb: initialize runtime")
	}

	inputs, outputs, err := ort.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return eris.Wrap(err, "emb: read model info")
	}
	inputNames, err := selectInputs(inputs)
	if err != nil {
		return err
	}
	if len(outputs) == 0 {
		return eris.New("emb: model has no outputs")
	}
	dims := outputs[0].Dimensions
	if len(dims) != 3 || dims[2] <= 0 {
		return eris.Errorf("emb: expected [batch, seq, dim] output, got %v", dims)
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return eris.Wrap(err, "emb: create session options")
	}
	defer opts.Destroy()
	_ = opts.SetIntraOpNumThreads(4)
	_ = opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath, inputNames, []string{outputs[0].Name}, opts)
	if err != nil {
		return eris.Wrap(err, "emb: create session")
	}

	e.tk = tk
	e.session = session
	e.inputNames = inputNames
	e.outputName = outputs[0].Name
	e.embedDim = dims[2]
	e.maxSeqLen = cfg.MaxSeqLen
	return nil
}

// selectInputs checks the model exposes BERT-style inputs and returns them in feed order.
// token_type_ids is optional; some exports drop it.
func selectInputs(inputs []ort.InputOutputInfo) ([]string, error) {
	have := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		have[in.Name] = true
	}
	for _, name := range []string{"input_ids", "attention_mask"} {
		if !have[name] {
			return nil, eris.Errorf("emb: model missing required input %q", name)
		}
	}
	names := []string{"input_ids", "attention_mask"}
	if have["token_type_ids"] {
		names = append(names, "token_type_ids")
	}
	return names, nil
}

// Dim returns the embedding dimensionality.
func (e *Encoder) Dim() int {
	return int(e.embedDim)
}

// Encode embeds one text.
func (e *Encoder) Encode(text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil, eris.New("emb: encoder is closed")
	}
	enc, err := e.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, eris.Wrap(err, "emb: tokenize")
	}
	ids, mask, types := truncate(enc.Ids, enc.AttentionMask, enc.TypeIds, e.maxSeqLen)
	seqLen := int64(len(ids))
	if seqLen == 0 {
		return make([]float32, e.embedDim), nil
	}

	hidden, err := e.infer(ids, mask, types, seqLen)
	if err != nil {
		return nil, err
	}
	pooled := meanPool(hidden, mask, seqLen, e.embedDim)
	l2Normalize(pooled)
	return pooled, nil
}

func (e *Encoder) infer(ids, mask, types []int64, seqLen int64) ([]float32, error) {
	shape := ort.NewShape(1, seqLen)
	feeds := map[string][]int64{
		"input_ids":      ids,
		"attention_mask": mask,
		"token_type_ids": types,
	}
	inputs := make([]ort.Value, 0, len(e.inputNames))
	for _, name := range e.inputNames {
		t, err := ort.NewTensor(shape, feeds[name])
		if err != nil {
			return nil, eris.Wrapf(err, "emb: create %s tensor", name)
		}
		defer t.Destroy()
		inputs = append(inputs, t)
	}

	out, err := ort.NewEmptyTensor[float32](ort.NewShape(1, seqLen, e.embedDim))
	if err != nil {
		return nil, eris.Wrap(err, "emb: create output tensor")
	}
	defer out.Destroy()

	if err := e.session.Run(inputs, []ort.Value{out}); err != nil {
		return nil, eris.Wrap(err, "emb: inference failed")
	}
	src := out.GetData()
	result := make([]float32, len(src))
	copy(result, src)
	return result, nil
}

// Close releases the session. The runtime environment stays up for the process.
func (e *Encoder) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		_ = e.session.Destroy()
		e.session = nil
	}
}

// truncate clips token sequences to maxLen, keeping the final separator token.
func truncate(ids, mask, types []int, maxLen int) ([]int64, []int64, []int64) {
	n := len(ids)
	keepLast := false
	if n > maxLen {
		n = maxLen
		keepLast = true
	}
	outIDs := make([]int64, n)
	outMask := make([]int64, n)
	outTypes := make([]int64, n)
	for i := 0; i < n; i++ {
		src := i
		if keepLast && i == n-1 {
			src = len(ids) - 1
		}
		outIDs[i] = int64(ids[src])
		outMask[i] = 1
		if src < len(mask) {
			outMask[i] = int64(mask[src])
		}
		if src < len(types) {
			outTypes[i] = int64(types[src])
		}
	}
	return outIDs, outMask, outTypes
}
