package atlas

import (
	"encoding/json"
	"strings"
)

// LOB is a line of business carried as a flag column on every reference row.
type LOB int

const (
	PL LOB = iota
	GL
	BOP
	Cyber
)

// LOBs lists the lines of business in their fixed enumeration order.
var LOBs = [...]LOB{PL, GL, BOP, Cyber}

var lobNames = [...]string{"PL", "GL", "BOP", "Cyber"}

func (l LOB) String() string {
	if l < 0 || int(l) >= len(lobNames) {
		return "LOB(?)"
	}
	return lobNames[l]
}

// Flags holds the raw Yes/No text of each line of business, indexed by LOB.
type Flags [len(LOBs)]string

// Value returns the raw flag text for the given line of business.
func (f Flags) Value(l LOB) string {
	return f[l]
}

// IsYes reports whether the flag reads "yes", ignoring case and surrounding space.
func (f Flags) IsYes(l LOB) bool {
	return strings.EqualFold(strings.TrimSpace(f[l]), "yes")
}

// IsNo reports whether the flag reads "no", ignoring case and surrounding space.
func (f Flags) IsNo(l LOB) bool {
	return strings.EqualFold(strings.TrimSpace(f[l]), "no")
}

// AllNo reports whether every line of business is explicitly "no".
func (f Flags) AllNo() bool {
	for _, l := range LOBs {
		if !f.IsNo(l) {
			return false
		}
	}
	return true
}

// MarshalJSON renders the flags keyed by LOB name.
func (f Flags) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(LOBs))
	for _, l := range LOBs {
		m[l.String()] = f[l]
	}
	return json.Marshal(m)
}

// CandidateRow is one class of business from the reference table.
type CandidateRow struct {
	COB              string `json:"Hiscox_COB"`
	IndustryCode     string `json:"full_industry_code"`
	NAICSDescription string `json:"NAICS_Description"`
	NAICSTitle       string `json:"NAICS_Title"`
	Flags            Flags  `json:"flags"`
}

// Document is the text embedded for the semantic signal.
func (r CandidateRow) Document() string {
	return strings.ToLower(r.COB + " " + r.NAICSDescription + " " + r.NAICSTitle)
}

// Breakdown records each signal that went into a composite score.
type Breakdown struct {
	Keyword      float64 `json:"keyword"`
	Semantic     float64 `json:"semantic"`
	NAICS        float64 `json:"naics"`
	PartnerBoost float64 `json:"partnerBoost"`
	Total        float64 `json:"total"`
}

// Suggestion is a scored candidate returned next to the winning match.
type Suggestion struct {
	Label string    `json:"label"`
	Code  string    `json:"code"`
	Score Breakdown `json:"score"`
	Index int       `json:"index"`

	// AlsoCodes lists industry codes of lower-ranked rows with the same label.
	AlsoCodes []string `json:"alsoCodes,omitempty"`
}

// MatchResult is the outcome of a single query.
type MatchResult struct {
	InputText    string       `json:"input"`
	Matched      CandidateRow `json:"matched"`
	Index        int          `json:"index"`
	Score        Breakdown    `json:"score"`
	Appetite     Appetite     `json:"appetite"`
	Alternatives []Suggestion `json:"alternatives,omitempty"`
}

// SearchResult is the record shown to callers of a single lookup.
type SearchResult struct {
	COB           string  `json:"Hiscox_COB"`
	IndustryCode  string  `json:"full_industry_code"`
	Appetite      string  `json:"Appetite"`
	AppetiteStyle string  `json:"AppetiteClass"`
	LOBDetails    Flags   `json:"LOB_Details"`
	Score         float64 `json:"score"`
}

// BatchResultRow is one line of batch output.
type BatchResultRow struct {
	InputDescription string
	COB              string
	IndustryCode     string
	Flags            Flags
	Appetite         Appetite
	Score            float64
	Masked           bool
}

// Record flattens the row into the batch output column order.
func (r BatchResultRow) Record() []string {
	out := make([]string, 0, len(BatchHeader))
	out = append(out, r.InputDescription, r.COB, r.IndustryCode)
	for _, l := range LOBs {
		out = append(out, r.Flags.Value(l))
	}
	return out
}

// BatchHeader is the header row of the batch results file.
var BatchHeader = []string{"Input_Description", "Hiscox_COB", "full_industry_code", "PL", "GL", "BOP", "Cyber"}

// EmbedderConfig wraps the configuration for the ORT embedder and cache.
type EmbedderConfig struct {
	OrtLib        string `yaml:"ort_lib" mapstructure:"ort_lib"`
	ModelPath     string `yaml:"model_path" mapstructure:"model_path"`
	TokenizerPath string `yaml:"tokenizer_path" mapstructure:"tokenizer_path"`
	MaxSeqLen     int    `yaml:"max_seq_len" mapstructure:"max_seq_len"`
	CachePath     string `yaml:"cache_path" mapstructure:"cache_path"`
	ModelID       string `yaml:"model_id" mapstructure:"model_id"`
}

// ReferenceConfig points at the reference and partner override tables.
type ReferenceConfig struct {
	Path        string `yaml:"path" mapstructure:"path"`
	PartnerPath string `yaml:"partner_path" mapstructure:"partner_path"`
}

// MatcherConfig tunes the matcher without touching the scoring weights.
type MatcherConfig struct {
	TopK    int `yaml:"top_k" mapstructure:"top_k"`
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// UIConfig holds settings the desktop app remembers between runs.
type UIConfig struct {
	NAICSMode   bool   `yaml:"naics_mode" mapstructure:"naics_mode"`
	BatchColumn string `yaml:"batch_column" mapstructure:"batch_column"`
	ExportName  string `yaml:"export_name" mapstructure:"export_name"`
}

// Config aggregates runtime settings persisted to config.yaml.
type Config struct {
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`
	Embedder  EmbedderConfig  `yaml:"embedder" mapstructure:"embedder"`
	Matcher   MatcherConfig   `yaml:"matcher" mapstructure:"matcher"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	UI        UIConfig        `yaml:"ui" mapstructure:"ui"`
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Matcher.TopK <= 0 {
		c.Matcher.TopK = 3
	}
	if c.Matcher.Workers <= 0 {
		c.Matcher.Workers = 1
	}
	if c.Embedder.MaxSeqLen <= 0 {
		c.Embedder.MaxSeqLen = 256
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.UI.ExportName == "" {
		c.UI.ExportName = DefaultBatchFileName
	}
}

// DefaultBatchFileName is the suggested name for exported batch results.
const DefaultBatchFileName = "AtlasBatchResults.csv"
