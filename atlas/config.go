package atlas

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when no path is given.
const DefaultConfigFile = "config.yaml"

// LoadConfig reads configuration from path (or ./config.yaml), a .env file and ATLAS_* variables.
// A missing config file is not an error; defaults apply.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ATLAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("reference.path", "AtlasEngineUnified.csv")
	v.SetDefault("reference.partner_path", "PartnerOverrides.csv")
	v.SetDefault("embedder.ort_lib", "")
	v.SetDefault("embedder.model_path", "./models/all-MiniLM-L6-v2/model.onnx")
	v.SetDefault("embedder.tokenizer_path", "./models/all-MiniLM-L6-v2/tokenizer.json")
	v.SetDefault("embedder.max_seq_len", 256)
	v.SetDefault("embedder.cache_path", "./cache/embeddings.db")
	v.SetDefault("embedder.model_id", "all-MiniLM-L6-v2")
	v.SetDefault("matcher.top_k", 3)
	v.SetDefault("matcher.workers", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("ui.naics_mode", false)
	v.SetDefault("ui.batch_column", "")
	v.SetDefault("ui.export_name", DefaultBatchFileName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, eris.Wrap(err, "config: unmarshal")
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// SaveConfig persists configuration as YAML.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = DefaultConfigFile
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "config: create dir")
	}
	cfg.ApplyDefaults()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "config: encode")
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrap(err, "config: write temp")
	}
	if err := os.Rename(tmp, path); err != nil {
		return eris.Wrap(err, "config: rename")
	}
	return nil
}
