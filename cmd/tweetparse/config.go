package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/tweetparse"
)

// Config holds CLI settings. Precedence, lowest first: defaults, the YAML
// file, TWEETPARSE_* environment variables, command-line flags.
type Config struct {
	Fields        []string `yaml:"fields"`
	Workers       int      `yaml:"workers"`
	Strict        bool     `yaml:"strict"`
	SkipInvalid   bool     `yaml:"skip_invalid"`
	MaxEmbedDepth int      `yaml:"max_embed_depth"`
	MaxLineBytes  int      `yaml:"max_line_bytes"`
	DuplicateKeys string   `yaml:"duplicate_keys"` // ignore, warn or error
}

var defaultFields = []string{"id", "created_at_string", "screen_name", "tweet_type", "all_text"}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Fields:        slices.Clone(defaultFields),
		Workers:       runtime.NumCPU(),
		MaxEmbedDepth: tweetparse.DefaultMaxEmbedDepth,
		MaxLineBytes:  16 << 20,
		DuplicateKeys: "ignore",
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from TWEETPARSE_* variables looked up by getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("TWEETPARSE_FIELDS"); v != "" {
		c.Fields = splitCSV(v)
	}
	if v := getenv("TWEETPARSE_DUPLICATE_KEYS"); v != "" {
		c.DuplicateKeys = v
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"TWEETPARSE_WORKERS", &c.Workers},
		{"TWEETPARSE_MAX_EMBED_DEPTH", &c.MaxEmbedDepth},
		{"TWEETPARSE_MAX_LINE_BYTES", &c.MaxLineBytes},
	}
	for _, it := range ints {
		v := getenv(it.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.key, err)
		}
		*it.dst = n
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"TWEETPARSE_STRICT", &c.Strict},
		{"TWEETPARSE_SKIP_INVALID", &c.SkipInvalid},
	}
	for _, it := range bools {
		v := getenv(it.key)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", it.key, err)
		}
		*it.dst = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.MaxLineBytes < 1 {
		return fmt.Errorf("max_line_bytes must be positive, got %d", c.MaxLineBytes)
	}
	if _, err := c.duplicateSeverity(); err != nil {
		return err
	}
	if len(c.Fields) == 0 {
		return errors.New("no fields selected")
	}
	known := tweetparse.FieldNames()
	for _, f := range c.Fields {
		if !slices.Contains(known, normalizeField(f)) {
			return fmt.Errorf("unknown field %q", f)
		}
	}
	return nil
}

func (c Config) duplicateSeverity() (tweetparse.Severity, error) {
	switch strings.ToLower(c.DuplicateKeys) {
	case "", "ignore":
		return tweetparse.Ignore, nil
	case "warn":
		return tweetparse.Warn, nil
	case "error":
		return tweetparse.Error, nil
	}
	return 0, fmt.Errorf("duplicate_keys must be ignore, warn or error, got %q", c.DuplicateKeys)
}

// Options translates c into construction options. Duplicate-key warnings are
// logged through log.
func (c Config) Options(log *zap.Logger) []tweetparse.Option {
	sev, _ := c.duplicateSeverity()
	return []tweetparse.Option{
		tweetparse.WithLogger(log),
		tweetparse.WithStrictValidation(c.Strict),
		tweetparse.WithMaxEmbedDepth(c.MaxEmbedDepth),
		tweetparse.WithDecodeOpt(tweetparse.DecodeOpt{
			Strictness: tweetparse.Strictness{OnDuplicateKey: sev},
			MaxBytes:   int64(c.MaxLineBytes),
			OnIssue: func(it tweetparse.Issue) {
				log.Warn("payload issue", zap.String("code", it.Code), zap.String("path", it.Path))
			},
		}),
	}
}

// Normalize rewrites field names into the form Lookup resolves, dropping
// blanks.
func (c *Config) Normalize() {
	var fields []string
	for _, f := range c.Fields {
		if f = normalizeField(f); f != "" {
			fields = append(fields, f)
		}
	}
	c.Fields = fields
}

func normalizeField(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = normalizeField(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
