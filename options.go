package tweetparse

import "go.uber.org/zap"

// DefaultMaxEmbedDepth bounds how many embedding levels are resolved.
// Real payloads nest at most twice (a retweet of a quote tweet).
const DefaultMaxEmbedDepth = 3

// Option configures Tweet construction.
type Option func(*config)

type config struct {
	strict        bool
	logger        *zap.Logger
	maxEmbedDepth int
	decode        DecodeOpt
}

func newConfig(opts []Option) config {
	cfg := config{logger: zap.NewNop(), maxEmbedDepth: DefaultMaxEmbedDepth}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// WithStrictValidation compares the payload's top-level keys against the
// expected superset and minimum set for its format. Unexpected or missing
// keys fail construction.
func WithStrictValidation(enabled bool) Option {
	return func(c *config) { c.strict = enabled }
}

// WithLogger sets the logger used for debug diagnostics. nil disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithMaxEmbedDepth limits embedded-tweet resolution. Values below 1 are
// ignored.
func WithMaxEmbedDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEmbedDepth = n
		}
	}
}

// WithDecodeOpt sets the limits used by ParseBytes and ParseReader.
func WithDecodeOpt(opt DecodeOpt) Option {
	return func(c *config) { c.decode = opt }
}
