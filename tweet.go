package tweetparse

import (
	j "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/tweetparse/internal/memo"
)

// Tweet wraps one classified payload and derives values from it on demand.
//
// The payload is copied at construction and never modified. Every accessor
// is a pure function of (payload, format); results, including errors, are
// memoized per instance, so each value is computed at most once. A Tweet is
// safe for concurrent use: concurrent first reads of the same accessor
// compute it once and observe the same result.
type Tweet struct {
	raw    map[string]any
	format Format
	depth  int
	cfg    config
	cache  *memo.Cache[string]
}

// New classifies raw and returns a Tweet over a private copy of it. It fails
// with a *NotATweetError when raw matches neither format or, under
// WithStrictValidation, when its keys drift from the expected sets.
func New(raw map[string]any, opts ...Option) (*Tweet, error) {
	return build(cloneMap(raw), newConfig(opts), 0)
}

// build classifies an already-owned payload. Embedded payloads share their
// parent's immutable copy.
func build(raw map[string]any, cfg config, depth int) (*Tweet, error) {
	f, err := Classify(raw)
	if err == nil && cfg.strict {
		err = checkKeys(raw, f)
	}
	if err != nil {
		cfg.logger.Debug("payload rejected", zap.Int("depth", depth), zap.Error(err))
		return nil, err
	}
	return &Tweet{raw: raw, format: f, depth: depth, cfg: cfg, cache: memo.New[string]()}, nil
}

// Format returns the detected payload format.
func (t *Tweet) Format() Format { return t.format }

// Raw returns a copy of the payload.
func (t *Tweet) Raw() map[string]any { return cloneMap(t.raw) }

// MarshalJSON emits the payload as received.
func (t *Tweet) MarshalJSON() ([]byte, error) { return j.Marshal(t.raw) }
