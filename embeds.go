package tweetparse

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/reoring/tweetparse/internal/memo"
)

// QuoteTweet returns the quoted Tweet, or nil when the payload quotes nothing.
// A malformed quoted payload yields a *NotATweetError with Embed set to
// EmbedQuote that wraps the inner failure.
func (t *Tweet) QuoteTweet() (*Tweet, error) {
	return memo.Get(t.cache, "quote_tweet", func() (*Tweet, error) {
		return t.embed(EmbedQuote, quotePayload(t.raw, t.format))
	})
}

// Retweet returns the retweeted Tweet, or nil when the payload is not a
// retweet.
func (t *Tweet) Retweet() (*Tweet, error) {
	return memo.Get(t.cache, "retweet", func() (*Tweet, error) {
		return t.embed(EmbedRetweet, retweetPayload(t.raw, t.format))
	})
}

// EmbeddedTweet returns whichever of the retweeted or quoted Tweet is present,
// preferring the retweet, or nil when neither is.
func (t *Tweet) EmbeddedTweet() (*Tweet, error) {
	return memo.Get(t.cache, "embedded_tweet", func() (*Tweet, error) {
		payload := retweetPayload(t.raw, t.format)
		if payload == nil {
			payload = quotePayload(t.raw, t.format)
		}
		return t.embed(EmbedEmbedded, payload)
	})
}

func quotePayload(raw map[string]any, f Format) any {
	switch f {
	case FormatOriginal:
		return raw["quoted_status"]
	case FormatActivityStreams:
		return raw["twitter_quoted_status"]
	}
	return nil
}

func retweetPayload(raw map[string]any, f Format) any {
	switch f {
	case FormatOriginal:
		return raw["retweeted_status"]
	case FormatActivityStreams:
		if strAt(raw, "verb") == "share" {
			return raw["object"]
		}
	}
	return nil
}

// embed constructs a Tweet one level below t. Every failure is wrapped with
// the embedding kind before it is returned.
func (t *Tweet) embed(kind EmbedKind, payload any) (*Tweet, error) {
	if payload == nil {
		return nil, nil
	}
	var err error
	if t.depth+1 > t.cfg.maxEmbedDepth {
		err = notATweet("embedding depth exceeds %d", t.cfg.maxEmbedDepth)
	} else if m, ok := payload.(map[string]any); !ok {
		err = notATweet("payload is %s, not an object", describe(payload))
	} else {
		cfg := t.cfg
		cfg.strict = false
		var child *Tweet
		if child, err = build(m, cfg, t.depth+1); err == nil {
			return child, nil
		}
	}
	wrapped := wrapEmbed(kind, err)
	t.cfg.logger.Debug("embedded payload rejected",
		zap.String("embed", kind.String()),
		zap.String("id", t.ID()),
		zap.Error(err))
	return nil, wrapped
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
