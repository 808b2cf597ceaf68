package tweetparse

import (
	"slices"
	"strings"

	"github.com/reoring/tweetparse/internal/memo"
)

// Text returns the raw display text ("text" or "body"), possibly truncated.
func (t *Tweet) Text() string {
	return memo.Value(t.cache, "text", func() string {
		switch t.format {
		case FormatOriginal:
			return strAt(t.raw, "text")
		default:
			return strAt(t.raw, "body")
		}
	})
}

// Type classifies the Tweet. A retweet marker wins over a quote marker.
func (t *Tweet) Type() TweetType {
	return memo.Value(t.cache, "tweet_type", func() TweetType { return tweetType(t.raw, t.format) })
}

func tweetType(raw map[string]any, f Format) TweetType {
	switch f {
	case FormatOriginal:
		if present(raw, "retweeted_status") {
			return TypeRetweet
		}
		if present(raw, "quoted_status") {
			return TypeQuote
		}
	case FormatActivityStreams:
		if strAt(raw, "verb") == "share" {
			return TypeRetweet
		}
		if present(raw, "twitter_quoted_status") {
			return TypeQuote
		}
	}
	return TypeTweet
}

// UserEnteredText returns the untruncated text written by the poster. It is
// empty for retweets, which carry no text of their own.
func (t *Tweet) UserEnteredText() string {
	return memo.Value(t.cache, "user_entered_text", func() string {
		if t.Type() == TypeRetweet {
			return ""
		}
		return fullText(t.raw, t.format)
	})
}

// fullText prefers the extended text over the possibly truncated short text.
func fullText(raw map[string]any, f Format) string {
	switch f {
	case FormatOriginal:
		if s, ok := strOK(raw, "extended_tweet", "full_text"); ok {
			return s
		}
		if s, ok := strOK(raw, "full_text"); ok {
			return s
		}
		return strAt(raw, "text")
	case FormatActivityStreams:
		if s, ok := strOK(raw, "long_object", "body"); ok {
			return s
		}
		return strAt(raw, "body")
	}
	return ""
}

// PollOptions returns the poll option labels in order, or an empty slice when
// there is no poll. Activity-streams payloads never carry polls, so the call
// fails with a *NotAvailableError for them.
func (t *Tweet) PollOptions() ([]string, error) {
	opts, err := t.pollOptions()
	return slices.Clone(opts), err
}

func (t *Tweet) pollOptions() ([]string, error) {
	return memo.Get(t.cache, "poll_options", func() ([]string, error) {
		if t.format == FormatActivityStreams {
			return nil, &NotAvailableError{Field: "poll_options", Format: t.format}
		}
		opts := []string{}
		for _, p := range sliceAt(entities(t.raw, t.format), "polls") {
			poll, _ := p.(map[string]any)
			for _, o := range sliceAt(poll, "options") {
				if opt, ok := o.(map[string]any); ok {
					if s, ok := strOK(opt, "text"); ok {
						opts = append(opts, s)
					}
				}
			}
		}
		return opts, nil
	})
}

// QuoteOrRetweetText returns the user-entered text of the quoted or
// retweeted Tweet, or "" for a plain Tweet.
func (t *Tweet) QuoteOrRetweetText() (string, error) {
	return memo.Get(t.cache, "quote_or_rt_text", func() (string, error) {
		var (
			embedded *Tweet
			err      error
		)
		switch t.Type() {
		case TypeQuote:
			embedded, err = t.QuoteTweet()
		case TypeRetweet:
			embedded, err = t.Retweet()
		}
		if err != nil || embedded == nil {
			return "", err
		}
		return embedded.UserEnteredText(), nil
	})
}

// AllText joins every user-visible text of the Tweet with newlines: the
// user-entered text, the quoted or retweeted text, and the poll options.
// Empty parts are skipped. Activity-streams payloads contribute no poll
// options.
func (t *Tweet) AllText() (string, error) {
	return memo.Get(t.cache, "all_text", func() (string, error) {
		embedded, err := t.QuoteOrRetweetText()
		if err != nil {
			return "", err
		}
		parts := []string{t.UserEnteredText(), embedded}
		if t.format == FormatOriginal {
			opts, err := t.pollOptions()
			if err != nil {
				return "", err
			}
			parts = append(parts, strings.Join(opts, "\n"))
		}
		nonEmpty := parts[:0]
		for _, p := range parts {
			if p != "" {
				nonEmpty = append(nonEmpty, p)
			}
		}
		return strings.Join(nonEmpty, "\n"), nil
	})
}
