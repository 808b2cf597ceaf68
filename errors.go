package tweetparse

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeNotATweet     = "not_a_tweet"
	CodeNotAvailable  = "not_available"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeDuplicateKey  = "duplicate_key"
	CodeInvalidType   = "invalid_type"
	CodeInvalidFormat = "invalid_format"
	CodeParseError    = "parse_error"
	CodeTruncated     = "truncated"
)

// Issue represents a single structural finding about a payload.
type Issue struct {
	Path    string // JSON Pointer (for example: /user/screen_name).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"key": "foo"}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of findings that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_key at /foo
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

var (
	// ErrNotATweet matches every *NotATweetError via errors.Is.
	ErrNotATweet = errors.New("tweetparse: not a tweet")
	// ErrNotAvailable matches every *NotAvailableError via errors.Is.
	ErrNotAvailable = errors.New("tweetparse: not available")
)

// NotATweetError reports a payload that matches neither format, fails strict
// validation, or embeds a payload that does. Embedded failures nest: Err holds
// the inner *NotATweetError, so the message chain names every embedding on the
// path to the malformed payload.
type NotATweetError struct {
	Reason string
	// Embed names the embedding that failed; EmbedNone for the payload itself.
	Embed EmbedKind
	// Issues holds strict-validation findings, if any.
	Issues Issues
	Err    error
}

func (e *NotATweetError) Error() string {
	switch e.Embed {
	case EmbedQuote:
		return "the quote-tweet payload appears malformed: " + e.cause()
	case EmbedRetweet:
		return "the retweet payload appears malformed: " + e.cause()
	case EmbedEmbedded:
		return "the embedded tweet payload appears malformed: " + e.cause()
	}
	return "not a tweet: " + e.Reason
}

func (e *NotATweetError) cause() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Reason
}

func (e *NotATweetError) Unwrap() error { return e.Err }

func (e *NotATweetError) Is(target error) bool { return target == ErrNotATweet }

// NotAvailableError reports a field that the detected format cannot carry.
// It is tied to the format, not to the particular payload.
type NotAvailableError struct {
	Field  string
	Format Format
}

func (e *NotAvailableError) Error() string {
	return fmt.Sprintf("not available: %s is not carried by the %s format", e.Field, e.Format)
}

func (e *NotAvailableError) Is(target error) bool { return target == ErrNotAvailable }

func notATweet(format string, a ...any) *NotATweetError {
	return &NotATweetError{Reason: fmt.Sprintf(format, a...)}
}

// wrapEmbed adds the embedding boundary to a nested construction failure.
func wrapEmbed(kind EmbedKind, err error) *NotATweetError {
	return &NotATweetError{Embed: kind, Reason: "embedded payload rejected", Err: err}
}
