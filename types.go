package tweetparse

// Format is the schema variant a payload arrived in.
type Format int

const (
	FormatOriginal        Format = iota + 1 // Twitter API "original" format.
	FormatActivityStreams                   // Gnip activity-streams format.
)

func (f Format) String() string {
	switch f {
	case FormatOriginal:
		return "original"
	case FormatActivityStreams:
		return "activity_streams"
	default:
		return "unknown"
	}
}

// MarshalText renders the format name.
func (f Format) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// TweetType classifies a Tweet by its embedded content.
type TweetType string

const (
	TypeTweet   TweetType = "tweet"
	TypeQuote   TweetType = "quote"
	TypeRetweet TweetType = "retweet"
)

// EmbedKind names an embedding boundary.
type EmbedKind int

const (
	EmbedNone EmbedKind = iota
	EmbedQuote
	EmbedRetweet
	EmbedEmbedded
)

func (k EmbedKind) String() string {
	switch k {
	case EmbedQuote:
		return "quote"
	case EmbedRetweet:
		return "retweet"
	case EmbedEmbedded:
		return "embedded"
	default:
		return "none"
	}
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement for duplicate keys.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// DecodeOpt bundles limits applied when decoding raw JSON bytes.
// Zero values disable a limit.
type DecodeOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
	// OnIssue receives non-fatal findings such as duplicate keys under Warn.
	OnIssue func(Issue)
}
