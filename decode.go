package tweetparse

import (
	"errors"
	"fmt"
	"io"

	"github.com/reoring/tweetparse/internal/engine"
	"github.com/reoring/tweetparse/internal/jsonsrc"
)

// ParseBytes decodes one JSON payload and constructs a Tweet from it.
// Numbers are kept as json.Number so 64-bit identifiers survive. Decoding
// limits come from WithDecodeOpt; a decode failure returns Issues.
func ParseBytes(data []byte, opts ...Option) (*Tweet, error) {
	cfg := newConfig(opts)
	if limit := cfg.decode.MaxBytes; limit > 0 && int64(len(data)) > limit {
		return nil, singleIssue(CodeTruncated, "max bytes exceeded")
	}
	return parseSource(jsonsrc.NewBytes(data), cfg)
}

// ParseReader is ParseBytes over an io.Reader. The reader must hold exactly
// one JSON value. When MaxBytes is set the size cap is enforced up front.
func ParseReader(r io.Reader, opts ...Option) (*Tweet, error) {
	cfg := newConfig(opts)
	if limit := cfg.decode.MaxBytes; limit > 0 {
		data, err := io.ReadAll(io.LimitReader(r, limit+1))
		if err != nil {
			return nil, singleIssue(CodeParseError, err.Error())
		}
		if int64(len(data)) > limit {
			return nil, singleIssue(CodeTruncated, "max bytes exceeded")
		}
		return parseSource(jsonsrc.NewBytes(data), cfg)
	}
	return parseSource(jsonsrc.NewReader(r), cfg)
}

func parseSource(src engine.TokenSource, cfg config) (*Tweet, error) {
	opt := cfg.decode
	var sink func(engine.SimpleIssue)
	if opt.OnIssue != nil {
		sink = func(si engine.SimpleIssue) {
			opt.OnIssue(Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	v, err := engine.Decode(src, engine.Options{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	if err != nil {
		return nil, fmt.Errorf("tweetparse: decode: %w", toIssues(err))
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, notATweet("payload is %s, not an object", describe(v))
	}
	// The decoded map is already private to this call.
	return build(m, cfg, 0)
}

func toEngineDup(s Severity) engine.DuplicatePolicy {
	switch s {
	case Error:
		return engine.DupError
	case Warn:
		return engine.DupWarn
	default:
		return engine.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie engine.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error()})
}

func singleIssue(code, msg string) Issues {
	return AppendIssues(nil, Issue{Path: "/", Code: code, Message: msg})
}
