package engine_test

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/tweetparse/internal/engine"
)

// sliceSource replays a fixed token list, reporting each token's offset.
type sliceSource struct {
	toks []engine.Token
	pos  int
}

func (s *sliceSource) NextToken() (engine.Token, error) {
	if s.pos >= len(s.toks) {
		return engine.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

func (s *sliceSource) Location() int64 {
	if s.pos == 0 {
		return 0
	}
	return s.toks[s.pos-1].Offset
}

func obj(toks ...engine.Token) []engine.Token {
	out := []engine.Token{{Kind: engine.KindBeginObject}}
	out = append(out, toks...)
	return append(out, engine.Token{Kind: engine.KindEndObject})
}

func key(s string) engine.Token { return engine.Token{Kind: engine.KindKey, String: s} }
func str(s string) engine.Token { return engine.Token{Kind: engine.KindString, String: s} }
func num(s string) engine.Token { return engine.Token{Kind: engine.KindNumber, Number: s} }

func TestDecode_Values(t *testing.T) {
	toks := obj(
		key("id"), num("867474613139156993"),
		key("text"), str("hello"),
		key("tags"), engine.Token{Kind: engine.KindBeginArray}, str("a"), engine.Token{Kind: engine.KindNull}, engine.Token{Kind: engine.KindEndArray},
		key("ok"), engine.Token{Kind: engine.KindBool, Bool: true},
	)
	got, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{
		"id":   json.Number("867474613139156993"),
		"text": "hello",
		"tags": []any{"a", nil},
		"ok":   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_DuplicateKey(t *testing.T) {
	toks := obj(key("a"), str("1"), key("a"), str("2"))

	got, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{})
	if err != nil {
		t.Fatalf("ignore policy: unexpected error: %v", err)
	}
	if got.(map[string]any)["a"] != "2" {
		t.Fatalf("last value should win, got %v", got)
	}

	var warned []engine.SimpleIssue
	_, err = engine.Decode(&sliceSource{toks: toks}, engine.Options{
		OnDuplicate: engine.DupWarn,
		IssueSink:   func(si engine.SimpleIssue) { warned = append(warned, si) },
	})
	if err != nil || len(warned) != 1 || warned[0].Path != "/a" {
		t.Fatalf("warn policy: err=%v issues=%+v", err, warned)
	}

	_, err = engine.Decode(&sliceSource{toks: toks}, engine.Options{OnDuplicate: engine.DupError})
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Code != "duplicate_key" {
		t.Fatalf("error policy: got %v", err)
	}
}

func TestDecode_MaxDepth(t *testing.T) {
	toks := obj(key("user"), engine.Token{Kind: engine.KindBeginObject}, key("name"), str("x"), engine.Token{Kind: engine.KindEndObject})
	if _, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{MaxDepth: 2}); err != nil {
		t.Fatalf("depth 2 should pass: %v", err)
	}
	_, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{MaxDepth: 1})
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Path != "/user" {
		t.Fatalf("expected depth issue at /user, got %v", err)
	}
}

func TestDecode_MaxBytes(t *testing.T) {
	toks := obj(key("text"), engine.Token{Kind: engine.KindString, String: "long", Offset: 500})
	_, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{MaxBytes: 100})
	var ie engine.IssueError
	if !errors.As(err, &ie) || ie.Code != "truncated" {
		t.Fatalf("expected truncated issue, got %v", err)
	}
}

func TestDecode_Truncated(t *testing.T) {
	toks := []engine.Token{{Kind: engine.KindBeginObject}, key("a")}
	if _, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{}); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestDecode_TrailingData(t *testing.T) {
	toks := append(obj(), str("extra"))
	if _, err := engine.Decode(&sliceSource{toks: toks}, engine.Options{}); !errors.Is(err, engine.ErrTrailingData) {
		t.Fatalf("got %v, want ErrTrailingData", err)
	}
}
