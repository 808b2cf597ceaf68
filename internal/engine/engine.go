// Package engine builds generic JSON values from a token stream while
// enforcing duplicate-key, nesting-depth, and size limits.
package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string // Raw number text.
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// DuplicatePolicy selects how repeated object keys are handled.
type DuplicatePolicy int

const (
	DupIgnore DuplicatePolicy = iota // last value wins silently
	DupWarn                          // last value wins, issue reported to the sink
	DupError                         // decoding stops
)

// Options controls decoding limits. Zero values disable a limit.
type Options struct {
	OnDuplicate DuplicatePolicy
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal issues (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
}

// SimpleIssue is a lightweight finding with a JSON Pointer path.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a fatal SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.Code + " at " + e.Path + ": " + e.Message }

// ErrTrailingData is returned when input continues after the first value.
var ErrTrailingData = errors.New("engine: unexpected data after top-level value")

// Decode reads exactly one value from src. Objects become map[string]any,
// arrays []any, and numbers json.Number so 64-bit identifiers are preserved.
func Decode(src TokenSource, opt Options) (any, error) {
	d := &decoder{src: src, opt: opt}
	tok, err := d.next("")
	if err != nil {
		return nil, err
	}
	v, err := d.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, err
	}
	return v, nil
}

type decoder struct {
	src TokenSource
	opt Options
}

func (d *decoder) next(path string) (Token, error) {
	tok, err := d.src.NextToken()
	if err != nil {
		if err == io.EOF {
			return Token{}, io.ErrUnexpectedEOF
		}
		return Token{}, err
	}
	if d.opt.MaxBytes > 0 {
		if off := d.src.Location(); off > d.opt.MaxBytes {
			return Token{}, IssueError{SimpleIssue{Code: "truncated", Path: pointer(path), Message: "max bytes exceeded"}}
		}
	}
	return tok, nil
}

func (d *decoder) value(tok Token, path string, depth int) (any, error) {
	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if d.opt.MaxDepth > 0 && depth+1 > d.opt.MaxDepth {
			return nil, IssueError{SimpleIssue{Code: "parse_error", Path: pointer(path), Message: "max depth exceeded"}}
		}
		if tok.Kind == KindBeginObject {
			return d.object(path, depth+1)
		}
		return d.array(path, depth+1)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, IssueError{SimpleIssue{Code: "parse_error", Path: pointer(path), Message: "unexpected token"}}
	}
}

func (d *decoder) object(path string, depth int) (map[string]any, error) {
	m := make(map[string]any)
	for {
		tok, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, IssueError{SimpleIssue{Code: "parse_error", Path: pointer(path), Message: "expected object key"}}
		}
		key := tok.String
		child := join(path, key)
		if _, dup := m[key]; dup {
			si := SimpleIssue{Code: "duplicate_key", Path: child, Message: "key '" + key + "' duplicated"}
			switch d.opt.OnDuplicate {
			case DupError:
				return nil, IssueError{si}
			case DupWarn:
				if d.opt.IssueSink != nil {
					d.opt.IssueSink(si)
				}
			}
		}
		vt, err := d.next(child)
		if err != nil {
			return nil, err
		}
		v, err := d.value(vt, child, depth)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
}

func (d *decoder) array(path string, depth int) ([]any, error) {
	arr := []any{}
	for i := 0; ; i++ {
		tok, err := d.next(path)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := d.value(tok, join(path, strconv.Itoa(i)), depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// join appends one RFC 6901 reference token to a JSON Pointer.
func join(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
