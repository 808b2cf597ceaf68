// Package jsonsrc adapts a go-json token decoder to engine.TokenSource.
package jsonsrc

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	"github.com/reoring/tweetparse/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

// countingReader tracks how many bytes the decoder has pulled from the
// underlying reader. The decoder buffers ahead, so the count is an upper
// bound on the offset of the current token.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type source struct {
	dec   *j.Decoder
	cr    *countingReader
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource using go-json.
func NewReader(r io.Reader) engine.TokenSource {
	cr := &countingReader{r: r}
	dec := j.NewDecoder(cr)
	dec.UseNumber()
	return &source{dec: dec, cr: cr}
}

// NewBytes wraps a byte slice into an engine.TokenSource using go-json.
func NewBytes(b []byte) engine.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (engine.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return engine.Token{}, err
	}
	off := s.cr.n
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return engine.Token{Kind: engine.KindBeginObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return engine.Token{Kind: engine.KindBeginArray, Offset: off}, nil
		case '}':
			s.pop()
			return engine.Token{Kind: engine.KindEndObject, Offset: off}, nil
		case ']':
			s.pop()
			return engine.Token{Kind: engine.KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return engine.Token{Kind: engine.KindKey, String: v, Offset: off}, nil
			}
		}
		s.valueDone()
		return engine.Token{Kind: engine.KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return engine.Token{Kind: engine.KindBool, Bool: v, Offset: off}, nil
	case j.Number:
		s.valueDone()
		return engine.Token{Kind: engine.KindNumber, Number: string(v), Offset: off}, nil
	case float64:
		s.valueDone()
		return engine.Token{Kind: engine.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: off}, nil
	}
	s.valueDone()
	return engine.Token{Kind: engine.KindNull, Offset: off}, nil
}

// pop closes the current container; the container itself is the value of
// its parent's pending key.
func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) Location() int64 { return s.cr.n }
