package tweetparse

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// lookup walks nested objects along path.
func lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, k := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// present reports whether path resolves to a non-null value.
func present(m map[string]any, path ...string) bool {
	v, ok := lookup(m, path...)
	return ok && v != nil
}

func strAt(m map[string]any, path ...string) string {
	s, _ := strOK(m, path...)
	return s
}

func strOK(m map[string]any, path ...string) (string, bool) {
	v, _ := lookup(m, path...)
	s, ok := v.(string)
	return s, ok
}

func mapAt(m map[string]any, path ...string) map[string]any {
	v, _ := lookup(m, path...)
	obj, _ := v.(map[string]any)
	return obj
}

func sliceAt(m map[string]any, path ...string) []any {
	v, _ := lookup(m, path...)
	arr, _ := v.([]any)
	return arr
}

func intAt(m map[string]any, path ...string) (int64, bool) {
	v, _ := lookup(m, path...)
	return toInt64(v)
}

func floatAt(m map[string]any, path ...string) (float64, bool) {
	v, _ := lookup(m, path...)
	return toFloat64(v)
}

// toInt64 accepts the numeric shapes produced by encoding/json, go-json, and
// hand-built maps.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) {
			return int64(f), true
		}
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1<<63 {
			return int64(n), true
		}
	case float32:
		return toInt64(float64(n))
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint32:
		return int64(n), true
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n), true
		}
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// idString renders an identifier field that may be a string or a number.
func idString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, s != ""
	}
	if n, ok := v.(json.Number); ok {
		if _, err := n.Int64(); err == nil {
			return n.String(), true
		}
	}
	// Floats above 2^53 have already lost the low bits of the id.
	if f, ok := v.(float64); ok && math.Abs(f) > 1<<53 {
		return "", false
	}
	if f, ok := v.(float32); ok && math.Abs(float64(f)) > 1<<24 {
		return "", false
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil && math.Abs(f) > 1<<53 {
			return "", false
		}
	}
	if i, ok := toInt64(v); ok {
		return strconv.FormatInt(i, 10), true
	}
	return "", false
}

// lastSegment returns the part after the final ':' of a composite
// activity-streams identifier such as "tag:search.twitter.com,2005:123".
func lastSegment(s string) string {
	if i := strings.LastIndexByte(s, ':'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func span(v any) Span {
	arr, _ := v.([]any)
	if len(arr) < 2 {
		return Span{}
	}
	start, _ := toInt64(arr[0])
	end, _ := toInt64(arr[1])
	return Span{Start: int(start), End: int(end)}
}

// clonePtr returns a shallow copy of *p, or nil.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// cloneValue deep-copies objects and arrays; scalars are immutable.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}
