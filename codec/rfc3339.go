package codec

import (
	"fmt"
	"time"
)

// Layouts of the raw timestamp fields.
const (
	// LayoutCreatedAt is the original-format "created_at" layout.
	LayoutCreatedAt = "Mon Jan 02 15:04:05 -0700 2006"
	// LayoutPostedTime is the activity-streams "postedTime" layout.
	LayoutPostedTime = "2006-01-02T15:04:05.000Z07:00"
	// LayoutCanonical renders YYYY-MM-DDTHH:MM:SS.000Z. The month field is the
	// calendar month ("01"), never the minute ("04").
	LayoutCanonical = "2006-01-02T15:04:05.000Z"
)

// Time converts between a wire timestamp string and time.Time.
type Time interface {
	Decode(s string) (time.Time, error)
	Encode(t time.Time) string
	Layout() string
}

// FormatError reports a timestamp that does not match its layout.
type FormatError struct {
	Layout string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("codec: %q does not match layout %q", e.Value, e.Layout)
}

func (e *FormatError) Unwrap() error { return e.Err }

// CreatedAt returns the codec for original-format "created_at" strings.
func CreatedAt() Time { return createdAtCodec{} }

// PostedTime returns the codec for activity-streams "postedTime" strings.
// Decoding accepts any RFC3339 timestamp; encoding always emits millisecond
// precision in UTC.
func PostedTime() Time { return postedTimeCodec{} }

type createdAtCodec struct{}

func (createdAtCodec) Layout() string { return LayoutCreatedAt }

func (createdAtCodec) Decode(s string) (time.Time, error) {
	t, err := time.Parse(LayoutCreatedAt, s)
	if err != nil {
		return time.Time{}, &FormatError{Layout: LayoutCreatedAt, Value: s, Err: err}
	}
	return t.UTC(), nil
}

func (createdAtCodec) Encode(t time.Time) string {
	return t.UTC().Format("Mon Jan 02 15:04:05 +0000 2006")
}

type postedTimeCodec struct{}

func (postedTimeCodec) Layout() string { return LayoutPostedTime }

func (postedTimeCodec) Decode(s string) (time.Time, error) {
	t, err := parseRFC3339(s)
	if err != nil {
		return time.Time{}, &FormatError{Layout: LayoutPostedTime, Value: s, Err: err}
	}
	return t.UTC(), nil
}

func (postedTimeCodec) Encode(t time.Time) string {
	return t.UTC().Format(LayoutPostedTime)
}

// FormatCanonical renders t in UTC with the YYYY-MM-DDTHH:MM:SS.000Z template.
// Sub-second precision is dropped.
func FormatCanonical(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(LayoutCanonical)
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
