package tweetparse

import (
	"time"

	"github.com/reoring/tweetparse/codec"
	"github.com/reoring/tweetparse/internal/memo"
	"github.com/reoring/tweetparse/snowflake"
)

// ID returns the snowflake id as a digit string. Original-format payloads use
// "id_str" verbatim (falling back to the numeric "id"); activity-streams
// payloads use the segment after the last ':' of the composite "id".
func (t *Tweet) ID() string {
	return memo.Value(t.cache, "id", func() string { return tweetID(t.raw, t.format) })
}

func tweetID(raw map[string]any, f Format) string {
	switch f {
	case FormatOriginal:
		if s, ok := strOK(raw, "id_str"); ok && s != "" {
			return s
		}
		s, _ := idString(raw["id"])
		return s
	case FormatActivityStreams:
		return lastSegment(strAt(raw, "id"))
	}
	return ""
}

// CreatedAtSeconds returns the creation time in seconds since the Unix epoch,
// decoded from the snowflake id rather than from a timestamp field.
func (t *Tweet) CreatedAtSeconds() int64 {
	return memo.Value(t.cache, "created_at_seconds", func() int64 {
		// Classify guarantees the id parses.
		id, _ := snowflake.Parse(t.ID())
		return snowflake.ToUTC(id)
	})
}

// CreatedAt returns CreatedAtSeconds as a UTC time.
func (t *Tweet) CreatedAt() time.Time {
	return memo.Value(t.cache, "created_at_datetime", func() time.Time {
		return time.Unix(t.CreatedAtSeconds(), 0).UTC()
	})
}

// CreatedAtString renders CreatedAt as YYYY-MM-DDTHH:MM:SS.000Z.
func (t *Tweet) CreatedAtString() string {
	return memo.Value(t.cache, "created_at_string", func() string {
		return codec.FormatCanonical(t.CreatedAt())
	})
}

// PostedTime parses the payload's own timestamp field ("created_at" or
// "postedTime"). Unlike CreatedAt it keeps sub-second precision when present
// and fails when the field is missing or malformed.
func (t *Tweet) PostedTime() (time.Time, error) {
	return memo.Get(t.cache, "posted_time", func() (time.Time, error) {
		switch t.format {
		case FormatOriginal:
			return codec.CreatedAt().Decode(strAt(t.raw, "created_at"))
		default:
			return codec.PostedTime().Decode(strAt(t.raw, "postedTime"))
		}
	})
}
