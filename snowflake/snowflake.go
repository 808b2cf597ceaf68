// Package snowflake decodes Twitter snowflake identifiers.
//
// A snowflake is a 63-bit integer whose high-order bits (the value shifted
// right by TimestampShift) hold milliseconds since Epoch. The low 22 bits are
// worker and sequence numbers and carry no time information.
package snowflake

import (
	"errors"
	"strconv"
	"time"
)

const (
	// Epoch is the custom epoch in milliseconds after the Unix epoch.
	Epoch int64 = 1288834974657
	// TimestampShift is the number of low-order bits below the timestamp.
	TimestampShift = 22
)

var (
	// ErrEmpty is returned by Parse for an empty identifier.
	ErrEmpty = errors.New("snowflake: empty id")
	// ErrNotNumeric is returned by Parse when the identifier has a non-digit.
	ErrNotNumeric = errors.New("snowflake: id is not a digit string")
)

// Parse converts a digit string into a snowflake.
func Parse(s string) (int64, error) {
	if s == "" {
		return 0, ErrEmpty
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrNotNumeric
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// IsValid reports whether s parses as a snowflake.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// TimestampMillis returns the creation time of id in milliseconds since the
// Unix epoch.
func TimestampMillis(id int64) int64 {
	return (id >> TimestampShift) + Epoch
}

// ToUTC returns the creation time of id in whole seconds since the Unix epoch.
// Fractional seconds are truncated.
func ToUTC(id int64) int64 {
	return TimestampMillis(id) / 1000
}

// Time returns the creation time of id in UTC, truncated to the second.
func Time(id int64) time.Time {
	return time.Unix(ToUTC(id), 0).UTC()
}

// FromTime returns the smallest snowflake that could have been minted at t.
// Times before Epoch map to zero.
func FromTime(t time.Time) int64 {
	ms := t.UnixMilli() - Epoch
	if ms < 0 {
		return 0
	}
	return ms << TimestampShift
}
