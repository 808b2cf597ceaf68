package snowflake_test

import (
	"errors"
	"testing"
	"time"

	"github.com/reoring/tweetparse/snowflake"
)

func TestToUTC(t *testing.T) {
	cases := []struct {
		name string
		id   int64
		want int64
	}{
		{name: "may 2017", id: 867474613139156993, want: 1495657039},
		{name: "epoch", id: 0, want: snowflake.Epoch / 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := snowflake.ToUTC(tc.id); got != tc.want {
				t.Fatalf("ToUTC(%d) = %d, want %d", tc.id, got, tc.want)
			}
			if again := snowflake.ToUTC(tc.id); again != tc.want {
				t.Fatalf("second decode differs: %d", again)
			}
		})
	}
}

func TestTime(t *testing.T) {
	got := snowflake.Time(867474613139156993)
	want := time.Date(2017, time.May, 24, 20, 17, 19, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Time = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("Time location = %v, want UTC", got.Location())
	}
}

func TestFromTime_RoundTrip(t *testing.T) {
	at := time.Date(2017, time.May, 24, 20, 17, 19, 0, time.UTC)
	id := snowflake.FromTime(at)
	if got := snowflake.ToUTC(id); got != at.Unix() {
		t.Fatalf("ToUTC(FromTime(t)) = %d, want %d", got, at.Unix())
	}
	if got := snowflake.FromTime(time.Unix(0, 0)); got != 0 {
		t.Fatalf("FromTime before epoch = %d, want 0", got)
	}
}

func TestParse(t *testing.T) {
	if id, err := snowflake.Parse("867474613139156993"); err != nil || id != 867474613139156993 {
		t.Fatalf("Parse = (%d, %v)", id, err)
	}
	if _, err := snowflake.Parse(""); !errors.Is(err, snowflake.ErrEmpty) {
		t.Fatalf("empty: got %v", err)
	}
	if _, err := snowflake.Parse("12a4"); !errors.Is(err, snowflake.ErrNotNumeric) {
		t.Fatalf("non-digit: got %v", err)
	}
	if _, err := snowflake.Parse("-12"); !errors.Is(err, snowflake.ErrNotNumeric) {
		t.Fatalf("signed: got %v", err)
	}
	if snowflake.IsValid("99999999999999999999") {
		t.Fatalf("overflowing id reported valid")
	}
}
