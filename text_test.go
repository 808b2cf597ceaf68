package tweetparse_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/tweetparse"
)

func TestText_OriginalQuote(t *testing.T) {
	tw := loadFixture(t, "original_quote.json")
	const own = "Look at this @jack #golang https://t.co/abc"
	if got := tw.UserEnteredText(); got != own {
		t.Fatalf("user_entered_text = %q", got)
	}
	got, err := tw.QuoteOrRetweetText()
	if err != nil || got != "quoted text @golang https://t.co/q" {
		t.Fatalf("quote_or_rt_text = %q, %v", got, err)
	}
	opts, err := tw.PollOptions()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"yes", "no"}, opts); diff != "" {
		t.Fatalf("poll options (-want +got):\n%s", diff)
	}
	all, err := tw.AllText()
	if err != nil {
		t.Fatal(err)
	}
	want := own + "\nquoted text @golang https://t.co/q\nyes\nno"
	if all != want {
		t.Fatalf("all_text = %q, want %q", all, want)
	}
}

func TestText_ActivityRetweet(t *testing.T) {
	tw := loadFixture(t, "activity_retweet.json")
	if tw.Text() != "RT @golang: Go 1.9 is out" {
		t.Fatalf("text = %q", tw.Text())
	}
	if got := tw.UserEnteredText(); got != "" {
		t.Fatalf("retweets carry no user-entered text, got %q", got)
	}
	all, err := tw.AllText()
	if err != nil || all != "Go 1.9 is out https://t.co/go19" {
		t.Fatalf("all_text = %q, %v", all, err)
	}
}

func TestText_ExtendedPreferred(t *testing.T) {
	raw := minimalOriginal()
	raw["text"] = "short…"
	raw["truncated"] = true
	raw["extended_tweet"] = map[string]any{"full_text": "short but actually long"}
	tw, err := tweetparse.New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if tw.Text() != "short…" {
		t.Fatalf("text = %q", tw.Text())
	}
	if tw.UserEnteredText() != "short but actually long" {
		t.Fatalf("user_entered_text = %q", tw.UserEnteredText())
	}

	as := minimalActivity()
	as["long_object"] = map[string]any{"body": "the long body"}
	tw, err = tweetparse.New(as)
	if err != nil {
		t.Fatal(err)
	}
	if tw.UserEnteredText() != "the long body" {
		t.Fatalf("user_entered_text = %q", tw.UserEnteredText())
	}
}

func TestTweetTypeAndUserEnteredText(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(map[string]any)
		wantType tweetparse.TweetType
		wantText string
	}{
		{"plain", func(map[string]any) {}, tweetparse.TypeTweet, "hello"},
		{"quote", func(m map[string]any) { m["quoted_status"] = minimalOriginal() }, tweetparse.TypeQuote, "hello"},
		{"retweet", func(m map[string]any) { m["retweeted_status"] = minimalOriginal() }, tweetparse.TypeRetweet, ""},
		{"null quote", func(m map[string]any) { m["quoted_status"] = nil }, tweetparse.TypeTweet, "hello"},
		// Empty user_entered_text alone does not imply a retweet.
		{"empty text", func(m map[string]any) { m["text"] = "" }, tweetparse.TypeTweet, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := minimalOriginal()
			tc.mutate(raw)
			tw, err := tweetparse.New(raw)
			if err != nil {
				t.Fatal(err)
			}
			if tw.Type() != tc.wantType {
				t.Fatalf("type = %q, want %q", tw.Type(), tc.wantType)
			}
			if tw.UserEnteredText() != tc.wantText {
				t.Fatalf("user_entered_text = %q, want %q", tw.UserEnteredText(), tc.wantText)
			}
		})
	}
}

func TestPollOptions(t *testing.T) {
	tw, err := tweetparse.New(minimalOriginal())
	if err != nil {
		t.Fatal(err)
	}
	opts, err := tw.PollOptions()
	if err != nil || opts == nil || len(opts) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v, %v", opts, err)
	}

	tw, err = tweetparse.New(minimalActivity())
	if err != nil {
		t.Fatal(err)
	}
	_, err = tw.PollOptions()
	if !errors.Is(err, tweetparse.ErrNotAvailable) {
		t.Fatalf("expected ErrNotAvailable, got %v", err)
	}
	var na *tweetparse.NotAvailableError
	if !errors.As(err, &na) || na.Field != "poll_options" || na.Format != tweetparse.FormatActivityStreams {
		t.Fatalf("unexpected error value: %#v", err)
	}
	// AllText skips polls for activity streams rather than failing.
	if all, err := tw.AllText(); err != nil || all != "hello" {
		t.Fatalf("all_text = %q, %v", all, err)
	}
}

func TestPostedTime(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  map[string]any
	}{
		{"original", minimalOriginal()},
		{"activity", minimalActivity()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tw, err := tweetparse.New(tc.raw)
			if err != nil {
				t.Fatal(err)
			}
			pt, err := tw.PostedTime()
			if err != nil {
				t.Fatal(err)
			}
			if !pt.Equal(tw.CreatedAt()) {
				t.Fatalf("posted_time %v != created_at %v", pt, tw.CreatedAt())
			}
		})
	}

	raw := minimalOriginal()
	raw["created_at"] = "yesterday"
	tw, err := tweetparse.New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tw.PostedTime(); err == nil {
		t.Fatalf("expected error for malformed created_at")
	}
	// The snowflake-derived time does not depend on the field.
	if tw.CreatedAtSeconds() != 1495657039 {
		t.Fatalf("created_at_seconds = %d", tw.CreatedAtSeconds())
	}
}
