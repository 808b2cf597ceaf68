package tweetparse

import (
	"slices"
	"strconv"

	"github.com/reoring/tweetparse/internal/memo"
)

// Span is a [Start, End) character-offset range into the Tweet text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Mention is one @-mention. Indices is zero for a quoted author, which has
// no position in the text.
type Mention struct {
	ID         int64  `json:"id"`
	IDStr      string `json:"id_str"`
	ScreenName string `json:"screen_name"`
	Name       string `json:"name"`
	Indices    Span   `json:"indices"`
}

// entities returns the entity object, preferring the extended one.
func entities(raw map[string]any, f Format) map[string]any {
	switch f {
	case FormatOriginal:
		if e := mapAt(raw, "extended_tweet", "entities"); e != nil {
			return e
		}
		return mapAt(raw, "entities")
	case FormatActivityStreams:
		if e := mapAt(raw, "long_object", "twitter_entities"); e != nil {
			return e
		}
		return mapAt(raw, "twitter_entities")
	}
	return nil
}

// UserMentions returns the Tweet's own @-mentions in text order. Mentions in
// a quoted Tweet are not included; see QuotedUser and QuotedMentions.
func (t *Tweet) UserMentions() []Mention {
	return slices.Clone(t.userMentions())
}

func (t *Tweet) userMentions() []Mention {
	return memo.Value(t.cache, "user_mentions", func() []Mention {
		var out []Mention
		for _, e := range sliceAt(entities(t.raw, t.format), "user_mentions") {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, mentionFrom(m))
		}
		return out
	})
}

func mentionFrom(m map[string]any) Mention {
	mn := Mention{
		ScreenName: strAt(m, "screen_name"),
		Name:       strAt(m, "name"),
		Indices:    span(m["indices"]),
	}
	mn.ID, _ = toInt64(m["id"])
	mn.IDStr = strAt(m, "id_str")
	if mn.IDStr == "" && mn.ID != 0 {
		mn.IDStr = strconv.FormatInt(mn.ID, 10)
	}
	if mn.ID == 0 && mn.IDStr != "" {
		mn.ID, _ = strconv.ParseInt(mn.IDStr, 10, 64)
	}
	return mn
}

// QuotedUser returns the author of the quoted Tweet, or nil when nothing is
// quoted. The source data does not list this user among UserMentions.
func (t *Tweet) QuotedUser() *Mention {
	return clonePtr(t.quotedUser())
}

func (t *Tweet) quotedUser() *Mention {
	return memo.Value(t.cache, "quoted_user", func() *Mention {
		switch t.format {
		case FormatOriginal:
			u := mapAt(t.raw, "quoted_status", "user")
			if u == nil {
				return nil
			}
			mn := mentionFrom(u)
			return &mn
		case FormatActivityStreams:
			a := mapAt(t.raw, "twitter_quoted_status", "actor")
			if a == nil {
				return nil
			}
			mn := Mention{
				IDStr:      lastSegment(strAt(a, "id")),
				ScreenName: strAt(a, "preferredUsername"),
				Name:       strAt(a, "displayName"),
			}
			mn.ID, _ = strconv.ParseInt(mn.IDStr, 10, 64)
			return &mn
		}
		return nil
	})
}

// QuotedMentions returns the @-mentions inside the quoted Tweet. Callers
// wanting every mentioned user combine UserMentions, QuotedUser, and this.
func (t *Tweet) QuotedMentions() ([]Mention, error) {
	m, err := memo.Get(t.cache, "quoted_mentions", func() ([]Mention, error) {
		q, err := t.QuoteTweet()
		if err != nil || q == nil {
			return nil, err
		}
		return q.userMentions(), nil
	})
	return slices.Clone(m), err
}

// Hashtags returns hashtag texts in order, duplicates kept.
func (t *Tweet) Hashtags() []string {
	return slices.Clone(t.hashtags())
}

func (t *Tweet) hashtags() []string {
	return memo.Value(t.cache, "hashtags", func() []string {
		var out []string
		for _, e := range sliceAt(entities(t.raw, t.format), "hashtags") {
			if m, ok := e.(map[string]any); ok {
				out = append(out, strAt(m, "text"))
			}
		}
		return out
	})
}
