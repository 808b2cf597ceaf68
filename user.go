package tweetparse

import (
	"slices"

	"github.com/reoring/tweetparse/internal/memo"
)

// KloutTopic is one Klout influence or interest topic.
type KloutTopic struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	URL   string  `json:"url"`
	Score float64 `json:"score"`
}

func (t *Tweet) author() map[string]any {
	return mapAt(t.raw, byFormat(t.format, "user", "actor"))
}

// UserID returns the poster's id as a digit string.
func (t *Tweet) UserID() string {
	return memo.Value(t.cache, "user_id", func() string {
		switch t.format {
		case FormatOriginal:
			if s := strAt(t.author(), "id_str"); s != "" {
				return s
			}
			s, _ := idString(t.author()["id"])
			return s
		case FormatActivityStreams:
			return lastSegment(strAt(t.author(), "id"))
		}
		return ""
	})
}

// ScreenName returns the poster's @ handle without the '@'.
func (t *Tweet) ScreenName() string {
	return memo.Value(t.cache, "screen_name", func() string {
		return strAt(t.author(), byFormat(t.format, "screen_name", "preferredUsername"))
	})
}

// Name returns the poster's display name.
func (t *Tweet) Name() string {
	return memo.Value(t.cache, "name", func() string {
		return strAt(t.author(), byFormat(t.format, "name", "displayName"))
	})
}

// Bio returns the poster's profile description.
func (t *Tweet) Bio() string {
	return memo.Value(t.cache, "bio", func() string {
		return strAt(t.author(), byFormat(t.format, "description", "summary"))
	})
}

// FollowerCount returns the poster's follower count.
func (t *Tweet) FollowerCount() (int64, bool) {
	return countAt(t, "follower_count", "followers_count", "followersCount")
}

// FollowingCount returns how many accounts the poster follows.
func (t *Tweet) FollowingCount() (int64, bool) {
	return countAt(t, "following_count", "friends_count", "friendsCount")
}

type optInt struct {
	v  int64
	ok bool
}

func countAt(t *Tweet, field, originalKey, activityKey string) (int64, bool) {
	r := memo.Value(t.cache, field, func() optInt {
		v, ok := intAt(t.author(), byFormat(t.format, originalKey, activityKey))
		return optInt{v, ok}
	})
	return r.v, r.ok
}

// klout returns the Klout enrichment object. The two formats attach it in
// different places: original under user.derived.klout, activity streams
// under gnip.
func (t *Tweet) klout() map[string]any {
	switch t.format {
	case FormatOriginal:
		return mapAt(t.raw, "user", "derived", "klout")
	case FormatActivityStreams:
		return mapAt(t.raw, "gnip")
	}
	return nil
}

// KloutScore returns the poster's Klout score when the enrichment is present.
func (t *Tweet) KloutScore() (int64, bool) {
	r := memo.Value(t.cache, "klout_score", func() optInt {
		v, ok := intAt(t.klout(), byFormat(t.format, "score", "klout_score"))
		return optInt{v, ok}
	})
	return r.v, r.ok
}

type optString struct {
	v  string
	ok bool
}

// KloutProfile returns the poster's Klout profile URL.
func (t *Tweet) KloutProfile() (string, bool) {
	r := memo.Value(t.cache, "klout_profile", func() optString {
		var s string
		var ok bool
		switch t.format {
		case FormatOriginal:
			s, ok = strOK(t.klout(), "profile_url")
		case FormatActivityStreams:
			s, ok = strOK(t.klout(), "klout_profile", "link")
		}
		return optString{s, ok}
	})
	return r.v, r.ok
}

// KloutID returns the poster's Klout user id.
func (t *Tweet) KloutID() (string, bool) {
	r := memo.Value(t.cache, "klout_id", func() optString {
		var v any
		switch t.format {
		case FormatOriginal:
			v, _ = lookup(t.klout(), "user_id")
		case FormatActivityStreams:
			v, _ = lookup(t.klout(), "klout_profile", "klout_user_id")
		}
		s, ok := idString(v)
		return optString{s, ok}
	})
	return r.v, r.ok
}

// byFormat picks the key name used by format f.
func byFormat(f Format, original, activity string) string {
	switch f {
	case FormatOriginal:
		return original
	case FormatActivityStreams:
		return activity
	}
	return ""
}

// KloutInfluenceTopics returns the topics the poster is influential in.
// ok is false when the enrichment is absent.
func (t *Tweet) KloutInfluenceTopics() ([]KloutTopic, bool) {
	return t.kloutTopics("klout_influence_topics", "influence")
}

// KloutInterestTopics returns the topics the poster is interested in.
func (t *Tweet) KloutInterestTopics() ([]KloutTopic, bool) {
	return t.kloutTopics("klout_interest_topics", "interest")
}

type optTopics struct {
	v  []KloutTopic
	ok bool
}

func (t *Tweet) kloutTopics(field, kind string) ([]KloutTopic, bool) {
	r := memo.Value(t.cache, field, func() optTopics {
		switch t.format {
		case FormatOriginal:
			v, ok := lookup(t.klout(), kind+"_topics")
			if !ok || v == nil {
				return optTopics{}
			}
			topics := []KloutTopic{}
			for _, e := range sliceAt(t.klout(), kind+"_topics") {
				m, ok := e.(map[string]any)
				if !ok {
					continue
				}
				tp := KloutTopic{Name: strAt(m, "name"), URL: strAt(m, "url")}
				tp.ID, _ = idString(m["id"])
				tp.Score, _ = floatAt(m, "score")
				topics = append(topics, tp)
			}
			return optTopics{topics, true}
		case FormatActivityStreams:
			v, ok := lookup(t.klout(), "klout_profile", "topics")
			if !ok || v == nil {
				return optTopics{}
			}
			topics := []KloutTopic{}
			for _, e := range sliceAt(t.klout(), "klout_profile", "topics") {
				m, ok := e.(map[string]any)
				if !ok || strAt(m, "topic_type") != kind {
					continue
				}
				tp := KloutTopic{Name: strAt(m, "display_name"), URL: strAt(m, "link")}
				tp.ID, _ = idString(m["klout_topic_id"])
				tp.Score, _ = floatAt(m, "score")
				topics = append(topics, tp)
			}
			return optTopics{topics, true}
		}
		return optTopics{}
	})
	return slices.Clone(r.v), r.ok
}
