package tweetparse

import (
	"fmt"
	"slices"
	"strings"
)

type accessor func(*Tweet) (any, error)

// fields maps snake_case field names to accessors. Optional values that are
// absent come back as an untyped nil.
var fields = map[string]accessor{
	"id":                      plain((*Tweet).ID),
	"format":                  plain(func(t *Tweet) string { return t.Format().String() }),
	"created_at_seconds":      plain((*Tweet).CreatedAtSeconds),
	"created_at_datetime":     plain((*Tweet).CreatedAt),
	"created_at_string":       plain((*Tweet).CreatedAtString),
	"posted_time":             fallible((*Tweet).PostedTime),
	"text":                    plain((*Tweet).Text),
	"tweet_type":              plain(func(t *Tweet) string { return string(t.Type()) }),
	"user_entered_text":       plain((*Tweet).UserEnteredText),
	"poll_options":            fallible((*Tweet).PollOptions),
	"quote_or_rt_text":        fallible((*Tweet).QuoteOrRetweetText),
	"all_text":                fallible((*Tweet).AllText),
	"quote_tweet":             embedded((*Tweet).QuoteTweet),
	"retweet":                 embedded((*Tweet).Retweet),
	"embedded_tweet":          embedded((*Tweet).EmbeddedTweet),
	"user_mentions":           plain((*Tweet).UserMentions),
	"quoted_user":             pointer((*Tweet).QuotedUser),
	"quoted_mentions":         fallible((*Tweet).QuotedMentions),
	"hashtags":                plain((*Tweet).Hashtags),
	"tweet_links":             fallible((*Tweet).Links),
	"most_unrolled_urls":      fallible((*Tweet).MostUnrolledURLs),
	"geo_coordinates":         pointer((*Tweet).GeoCoordinates),
	"profile_location":        pointer((*Tweet).ProfileLocation),
	"user_id":                 plain((*Tweet).UserID),
	"screen_name":             plain((*Tweet).ScreenName),
	"name":                    plain((*Tweet).Name),
	"bio":                     plain((*Tweet).Bio),
	"follower_count":          optional((*Tweet).FollowerCount),
	"following_count":         optional((*Tweet).FollowingCount),
	"klout_score":             optional((*Tweet).KloutScore),
	"klout_profile":           optional((*Tweet).KloutProfile),
	"klout_id":                optional((*Tweet).KloutID),
	"klout_influence_topics":  optional((*Tweet).KloutInfluenceTopics),
	"klout_interest_topics":   optional((*Tweet).KloutInterestTopics),
	"lang":                    plain((*Tweet).Lang),
	"generator":               pointer((*Tweet).Generator),
	"in_reply_to_screen_name": plain((*Tweet).InReplyToScreenName),
	"in_reply_to_status_id":   plain((*Tweet).InReplyToStatusID),
	"in_reply_to_user_id":     fallible((*Tweet).InReplyToUserID),
	"favorite_count":          optional((*Tweet).FavoriteCount),
	"retweet_count":           optional((*Tweet).RetweetCount),
	"matching_rules":          plain((*Tweet).MatchingRules),
}

// FieldNames returns every name accepted by Lookup, sorted.
func FieldNames() []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the value of the named field. Names are the snake_case
// forms listed by FieldNames; matching ignores case and surrounding space.
func (t *Tweet) Lookup(name string) (any, error) {
	fn, ok := fields[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("tweetparse: unknown field %q", name)
	}
	return fn(t)
}

func plain[T any](f func(*Tweet) T) accessor {
	return func(t *Tweet) (any, error) { return f(t), nil }
}

func fallible[T any](f func(*Tweet) (T, error)) accessor {
	return func(t *Tweet) (any, error) {
		v, err := f(t)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func optional[T any](f func(*Tweet) (T, bool)) accessor {
	return func(t *Tweet) (any, error) {
		if v, ok := f(t); ok {
			return v, nil
		}
		return nil, nil
	}
}

func pointer[T any](f func(*Tweet) *T) accessor {
	return func(t *Tweet) (any, error) {
		if v := f(t); v != nil {
			return v, nil
		}
		return nil, nil
	}
}

func embedded(f func(*Tweet) (*Tweet, error)) accessor {
	return func(t *Tweet) (any, error) {
		v, err := f(t)
		if err != nil || v == nil {
			return nil, err
		}
		return v, nil
	}
}
