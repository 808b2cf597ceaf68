package tweetparse

import (
	"net/url"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/reoring/tweetparse/internal/memo"
)

// Generator is the client application that posted the Tweet.
type Generator struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// MatchingRule is a filtering rule that selected the Tweet for delivery.
type MatchingRule struct {
	ID    string `json:"id,omitempty"`
	Tag   string `json:"tag,omitempty"`
	Value string `json:"value,omitempty"`
}

// Lang returns the machine-detected language code of the text.
func (t *Tweet) Lang() string {
	return memo.Value(t.cache, "lang", func() string {
		return strAt(t.raw, byFormat(t.format, "lang", "twitter_lang"))
	})
}

// Generator returns the posting application, or nil when unknown. The
// original format stores it as an HTML anchor in "source".
func (t *Tweet) Generator() *Generator {
	return clonePtr(t.generator())
}

func (t *Tweet) generator() *Generator {
	return memo.Value(t.cache, "generator", func() *Generator {
		switch t.format {
		case FormatOriginal:
			src := strAt(t.raw, "source")
			if src == "" {
				return nil
			}
			return parseSourceAnchor(src)
		case FormatActivityStreams:
			g := mapAt(t.raw, "generator")
			if g == nil {
				return nil
			}
			return &Generator{Name: strAt(g, "displayName"), URL: strAt(g, "link")}
		}
		return nil
	})
}

// parseSourceAnchor reads `<a href="URL" rel="nofollow">Name</a>`. Plain
// text such as "web" becomes the name.
func parseSourceAnchor(src string) *Generator {
	g := &Generator{}
	var name strings.Builder
	z := html.NewTokenizer(strings.NewReader(src))
	for {
		switch z.Next() {
		case html.ErrorToken:
			g.Name = strings.TrimSpace(name.String())
			return g
		case html.StartTagToken:
			tok := z.Token()
			if tok.Data != "a" || g.URL != "" {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == "href" {
					g.URL = a.Val
				}
			}
		case html.TextToken:
			name.Write(z.Text())
		}
	}
}

// InReplyToScreenName returns the handle of the user being replied to.
func (t *Tweet) InReplyToScreenName() string {
	return memo.Value(t.cache, "in_reply_to_screen_name", func() string {
		switch t.format {
		case FormatOriginal:
			return strAt(t.raw, "in_reply_to_screen_name")
		case FormatActivityStreams:
			name, _ := replyLink(t.raw)
			return name
		}
		return ""
	})
}

// InReplyToStatusID returns the id of the Tweet being replied to.
func (t *Tweet) InReplyToStatusID() string {
	return memo.Value(t.cache, "in_reply_to_status_id", func() string {
		switch t.format {
		case FormatOriginal:
			if s := strAt(t.raw, "in_reply_to_status_id_str"); s != "" {
				return s
			}
			s, _ := idString(t.raw["in_reply_to_status_id"])
			return s
		case FormatActivityStreams:
			_, id := replyLink(t.raw)
			return id
		}
		return ""
	})
}

// InReplyToUserID returns the id of the user being replied to. Activity
// streams only link the replied-to Tweet, so the call fails with a
// *NotAvailableError for them.
func (t *Tweet) InReplyToUserID() (string, error) {
	return memo.Get(t.cache, "in_reply_to_user_id", func() (string, error) {
		if t.format == FormatActivityStreams {
			return "", &NotAvailableError{Field: "in_reply_to_user_id", Format: t.format}
		}
		if s := strAt(t.raw, "in_reply_to_user_id_str"); s != "" {
			return s, nil
		}
		s, _ := idString(t.raw["in_reply_to_user_id"])
		return s, nil
	})
}

// replyLink splits an activity-streams inReplyTo link of the form
// http://twitter.com/<screen_name>/statuses/<id>.
func replyLink(raw map[string]any) (screenName, statusID string) {
	u, err := url.Parse(strAt(raw, "inReplyTo", "link"))
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 3 || parts[1] != "statuses" {
		return "", ""
	}
	return parts[0], parts[2]
}

// FavoriteCount returns the like count at collection time.
func (t *Tweet) FavoriteCount() (int64, bool) {
	r := memo.Value(t.cache, "favorite_count", func() optInt {
		v, ok := intAt(t.raw, byFormat(t.format, "favorite_count", "favoritesCount"))
		return optInt{v, ok}
	})
	return r.v, r.ok
}

// RetweetCount returns the retweet count at collection time.
func (t *Tweet) RetweetCount() (int64, bool) {
	r := memo.Value(t.cache, "retweet_count", func() optInt {
		v, ok := intAt(t.raw, byFormat(t.format, "retweet_count", "retweetCount"))
		return optInt{v, ok}
	})
	return r.v, r.ok
}

// MatchingRules returns the delivery rules that matched the Tweet.
func (t *Tweet) MatchingRules() []MatchingRule {
	return slices.Clone(t.matchingRules())
}

func (t *Tweet) matchingRules() []MatchingRule {
	return memo.Value(t.cache, "matching_rules", func() []MatchingRule {
		var rules []any
		switch t.format {
		case FormatOriginal:
			rules = sliceAt(t.raw, "matching_rules")
		case FormatActivityStreams:
			rules = sliceAt(t.raw, "gnip", "matching_rules")
		}
		var out []MatchingRule
		for _, e := range rules {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			r := MatchingRule{Tag: strAt(m, "tag"), Value: strAt(m, "value")}
			if s := strAt(m, "id_str"); s != "" {
				r.ID = s
			} else {
				r.ID, _ = idString(m["id"])
			}
			out = append(out, r)
		}
		return out
	})
}
