package tweetparse

import (
	"slices"

	"github.com/reoring/tweetparse/internal/memo"
)

// Link is one URL entity.
type Link struct {
	URL         string   `json:"url"`
	DisplayURL  string   `json:"display_url,omitempty"`
	ExpandedURL string   `json:"expanded_url,omitempty"`
	Unwound     *Unwound `json:"unwound,omitempty"`
	Indices     Span     `json:"indices"`
}

// Unwound is the resolved destination of a link, when enriched.
type Unwound struct {
	URL         string `json:"url"`
	Status      int    `json:"status,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Links returns the Tweet's URL entities followed by those of the quoted and
// retweeted Tweets.
func (t *Tweet) Links() ([]Link, error) {
	links, err := t.links()
	return cloneLinks(links), err
}

func (t *Tweet) links() ([]Link, error) {
	return memo.Get(t.cache, "tweet_links", func() ([]Link, error) {
		links := ownLinks(t.raw, t.format)
		q, err := t.QuoteTweet()
		if err != nil {
			return nil, err
		}
		if q != nil {
			ql, err := q.links()
			if err != nil {
				return nil, err
			}
			links = append(links, ql...)
		}
		rt, err := t.Retweet()
		if err != nil {
			return nil, err
		}
		if rt != nil {
			rl, err := rt.links()
			if err != nil {
				return nil, err
			}
			links = append(links, rl...)
		}
		return links, nil
	})
}

func ownLinks(raw map[string]any, f Format) []Link {
	var enriched map[string]*Unwound
	if f == FormatActivityStreams {
		enriched = gnipUnwound(raw)
	}
	var out []Link
	for _, e := range sliceAt(entities(raw, f), "urls") {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		l := Link{
			URL:         strAt(m, "url"),
			DisplayURL:  strAt(m, "display_url"),
			ExpandedURL: strAt(m, "expanded_url"),
			Indices:     span(m["indices"]),
		}
		if u := mapAt(m, "unwound"); u != nil {
			l.Unwound = unwoundFrom(u, "url", "status", "title", "description")
		} else if u, ok := enriched[l.URL]; ok {
			l.Unwound = u
		}
		out = append(out, l)
	}
	return out
}

// gnipUnwound indexes the activity-streams "gnip.urls" enrichment by surface
// URL.
func gnipUnwound(raw map[string]any) map[string]*Unwound {
	out := map[string]*Unwound{}
	for _, e := range sliceAt(raw, "gnip", "urls") {
		m, ok := e.(map[string]any)
		if !ok || strAt(m, "url") == "" {
			continue
		}
		out[strAt(m, "url")] = unwoundFrom(m, "expanded_url", "expanded_status", "expanded_url_title", "expanded_url_description")
	}
	return out
}

func unwoundFrom(m map[string]any, urlKey, statusKey, titleKey, descKey string) *Unwound {
	u := &Unwound{
		URL:         strAt(m, urlKey),
		Title:       strAt(m, titleKey),
		Description: strAt(m, descKey),
	}
	if s, ok := intAt(m, statusKey); ok {
		u.Status = int(s)
	}
	return u
}

// MostUnrolledURLs returns one URL per entry of Links, choosing the unwound
// URL, then the expanded URL, then the surface URL.
func (t *Tweet) MostUnrolledURLs() ([]string, error) {
	urls, err := memo.Get(t.cache, "most_unrolled_urls", func() ([]string, error) {
		links, err := t.links()
		if err != nil {
			return nil, err
		}
		out := make([]string, 0, len(links))
		for _, l := range links {
			out = append(out, mostUnrolled(l))
		}
		return out, nil
	})
	return slices.Clone(urls), err
}

// cloneLinks copies links deeply enough that callers cannot reach cached
// Unwound records.
func cloneLinks(links []Link) []Link {
	out := slices.Clone(links)
	for i := range out {
		out[i].Unwound = clonePtr(out[i].Unwound)
	}
	return out
}

func mostUnrolled(l Link) string {
	if l.Unwound != nil && l.Unwound.URL != "" {
		return l.Unwound.URL
	}
	if l.ExpandedURL != "" {
		return l.ExpandedURL
	}
	return l.URL
}
