package tweetparse

import (
	"fmt"
	"strings"

	"github.com/reoring/tweetparse/i18n"
	"github.com/reoring/tweetparse/internal/keyset"
	"github.com/reoring/tweetparse/snowflake"
)

// Classify reports which format raw is in. The checks are structural: an "id"
// key plus "created_at" selects the original format, an "id" key plus
// "postedTime" selects activity streams. Each format additionally needs its
// author and text keys, and the canonical id must be a snowflake.
func Classify(raw map[string]any) (Format, error) {
	if raw == nil {
		return 0, notATweet("payload is nil")
	}
	if _, ok := raw["id"]; !ok {
		return 0, notATweet("payload has no 'id' key")
	}
	var f Format
	switch {
	case hasKey(raw, "created_at"):
		f = FormatOriginal
	case hasKey(raw, "postedTime"):
		f = FormatActivityStreams
	default:
		return 0, notATweet("payload has neither 'created_at' nor 'postedTime' key")
	}
	for _, k := range requiredKeys(f) {
		if !hasKey(raw, k) {
			return 0, notATweet("%s payload has no '%s' key", f, k)
		}
	}
	if f == FormatActivityStreams {
		if _, ok := raw["id"].(string); !ok {
			return 0, notATweet("activity_streams 'id' must be a string, got %T", raw["id"])
		}
	}
	id := tweetID(raw, f)
	if _, err := snowflake.Parse(id); err != nil {
		return 0, notATweet("id %q is not a snowflake: %v", id, err)
	}
	return f, nil
}

func requiredKeys(f Format) []string {
	switch f {
	case FormatOriginal:
		return []string{"user", "text"}
	case FormatActivityStreams:
		return []string{"actor", "body"}
	}
	return nil
}

func hasKey(raw map[string]any, k string) bool {
	_, ok := raw[k]
	return ok
}

var keyEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// checkKeys compares the top-level keys of raw with the expected sets for f.
func checkKeys(raw map[string]any, f Format) error {
	m, err := keyset.Default()
	if err != nil {
		return fmt.Errorf("tweetparse: load key sets: %w", err)
	}
	set := m.Original
	if f == FormatActivityStreams {
		set = m.ActivityStreams
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	missing, unexpected := set.Check(keys)
	var iss Issues
	for _, k := range missing {
		iss = AppendIssues(iss, keyIssue(CodeRequired, k))
	}
	for _, k := range unexpected {
		iss = AppendIssues(iss, keyIssue(CodeUnknownKey, k))
	}
	if len(iss) == 0 {
		return nil
	}
	return &NotATweetError{
		Reason: fmt.Sprintf("unexpected %s format: %s", f, iss.Error()),
		Issues: iss,
		Err:    iss,
	}
}

func keyIssue(code, key string) Issue {
	return Issue{
		Path:    "/" + keyEscaper.Replace(key),
		Code:    code,
		Message: i18n.T(code, map[string]string{"key": key}),
		Params:  map[string]any{"key": key},
	}
}
