// Package tweetparse normalizes tweet payloads delivered in either the
// Twitter API "original" format or the Gnip "activity streams" format.
//
// A payload is classified once at construction; every accessor then derives
// its value from the payload and the detected format, and the result is
// memoized on the Tweet:
//
//	t, err := tweetparse.New(payload)
//	if errors.Is(err, tweetparse.ErrNotATweet) {
//		// neither format matched
//	}
//	fmt.Println(t.ID(), t.CreatedAtSeconds(), t.ScreenName())
//	txt, err := t.AllText()
//
// Raw JSON can be decoded with ParseBytes or ParseReader, which keep 64-bit
// identifiers exact and enforce duplicate-key, depth, and size limits.
//
// Accessors that a format cannot carry return a *NotAvailableError.
// Embedded quote and retweet payloads are constructed lazily; a malformed
// embedded payload surfaces as a *NotATweetError naming the embedding.
package tweetparse
