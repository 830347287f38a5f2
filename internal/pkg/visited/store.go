// Package visited persists which (URL, media type) pairs have already been
// processed, so that consecutive runs against the same store are incremental.
//
// Two backends are available: an append-only human-readable journal (the
// default, safe to edit by hand to force re-processing of a URL) and a
// leveldb database for very large runs. A store must never be shared between
// concurrent runs, there is a single writer by design.
package visited

import "github.com/warmstack/primer/pkg/models"

// Store is the visited-state abstraction injected into the crawler.
type Store interface {
	// Contains reports whether the (URL, media type) pair was recorded, in
	// this run or a previous one.
	Contains(URL, mediaType string) bool

	// Record durably appends the outcome for the pair before returning.
	Record(URL, mediaType string, outcome models.State) error

	// Count returns the number of records known to this store instance.
	Count() int

	Close() error
}

func key(URL, mediaType string) string {
	return URL + "\x00" + mediaType
}
