// Package models holds the types shared between the frontier, the visited
// store and the crawler.
package models

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// Resource is a crawl-able API resource. URL is either a path relative to the
// configured base URL (the common case for hypermedia links) or an absolute
// URL. The same URL requested under two media types is two distinct resources.
type Resource struct {
	URL       string
	MediaType string
	State     State

	// Via is the URL of the resource whose body linked here, empty for the
	// start resource.
	Via string

	// Seed marks the start resource, which is fetched regardless of filters.
	Seed bool
}

// NewResource initializes a pending *Resource.
func NewResource(URL, mediaType string) *Resource {
	return &Resource{
		URL:       URL,
		MediaType: mediaType,
		State:     StatePending,
	}
}

// Key uniquely identifies the (URL, media type) pair for visited-state and
// enqueue deduplication purposes.
func (r *Resource) Key() string {
	return r.URL + "\x00" + r.MediaType
}

// Hash returns the xxh3 hash of Key, as a string, suitable as a database key.
func (r *Resource) Hash() string {
	return strconv.FormatUint(xxh3.HashString(r.Key()), 10)
}
