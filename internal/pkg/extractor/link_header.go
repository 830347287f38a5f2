package extractor

import (
	"net/http"

	"github.com/tomnomnom/linkheader"
)

// urlsFromLinkHeader collects the targets of HTTP Link response headers,
// used by some hypermedia APIs for pagination.
func urlsFromLinkHeader(header http.Header) []string {
	if header == nil {
		return nil
	}

	var urls []string
	for _, value := range header.Values("Link") {
		for _, link := range linkheader.Parse(value) {
			if link.URL != "" {
				urls = append(urls, link.URL)
			}
		}
	}

	return urls
}
