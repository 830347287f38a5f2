// Package extractor discovers candidate URLs in fetched hypermedia
// responses. Bodies are walked according to the configured media type,
// HTTP Link response headers are always considered. Unparseable bodies
// yield no links, discovery failure is never crawl-fatal.
package extractor

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/warmstack/primer/internal/pkg/log"
	"github.com/warmstack/primer/internal/pkg/utils"
)

var logger *log.FieldedLogger

func getLogger() *log.FieldedLogger {
	if logger == nil {
		logger = log.NewFieldedLogger(&log.Fields{
			"component": "extractor",
		})
	}
	return logger
}

// Extract returns the deduplicated, normalized candidate URLs referenced by
// a fetched resource. Candidates are paths relative to the base URL;
// references leading outside the base are dropped.
func Extract(body []byte, header http.Header, base *url.URL, mediaType string) []string {
	var raw []string

	switch {
	case strings.Contains(mediaType, "json"):
		hrefs, err := hrefsFromJSON(body)
		if err != nil {
			getLogger().Warn("unparseable JSON body, no links extracted", "error", err.Error())
		}
		raw = append(raw, hrefs...)

	case strings.Contains(mediaType, "xml"):
		hrefs, err := hrefsFromXML(body)
		if err != nil {
			getLogger().Warn("unparseable XML body, no links extracted", "error", err.Error())
		}
		raw = append(raw, hrefs...)

	case strings.HasPrefix(mediaType, "text/") && !strings.Contains(mediaType, "csv"):
		raw = append(raw, urlsFromText(body)...)

	default:
		// Spreadsheet and CSV renditions carry no hypermedia, nothing to walk
	}

	raw = append(raw, urlsFromLinkHeader(header)...)

	var candidates []string
	for _, r := range raw {
		if candidate, ok := normalize(r, base); ok {
			candidates = append(candidates, candidate)
		}
	}

	return utils.DedupeStrings(candidates)
}

// normalize turns a discovered reference into a base-relative path
// candidate. Rooted paths pass through as-is (the API links relative to its
// base), absolute and relative URLs are kept only when they stay under the
// base URL.
func normalize(raw string, base *url.URL) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	if strings.HasPrefix(raw, "/") {
		return raw, true
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	if u.IsAbs() {
		if !govalidator.IsRequestURL(raw) {
			return "", false
		}
	} else {
		u = base.ResolveReference(u)
	}

	if u.Host != base.Host {
		return "", false
	}

	p := u.Path
	if base.Path != "" {
		if !strings.HasPrefix(p, base.Path) {
			return "", false
		}
		p = strings.TrimPrefix(p, base.Path)
	}
	if !strings.HasPrefix(p, "/") {
		return "", false
	}

	// Pagination and similar parameters stay part of the candidate
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}

	return p, true
}
