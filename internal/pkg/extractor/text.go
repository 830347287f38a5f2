package extractor

import (
	"mvdan.cc/xurls/v2"
)

var strictURLs = xurls.Strict()

// urlsFromText scans a plain-text body for URLs. Relative references cannot
// be recognized in free text, only absolute URLs are found here and the
// normalization step keeps the ones under the base URL.
func urlsFromText(body []byte) []string {
	return strictURLs.FindAllString(string(body), -1)
}
