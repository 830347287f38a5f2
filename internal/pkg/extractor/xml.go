package extractor

import (
	"github.com/clbanning/mxj/v2"
)

// hrefsFromXML converts an XML body to a map and walks it with the same
// href collector used for JSON.
func hrefsFromXML(body []byte) ([]string, error) {
	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0)
	findHrefs(map[string]interface{}(m), &links)

	return links, nil
}
