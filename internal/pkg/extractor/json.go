package extractor

import (
	"bytes"
	"encoding/json"
)

// hrefsFromJSON collects every "href" string value in a JSON hypermedia
// body, at any nesting depth.
func hrefsFromJSON(body []byte) ([]string, error) {
	var data interface{}
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&data); err != nil {
		return nil, err
	}

	links := make([]string, 0)
	findHrefs(data, &links)

	return links, nil
}

func findHrefs(data interface{}, links *[]string) {
	switch v := data.(type) {
	case []interface{}:
		for _, element := range v {
			findHrefs(element, links)
		}
	case map[string]interface{}:
		for key, value := range v {
			if isHrefKey(key) {
				if href, ok := value.(string); ok {
					*links = append(*links, href)
					continue
				}
			}
			findHrefs(value, links)
		}
	}
}

// isHrefKey matches the hyperlink reference field in JSON bodies and the
// attribute forms mxj produces for XML ones.
func isHrefKey(key string) bool {
	return key == "href" || key == "-href" || key == "@href"
}
