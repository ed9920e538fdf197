package analysis

import (
	"net/url"
	"strings"
)

// searchURLTemplate is the only place an outbound link can originate.
// Learn-more content from the model is treated strictly as search phrases;
// building the URL locally keeps model output out of the link trust
// boundary.
const searchURLTemplate = "https://www.google.com/search?q="

// DeriveSearchLinks turns search-query phrases into concrete search-engine
// links. Deterministic: the same phrase always yields the same URL. Phrases
// that are themselves URLs are rejected.
func DeriveSearchLinks(phrases []string) []SearchLink {
	out := []SearchLink{}
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
			continue
		}
		out = append(out, SearchLink{
			Phrase: p,
			URL:    searchURLTemplate + url.QueryEscape(p),
		})
	}
	return out
}
