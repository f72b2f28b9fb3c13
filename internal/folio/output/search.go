package output

import (
	"encoding/json"

	"github.com/folio-blog/folio/internal/folio/content"
)

const searchDescLen = 120

type searchEntry struct {
	T string   `json:"t"`           // title
	D string   `json:"d,omitempty"` // summary (truncated)
	U string   `json:"u"`           // url
	C string   `json:"c"`           // category label
	G []string `json:"g,omitempty"` // tags
}

// GenerateSearchIndex builds the compact JSON index used for client-side
// search, one entry per post in input order.
func GenerateSearchIndex(posts []*content.Post) ([]byte, error) {
	entries := make([]searchEntry, 0, len(posts))
	for _, p := range posts {
		desc := []rune(p.Summary)
		if len(desc) > searchDescLen {
			desc = desc[:searchDescLen]
		}
		entries = append(entries, searchEntry{
			T: p.Title,
			D: string(desc),
			U: p.URL(),
			C: p.Category.Label(),
			G: p.Tags,
		})
	}
	return json.Marshal(entries)
}
