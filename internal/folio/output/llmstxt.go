package output

import (
	"fmt"
	"strings"

	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

// GenerateLlmsTxt generates an llms.txt file in the llmstxt.org format:
// posts grouped by category, then the standalone pages.
func GenerateLlmsTxt(cfg *config.Config, categories taxonomy.Taxonomy, pages []*content.Page) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("# %s", cfg.Site.Name))
	lines = append(lines, "")

	tagline := cfg.LlmsTxt.Tagline
	if tagline == "" {
		tagline = cfg.Site.Description
	}
	if tagline != "" {
		lines = append(lines, fmt.Sprintf("> %s", tagline))
		lines = append(lines, "")
	}

	for _, entry := range categories.Entries {
		lines = append(lines, fmt.Sprintf("## %s", entry.Name))
		for _, p := range entry.Posts {
			line := fmt.Sprintf("- [%s](%s%s)", p.Title, cfg.Site.BaseURL, p.URL())
			if p.Summary != "" {
				line += ": " + p.Summary
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	if len(pages) > 0 {
		lines = append(lines, "## Pages")
		for _, pg := range pages {
			line := fmt.Sprintf("- [%s](%s%s)", pg.Title, cfg.Site.BaseURL, pg.URL())
			if pg.Description != "" {
				line += ": " + pg.Description
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
