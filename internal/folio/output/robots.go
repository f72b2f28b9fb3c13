package output

import (
	"fmt"
	"strings"

	"github.com/folio-blog/folio/internal/folio/config"
)

// GenerateRobotsTxt generates a robots.txt file. When AllowAll is off only
// the 404 page is disallowed for everyone.
func GenerateRobotsTxt(cfg *config.Config) string {
	var lines []string

	lines = append(lines, "User-agent: *")
	if cfg.Robots.AllowAll {
		lines = append(lines, "Allow: /")
	} else {
		lines = append(lines, "Disallow: /404.html")
	}
	lines = append(lines, "")

	for _, bot := range cfg.Robots.ExtraBots {
		lines = append(lines, fmt.Sprintf("User-agent: %s", bot))
		lines = append(lines, "Allow: /")
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("Sitemap: %s/sitemap.xml", cfg.Site.BaseURL))

	return strings.Join(lines, "\n") + "\n"
}
