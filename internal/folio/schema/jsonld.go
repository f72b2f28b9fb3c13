package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
)

// Generator creates JSON-LD structured data.
type Generator struct {
	SiteConfig config.SiteConfig
}

// NewGenerator creates a new JSON-LD generator.
func NewGenerator(siteCfg config.SiteConfig) *Generator {
	return &Generator{SiteConfig: siteCfg}
}

func (g *Generator) abs(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return g.SiteConfig.BaseURL + path
}

func (g *Generator) author() map[string]interface{} {
	if g.SiteConfig.Author == "" {
		return nil
	}
	a := map[string]interface{}{
		"@type": "Person",
		"name":  g.SiteConfig.Author,
	}
	if g.SiteConfig.AuthorURL != "" {
		a["url"] = g.SiteConfig.AuthorURL
	} else {
		a["url"] = g.SiteConfig.BaseURL + "/about/"
	}
	return a
}

// GenerateBlogPostingSchema generates BlogPosting JSON-LD for a post.
func (g *Generator) GenerateBlogPostingSchema(p *content.Post, imageURL string) map[string]interface{} {
	postURL := g.abs(p.URL())
	schema := map[string]interface{}{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         p.Title,
		"description":      p.Summary,
		"url":              postURL,
		"mainEntityOfPage": postURL,
		"datePublished":    p.Date.Format(time.RFC3339),
		"dateModified":     p.LastModified().Format(time.RFC3339),
		"articleSection":   p.Category.Label(),
		"inLanguage":       g.SiteConfig.Language,
	}

	if a := g.author(); a != nil {
		schema["author"] = a
	}
	schema["publisher"] = map[string]interface{}{
		"@type": "Organization",
		"name":  g.SiteConfig.Name,
		"url":   g.SiteConfig.BaseURL,
	}

	if len(p.Tags) > 0 {
		schema["keywords"] = strings.Join(p.Tags, ", ")
	}
	if imageURL != "" {
		schema["image"] = []string{imageURL}
	}

	return schema
}

// GenerateWebPageSchema generates WebPage JSON-LD for a standalone page.
func (g *Generator) GenerateWebPageSchema(pg *content.Page) map[string]interface{} {
	typ := "WebPage"
	if pg.Slug == "about" {
		typ = "AboutPage"
	}
	return map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       typ,
		"name":        pg.Title,
		"description": pg.Description,
		"url":         g.abs(pg.URL()),
	}
}

// GenerateBreadcrumbSchema generates BreadcrumbList JSON-LD.
func (g *Generator) GenerateBreadcrumbSchema(items []BreadcrumbItem) map[string]interface{} {
	var listItems []map[string]interface{}
	for i, item := range items {
		li := map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     item.Name,
		}
		if item.URL != "" {
			li["item"] = g.abs(item.URL)
		}
		listItems = append(listItems, li)
	}

	return map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": listItems,
	}
}

// BreadcrumbItem is a single breadcrumb entry. The last item usually has
// no URL.
type BreadcrumbItem struct {
	Name string
	URL  string
}

// GenerateWebSiteSchema generates WebSite JSON-LD.
func (g *Generator) GenerateWebSiteSchema(imageURL string) map[string]interface{} {
	s := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        g.SiteConfig.Name,
		"url":         g.SiteConfig.BaseURL,
		"description": g.SiteConfig.Description,
		"inLanguage":  g.SiteConfig.Language,
	}
	if a := g.author(); a != nil {
		s["author"] = a
	}
	if imageURL != "" {
		s["image"] = imageURL
	}
	return s
}

// ItemListEntry is a single item in an ItemList.
type ItemListEntry struct {
	Name string
	URL  string
}

// PostItems converts posts to list entries.
func PostItems(posts []*content.Post) []ItemListEntry {
	items := make([]ItemListEntry, len(posts))
	for i, p := range posts {
		items[i] = ItemListEntry{Name: p.Title, URL: p.URL()}
	}
	return items
}

func (g *Generator) listElements(items []ItemListEntry) []map[string]interface{} {
	var listItems []map[string]interface{}
	for i, item := range items {
		listItems = append(listItems, map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"url":      g.abs(item.URL),
			"name":     item.Name,
		})
	}
	return listItems
}

// GenerateItemListSchema generates ItemList JSON-LD.
func (g *Generator) GenerateItemListSchema(name, description string, items []ItemListEntry) map[string]interface{} {
	return map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"description":     description,
		"numberOfItems":   len(items),
		"itemListElement": g.listElements(items),
	}
}

// GenerateCollectionPageSchema generates CollectionPage JSON-LD.
func (g *Generator) GenerateCollectionPageSchema(name, description, pageURL string, items []ItemListEntry, imageURL string) map[string]interface{} {
	s := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "CollectionPage",
		"name":        name,
		"url":         g.abs(pageURL),
		"description": description,
		"mainEntity": map[string]interface{}{
			"@type":           "ItemList",
			"numberOfItems":   len(items),
			"itemListElement": g.listElements(items),
		},
	}
	if imageURL != "" {
		s["image"] = imageURL
	}
	return s
}

// MarshalSchemas encodes one or more schemas as JSON-LD script blocks.
// json.Marshal escapes '<' and '>', so the output is safe inside a page.
func MarshalSchemas(schemas ...map[string]interface{}) string {
	var parts []string
	for _, s := range schemas {
		if s == nil {
			continue
		}
		data, err := json.Marshal(s)
		if err != nil {
			continue
		}
		parts = append(parts, fmt.Sprintf(`<script type="application/ld+json">%s</script>`, string(data)))
	}
	return strings.Join(parts, "\n")
}
