package schema

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
)

func testGenerator() *Generator {
	return NewGenerator(config.SiteConfig{
		Name:     "Folio",
		BaseURL:  "https://example.dev",
		Language: "en",
		Author:   "Sam Doe",
	})
}

func TestBlogPosting(t *testing.T) {
	p := &content.Post{
		Slug:     "actors",
		Title:    "Actors",
		Summary:  "About actors.",
		Date:     time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		Category: category.SwiftConcurrency,
		Tags:     []string{"actors", "sendable"},
	}

	s := testGenerator().GenerateBlogPostingSchema(p, "https://example.dev/images/share/actors.svg")

	assert.Equal(t, "BlogPosting", s["@type"])
	assert.Equal(t, "https://example.dev/posts/actors/", s["url"])
	assert.Equal(t, "2026-01-05T00:00:00Z", s["datePublished"])
	assert.Equal(t, "2026-01-05T00:00:00Z", s["dateModified"])
	assert.Equal(t, "Swift Concurrency", s["articleSection"])
	assert.Equal(t, "actors, sendable", s["keywords"])

	author, ok := s["author"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "https://example.dev/about/", author["url"])
}

func TestBreadcrumb(t *testing.T) {
	s := testGenerator().GenerateBreadcrumbSchema([]BreadcrumbItem{
		{Name: "Home", URL: "/"},
		{Name: "Posts", URL: "/posts/"},
		{Name: "Actors"},
	})

	items, ok := s["itemListElement"].([]map[string]interface{})
	require.True(t, ok)
	require.Len(t, items, 3)
	assert.Equal(t, "https://example.dev/posts/", items[1]["item"])
	assert.Equal(t, 3, items[2]["position"])
	assert.NotContains(t, items[2], "item")
}

func TestCollectionPage(t *testing.T) {
	items := PostItems([]*content.Post{{Slug: "a", Title: "A"}, {Slug: "b", Title: "B"}})
	s := testGenerator().GenerateCollectionPageSchema("Xcode", "Posts about Xcode", "/categories/xcode/", items, "")

	assert.Equal(t, "https://example.dev/categories/xcode/", s["url"])
	assert.NotContains(t, s, "image")
	entity := s["mainEntity"].(map[string]interface{})
	assert.Equal(t, 2, entity["numberOfItems"])
}

func TestWebPage(t *testing.T) {
	g := testGenerator()
	assert.Equal(t, "AboutPage", g.GenerateWebPageSchema(&content.Page{Slug: "about"})["@type"])
	assert.Equal(t, "WebPage", g.GenerateWebPageSchema(&content.Page{Slug: "privacy"})["@type"])
}

func TestMarshalSchemas(t *testing.T) {
	g := testGenerator()
	out := MarshalSchemas(g.GenerateWebSiteSchema(""), nil, g.GenerateItemListSchema("</script>", "", nil))

	blocks := strings.Split(out, "\n")
	require.Len(t, blocks, 2)
	assert.Contains(t, out, `\u003c/script\u003e`)

	body := strings.TrimSuffix(strings.TrimPrefix(blocks[0], `<script type="application/ld+json">`), "</script>")
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "WebSite", decoded["@type"])
}
