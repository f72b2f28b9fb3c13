package output

import (
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Site.Name = "Folio"
	cfg.Site.BaseURL = "https://example.dev"
	cfg.Site.Description = "Notes on Swift"
	cfg.Site.Language = "en"
	cfg.RSS.Enabled = true
	cfg.RSS.MainFeed = "feed.xml"
	cfg.RSS.MaxItems = 2
	return cfg
}

func testPosts() []*content.Post {
	return []*content.Post{
		{Slug: "c", Title: "Vapor & Fluent", Summary: "c", Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Category: category.ServerSideSwift},
		{Slug: "b", Title: "Actors", Summary: "b", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Category: category.SwiftConcurrency},
		{Slug: "a", Title: "Tasks", Summary: "a", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Category: category.SwiftConcurrency},
	}
}

func TestGenerateSitemapFiles_Single(t *testing.T) {
	entries := []SitemapEntry{
		NewSitemapEntry("https://example.dev", "/", "2026-03-01", "1.0", "daily"),
		NewSitemapEntry("https://example.dev/", "/posts/c/", "2026-03-01", "0.8", "monthly"),
	}

	files, err := GenerateSitemapFiles(entries, "https://example.dev", 10)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "sitemap.xml", files[0].Filename)
	assert.Contains(t, string(files[0].Content), "<loc>https://example.dev/</loc>")
	assert.Contains(t, string(files[0].Content), "<loc>https://example.dev/posts/c/</loc>")
}

func TestGenerateSitemapFiles_Split(t *testing.T) {
	var entries []SitemapEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, NewSitemapEntry("https://example.dev", fmt.Sprintf("/posts/p%d/", i), fmt.Sprintf("2026-01-0%d", i+1), "", ""))
	}

	files, err := GenerateSitemapFiles(entries, "https://example.dev", 2)
	require.NoError(t, err)
	require.Len(t, files, 4)
	assert.Equal(t, "sitemap.xml", files[0].Filename)
	assert.Equal(t, "sitemap-3.xml", files[3].Filename)

	var idx sitemapIndex
	require.NoError(t, xml.Unmarshal(files[0].Content, &idx))
	require.Len(t, idx.Sitemaps, 3)
	assert.Equal(t, "https://example.dev/sitemap-1.xml", idx.Sitemaps[0].Loc)
	assert.Equal(t, "2026-01-05", idx.Sitemaps[0].Lastmod)

	var part urlSet
	require.NoError(t, xml.Unmarshal(files[3].Content, &part))
	require.Len(t, part.URLs, 1)
	assert.Equal(t, "https://example.dev/posts/p4/", part.URLs[0].Loc)
}

func TestGenerateRSSFeeds(t *testing.T) {
	cfg := testConfig()
	cfg.RSS.CategoryFeeds = true
	posts := testPosts()

	feeds := GenerateRSSFeeds(posts, cfg, taxonomy.ByCategory(posts))
	require.Len(t, feeds, 3)
	assert.Equal(t, "feed.xml", feeds[0].RelativePath)
	assert.Equal(t, "categories/swift-concurrency/feed.xml", feeds[1].RelativePath)
	assert.Equal(t, "categories/server-side-swift/feed.xml", feeds[2].RelativePath)

	var doc rssDoc
	require.NoError(t, xml.Unmarshal([]byte(feeds[0].Content), &doc))
	require.Len(t, doc.Channel.Items, 2, "capped at max items")
	assert.Equal(t, "Vapor & Fluent", doc.Channel.Items[0].Title)
	assert.Equal(t, "https://example.dev/posts/c/", doc.Channel.Items[0].Link)
	assert.Equal(t, "Server-Side Swift", doc.Channel.Items[0].Category)
	assert.Contains(t, feeds[0].Content, "Vapor &amp; Fluent")
	assert.NotContains(t, feeds[0].Content, "&amp;amp;")
}

func TestGenerateRSSFeeds_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.RSS.Enabled = false
	assert.Nil(t, GenerateRSSFeeds(testPosts(), cfg, taxonomy.Taxonomy{}))
}

func TestGenerateRobotsTxt(t *testing.T) {
	cfg := testConfig()
	cfg.Robots.ExtraBots = []string{"GPTBot"}

	out := GenerateRobotsTxt(cfg)
	assert.True(t, strings.HasPrefix(out, "User-agent: *\nDisallow: /404.html\n"))
	assert.Contains(t, out, "User-agent: GPTBot\nAllow: /\n")
	assert.True(t, strings.HasSuffix(out, "Sitemap: https://example.dev/sitemap.xml\n"))
}

func TestGenerateManifest(t *testing.T) {
	out := GenerateManifest(testConfig())
	assert.Contains(t, out, `"name": "Folio"`)
	assert.Contains(t, out, `"start_url": "/"`)
}

func TestGenerateLlmsTxt(t *testing.T) {
	cfg := testConfig()
	posts := testPosts()
	pages := []*content.Page{{Slug: "about", Title: "About", Description: "Who"}}

	out := GenerateLlmsTxt(cfg, taxonomy.ByCategory(posts), pages)

	assert.True(t, strings.HasPrefix(out, "# Folio\n\n> Notes on Swift\n"))
	concurrency := strings.Index(out, "## Swift Concurrency")
	server := strings.Index(out, "## Server-Side Swift")
	assert.Greater(t, server, concurrency)
	assert.Contains(t, out, "- [Actors](https://example.dev/posts/b/): b")
	assert.Contains(t, out, "## Pages\n- [About](https://example.dev/about/): Who")
}

func TestGenerateSearchIndex(t *testing.T) {
	data, err := GenerateSearchIndex(testPosts()[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"t":"Vapor & Fluent","d":"c","u":"/posts/c/","c":"Server-Side Swift"}]`, string(data))

	data, err = GenerateSearchIndex(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
