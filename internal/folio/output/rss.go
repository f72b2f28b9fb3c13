package output

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/folio-blog/folio/internal/folio/config"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/taxonomy"
)

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	Copyright     string    `xml:"copyright,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description"`
	Category    string  `xml:"category,omitempty"`
	GUID        rssGUID `xml:"guid"`
	PubDate     string  `xml:"pubDate"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// RSSFeed represents a generated RSS feed file.
type RSSFeed struct {
	RelativePath string
	Content      string
}

// GenerateRSSFeeds generates the main RSS feed and optionally one feed per
// category at categories/<slug>/feed.xml. posts must be newest first.
func GenerateRSSFeeds(posts []*content.Post, cfg *config.Config, categories taxonomy.Taxonomy) []RSSFeed {
	if !cfg.RSS.Enabled {
		return nil
	}

	buildDate := time.Now().UTC()
	if len(posts) > 0 {
		buildDate = posts[0].LastModified().UTC()
	}
	var feeds []RSSFeed

	feeds = append(feeds, RSSFeed{
		RelativePath: cfg.RSS.MainFeed,
		Content: generateFeed(cfg, feedMeta{
			title:       cfg.Site.Name,
			link:        cfg.Site.BaseURL + "/",
			description: cfg.Site.Description,
			buildDate:   buildDate,
		}, posts),
	})

	if cfg.RSS.CategoryFeeds {
		for _, entry := range categories.Entries {
			feeds = append(feeds, RSSFeed{
				RelativePath: fmt.Sprintf("%s/%s/feed.xml", categories.Name, entry.Slug),
				Content: generateFeed(cfg, feedMeta{
					title:       fmt.Sprintf("%s: %s", cfg.Site.Name, entry.Name),
					link:        cfg.Site.BaseURL + entry.URL(categories.Name),
					description: fmt.Sprintf("Posts about %s", entry.Name),
					buildDate:   buildDate,
				}, entry.Posts),
			})
		}
	}

	return feeds
}

type feedMeta struct {
	title       string
	link        string
	description string
	buildDate   time.Time
}

func generateFeed(cfg *config.Config, meta feedMeta, posts []*content.Post) string {
	channel := rssChannel{
		Title:         meta.title,
		Link:          meta.link,
		Description:   meta.description,
		Language:      cfg.Site.Language,
		Copyright:     cfg.Site.Copyright,
		LastBuildDate: meta.buildDate.Format(time.RFC1123Z),
	}

	if cfg.RSS.MaxItems > 0 && len(posts) > cfg.RSS.MaxItems {
		posts = posts[:cfg.RSS.MaxItems]
	}

	for _, p := range posts {
		link := cfg.Site.BaseURL + p.URL()
		channel.Items = append(channel.Items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Summary,
			Category:    p.Category.Label(),
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			PubDate:     p.Date.UTC().Format(time.RFC1123Z),
		})
	}

	doc := rssDoc{
		Version: "2.0",
		Channel: channel,
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ""
	}
	return xml.Header + string(data)
}
