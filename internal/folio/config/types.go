package config

import (
	"github.com/folio-blog/folio/internal/folio/logger"
	"github.com/folio-blog/folio/internal/folio/nav"
)

// Config is the top-level folio configuration loaded from YAML.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Paths      PathsConfig      `yaml:"paths"`
	Navigation NavigationConfig `yaml:"navigation"`
	Pagination PaginationConfig `yaml:"pagination"`
	Sitemap    SitemapConfig    `yaml:"sitemap"`
	RSS        RSSConfig        `yaml:"rss"`
	Robots     RobotsConfig     `yaml:"robots"`
	LlmsTxt    LlmsTxtConfig    `yaml:"llms_txt"`
	Output     OutputConfig     `yaml:"output"`
	Log        logger.Log       `yaml:"log"`

	// ConfigDir is the directory containing the config file (set at load time).
	ConfigDir string `yaml:"-"`
}

type SiteConfig struct {
	Name        string `yaml:"name" validate:"required"`
	BaseURL     string `yaml:"base_url" validate:"required,url"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	Author      string `yaml:"author"`
	AuthorURL   string `yaml:"author_url" validate:"omitempty,url"`
	Copyright   string `yaml:"copyright"`
	CNAME       string `yaml:"cname" validate:"omitempty,hostname"`
}

type PathsConfig struct {
	Content   string `yaml:"content" validate:"required"`
	Templates string `yaml:"templates"`
	Output    string `yaml:"output"`
	Static    string `yaml:"static"`
	Changelog string `yaml:"changelog"`
}

// NavigationConfig lists the pages linked from the navigation bar and the
// footer, in render order.
type NavigationConfig struct {
	Main   []nav.Page `yaml:"main" validate:"dive"`
	Footer []nav.Page `yaml:"footer" validate:"dive"`
}

type PaginationConfig struct {
	PostsPerPage int `yaml:"posts_per_page" validate:"gte=1"`
}

type SitemapConfig struct {
	MaxURLsPerFile int               `yaml:"max_urls_per_file"`
	Priorities     map[string]string `yaml:"priorities"`
	ChangeFreqs    map[string]string `yaml:"change_freqs"`
}

type RSSConfig struct {
	Enabled       bool   `yaml:"enabled"`
	MainFeed      string `yaml:"main_feed"`
	CategoryFeeds bool   `yaml:"category_feeds"`
	MaxItems      int    `yaml:"max_items"`
}

type RobotsConfig struct {
	AllowAll  bool     `yaml:"allow_all"`
	ExtraBots []string `yaml:"extra_bots"`
}

type LlmsTxtConfig struct {
	Enabled bool   `yaml:"enabled"`
	Tagline string `yaml:"tagline"`
}

type OutputConfig struct {
	CleanBuild    bool `yaml:"clean_build"`
	ShareImages   bool `yaml:"share_images"`
	IncludeDrafts bool `yaml:"include_drafts"`
}

// Menus returns the navigation lists and copyright line rendered on every page.
func (c *Config) Menus() nav.Menus {
	return nav.Menus{
		Main:      c.Navigation.Main,
		Links:     c.Navigation.Footer,
		Copyright: c.Site.Copyright,
	}
}
