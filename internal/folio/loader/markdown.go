package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog/log"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/content"
	"github.com/folio-blog/folio/internal/folio/markdown"
)

const (
	postsDir   = "posts"
	pagesDir   = "pages"
	summaryLen = 180
)

var dateFormats = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"}

// MarkdownLoader loads posts from <Dir>/posts and pages from <Dir>/pages.
// Files are markdown with optional YAML front matter.
type MarkdownLoader struct {
	Dir           string
	IncludeDrafts bool
	Converter     *markdown.Converter
}

type frontMatter struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	Updated     string   `yaml:"updated"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Slug        string   `yaml:"slug"`
}

// Load reads every post and page. Files that fail to parse are skipped
// with a warning; a missing content directory is an error.
func (l *MarkdownLoader) Load() (*Site, error) {
	if _, err := os.Stat(l.Dir); err != nil {
		return nil, fmt.Errorf("reading content dir %s: %w", l.Dir, err)
	}

	site := &Site{}

	postFiles, err := markdownFiles(filepath.Join(l.Dir, postsDir))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string)
	for _, path := range postFiles {
		p, err := l.parsePost(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping post")
			continue
		}
		if p.Draft && !l.IncludeDrafts {
			log.Debug().Str("slug", p.Slug).Msg("skipping draft")
			continue
		}
		if prev, ok := seen[p.Slug]; ok {
			log.Warn().Str("file", path).Str("other", prev).Str("slug", p.Slug).Msg("skipping post with duplicate slug")
			continue
		}
		seen[p.Slug] = path
		site.Posts = append(site.Posts, p)
	}
	content.SortByDate(site.Posts)

	pageFiles, err := markdownFiles(filepath.Join(l.Dir, pagesDir))
	if err != nil {
		return nil, err
	}
	seen = make(map[string]string)
	for _, path := range pageFiles {
		pg, err := l.parsePage(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping page")
			continue
		}
		if prev, ok := seen[pg.Slug]; ok {
			log.Warn().Str("file", path).Str("other", prev).Str("slug", pg.Slug).Msg("skipping page with duplicate slug")
			continue
		}
		seen[pg.Slug] = path
		site.Pages = append(site.Pages, pg)
	}
	sort.Slice(site.Pages, func(i, j int) bool { return site.Pages[i].Slug < site.Pages[j].Slug })

	return site, nil
}

// markdownFiles lists .md files in dir. A missing dir has no files.
func markdownFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func (l *MarkdownLoader) read(path string) (frontMatter, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return frontMatter{}, "", err
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return frontMatter{}, "", fmt.Errorf("parsing front matter: %w", err)
	}
	return fm, strings.TrimSpace(string(body)), nil
}

func (l *MarkdownLoader) parsePost(path string) (*content.Post, error) {
	fm, body, err := l.read(path)
	if err != nil {
		return nil, err
	}

	cat, err := category.Parse(fm.Category)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("date is required")
	}
	updated, err := parseDate(fm.Updated)
	if err != nil {
		return nil, fmt.Errorf("updated: %w", err)
	}

	slug := deriveSlug(path, fm.Slug)
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = content.TitleFromSlug(slug)
	}

	html, err := l.Converter.Convert([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	summary := strings.TrimSpace(fm.Summary)
	if summary == "" {
		summary = markdown.Summary(body, summaryLen)
	}

	return &content.Post{
		Slug:       slug,
		Title:      title,
		Summary:    summary,
		Date:       date,
		Updated:    updated,
		Category:   cat,
		Tags:       fm.Tags,
		Draft:      fm.Draft,
		SourceFile: path,
		Body:       body,
		HTML:       html,
	}, nil
}

func (l *MarkdownLoader) parsePage(path string) (*content.Page, error) {
	fm, body, err := l.read(path)
	if err != nil {
		return nil, err
	}

	slug := deriveSlug(path, fm.Slug)
	if reservedPageSlugs[slug] {
		return nil, fmt.Errorf("page slug %q is reserved", slug)
	}
	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = content.TitleFromSlug(slug)
	}

	html, err := l.Converter.Convert([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	desc := strings.TrimSpace(fm.Description)
	if desc == "" {
		desc = markdown.Summary(body, summaryLen)
	}

	return &content.Page{
		Slug:        slug,
		Title:       title,
		Description: desc,
		SourceFile:  path,
		Body:        body,
		HTML:        html,
	}, nil
}

// reservedPageSlugs are top-level paths the generator writes itself.
var reservedPageSlugs = map[string]bool{
	"index":      true,
	"posts":      true,
	"categories": true,
	"tags":       true,
	"changelog":  true,
}

func deriveSlug(path, override string) string {
	if s := content.ToSlug(override); s != "" {
		return s
	}
	return content.SlugFromFile(path)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q, use YYYY-MM-DD or RFC 3339", s)
}
