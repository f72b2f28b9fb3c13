// Package changelog parses the site's CHANGELOG.md into releases.
//
// The accepted format is the common "Keep a Changelog" layout:
//
//	## [1.2.0] - 2026-03-01
//	### Added
//	- New post series
//
// A release heading without a date (e.g. "## [Unreleased]") is kept with a
// zero Date. Version headings may link to a compare URL through a reference
// definition at the bottom of the file.
package changelog

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark/ast"

	"github.com/folio-blog/folio/internal/folio/markdown"
)

// Release is one "## [version]" section.
type Release struct {
	Version string
	Date    time.Time
	Groups  []Group
}

// Group is a "### Added" style subsection. Items are rendered inline
// markdown, so links and code spans survive.
type Group struct {
	Name  string
	Items []template.HTML
}

// defaultGroup holds items listed directly under a release heading.
const defaultGroup = "Changed"

var releaseHeading = regexp.MustCompile(`^\[?([^\]\s]+)\]?(?:\s+-\s+(\d{4}-\d{2}-\d{2}))?$`)

// Load reads and parses a changelog file. A missing file yields no releases.
func Load(path string, conv *markdown.Converter) ([]Release, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return Parse(data, conv)
}

// Parse parses changelog markdown. Anything before the first release
// heading, and anything in a release that is not a list, is ignored.
func Parse(src []byte, conv *markdown.Converter) ([]Release, error) {
	var (
		releases []Release
		cur      *Release
		group    *Group
	)

	closeGroup := func() {
		if cur != nil && group != nil && len(group.Items) > 0 {
			cur.Groups = append(cur.Groups, *group)
		}
		group = nil
	}
	closeRelease := func() {
		closeGroup()
		if cur != nil {
			releases = append(releases, *cur)
		}
		cur = nil
	}

	for n := conv.Parse(src).FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			switch {
			case node.Level == 2:
				closeRelease()
				r, err := parseRelease(node, src)
				if err != nil {
					return nil, err
				}
				cur = r
			case node.Level == 3 && cur != nil:
				closeGroup()
				group = &Group{Name: plainText(node, src)}
			}
		case *ast.List:
			if cur == nil {
				continue
			}
			if group == nil {
				group = &Group{Name: defaultGroup}
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				html, err := renderItem(conv, src, item)
				if err != nil {
					return nil, fmt.Errorf("release %s: %w", cur.Version, err)
				}
				if html != "" {
					group.Items = append(group.Items, html)
				}
			}
		}
	}
	closeRelease()

	return releases, nil
}

func parseRelease(h *ast.Heading, src []byte) (*Release, error) {
	title := plainText(h, src)
	m := releaseHeading.FindStringSubmatch(title)
	if m == nil {
		return nil, fmt.Errorf("line %d: malformed release heading %q", lineOf(h, src), title)
	}
	r := &Release{Version: m[1]}
	if m[2] != "" {
		d, err := time.Parse("2006-01-02", m[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineOf(h, src), err)
		}
		r.Date = d
	}
	return r, nil
}

// renderItem renders the contents of one list item without the <li>.
func renderItem(conv *markdown.Converter, src []byte, item ast.Node) (template.HTML, error) {
	var parts []string
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		html, err := conv.RenderNode(src, c)
		if err != nil {
			return "", err
		}
		if html != "" {
			parts = append(parts, string(html))
		}
	}
	return template.HTML(strings.Join(parts, "\n")), nil //nolint:gosec // sanitized by RenderNode
}

// plainText concatenates the text under n, dropping inline markup.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

func lineOf(n ast.Node, src []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return 0
	}
	return bytes.Count(src[:lines.At(0).Start], []byte("\n")) + 1
}
