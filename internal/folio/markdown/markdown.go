// Package markdown converts post and page bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Converter renders markdown with GitHub-flavoured extensions and strips
// anything the sanitizer policy does not allow. It is safe for concurrent use.
type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Converter.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
		),
	)

	policy := bluemonday.UGCPolicy()
	// Fenced code blocks carry "language-swift" style classes.
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+-]+$`)).OnElements("code")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Converter{md: md, policy: policy}
}

// Convert renders src to sanitized HTML.
func (c *Converter) Convert(src []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return template.HTML(c.policy.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized
}

// Parse returns the document tree of src for callers that need more than
// whole-document HTML.
func (c *Converter) Parse(src []byte) ast.Node {
	return c.md.Parser().Parse(text.NewReader(src))
}

// RenderNode renders one node of a tree returned by Parse, sanitized the
// same way as Convert. src must be the source the tree was parsed from.
func (c *Converter) RenderNode(src []byte, n ast.Node) (template.HTML, error) {
	var buf bytes.Buffer
	if err := c.md.Renderer().Render(&buf, src, n); err != nil {
		return "", err
	}
	out := bytes.TrimSpace(c.policy.SanitizeBytes(buf.Bytes()))
	return template.HTML(out), nil //nolint:gosec // sanitized
}

var (
	fence     = regexp.MustCompile("(?s)```.*?```")
	markup    = regexp.MustCompile(`[*_#>` + "`" + `\[\]]|\(https?://[^)]*\)`)
	blankRuns = regexp.MustCompile(`\s+`)
)

// Summary returns a plain-text excerpt of a markdown body of at most max
// runes, cut at a word boundary. Code blocks are skipped.
func Summary(body string, max int) string {
	s := fence.ReplaceAllString(body, " ")
	s = markup.ReplaceAllString(s, "")
	s = strings.TrimSpace(blankRuns.ReplaceAllString(s, " "))
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	r := []rune(s)[:max]
	cut := string(r)
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
