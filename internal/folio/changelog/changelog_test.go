package changelog

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/internal/folio/markdown"
)

const sample = `# Changelog

All notable changes to this site.

## [Unreleased]
- Draft series on macros

## [1.1.0] - 2026-02-10
### Added
- Post: Structured concurrency in practice
* Swift Testing category

### Fixed
- Footer link to support page

## 1.0.0 - 2025-11-01
### Added
- Initial site
`

func TestParse(t *testing.T) {
	releases, err := Parse([]byte(sample), markdown.New())
	require.NoError(t, err)
	require.Len(t, releases, 3)

	assert.Equal(t, "Unreleased", releases[0].Version)
	assert.True(t, releases[0].Date.IsZero())
	assert.Equal(t, []Group{{Name: "Changed", Items: []template.HTML{"Draft series on macros"}}}, releases[0].Groups)

	assert.Equal(t, "1.1.0", releases[1].Version)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), releases[1].Date)
	assert.Equal(t, []Group{
		{Name: "Added", Items: []template.HTML{"Post: Structured concurrency in practice", "Swift Testing category"}},
		{Name: "Fixed", Items: []template.HTML{"Footer link to support page"}},
	}, releases[1].Groups)

	assert.Equal(t, "1.0.0", releases[2].Version)
}

func TestParse_InlineMarkdownInItems(t *testing.T) {
	src := "## [1.2.0] - 2026-03-01\n" +
		"### Added\n" +
		"- Feed at [/feed.xml](https://example.dev/feed.xml)\n" +
		"- Renamed `SiteConfig` to **Config**\n" +
		"- <script>alert(1)</script>Sanitized\n"

	releases, err := Parse([]byte(src), markdown.New())
	require.NoError(t, err)
	require.Len(t, releases, 1)
	require.Len(t, releases[0].Groups, 1)
	items := releases[0].Groups[0].Items
	require.Len(t, items, 3)

	assert.Contains(t, string(items[0]), `href="https://example.dev/feed.xml"`)
	assert.Contains(t, string(items[0]), `>/feed.xml</a>`)
	assert.NotContains(t, string(items[0]), "](")
	assert.Equal(t, template.HTML("Renamed <code>SiteConfig</code> to <strong>Config</strong>"), items[1])
	assert.NotContains(t, string(items[2]), "<script")
	assert.Contains(t, string(items[2]), "Sanitized")
}

func TestParse_LinkedVersionHeadings(t *testing.T) {
	src := "## [1.1.0] - 2026-02-10\n- Thing\n\n" +
		"[1.1.0]: https://example.dev/compare/1.0.0...1.1.0\n"

	releases, err := Parse([]byte(src), markdown.New())
	require.NoError(t, err)
	require.Len(t, releases, 1)
	assert.Equal(t, "1.1.0", releases[0].Version)
	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), releases[0].Date)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("## [1.0.0] - yesterday\n"), markdown.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = Parse([]byte("# Changelog\n\n## [1.0.0] - 2026-13-45\n"), markdown.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_MissingFile(t *testing.T) {
	releases, err := Load(filepath.Join(t.TempDir(), "CHANGELOG.md"), markdown.New())
	require.NoError(t, err)
	assert.Empty(t, releases)

	releases, err = Load("", markdown.New())
	require.NoError(t, err)
	assert.Empty(t, releases)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	releases, err := Load(path, markdown.New())
	require.NoError(t, err)
	assert.Len(t, releases, 3)
}
