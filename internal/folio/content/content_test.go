package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToSlug(t *testing.T) {
	assert.Equal(t, "actors-in-practice", ToSlug("Actors in Practice!"))
	assert.Equal(t, "swiftui-state", ToSlug("  SwiftUI / State  "))
	assert.Equal(t, "", ToSlug("---"))
}

func TestSlugFromFile(t *testing.T) {
	assert.Equal(t, "sendable-closures", SlugFromFile("/content/posts/2025-03-14-sendable-closures.md"))
	assert.Equal(t, "about", SlugFromFile("about.md"))
	assert.Equal(t, "2025-notes", SlugFromFile("2025-notes.md"))
}

func TestTitleFromSlug(t *testing.T) {
	assert.Equal(t, "Actors In Practice", TitleFromSlug("actors-in-practice"))
}

func TestPostURLsAndNavPage(t *testing.T) {
	p := &Post{Slug: "actors", Title: "Actors"}
	assert.Equal(t, "/posts/actors/", p.URL())
	assert.Equal(t, "/posts/actors/", p.NavPage().Path)
	assert.Equal(t, "Actors", p.NavPage().Title)

	pg := &Page{Slug: "about", Title: "About"}
	assert.Equal(t, "/about/", pg.URL())
	assert.Equal(t, "/about/", pg.NavPage().Path)
}

func TestLastModified(t *testing.T) {
	d := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	u := d.AddDate(0, 1, 0)

	assert.Equal(t, d, (&Post{Date: d}).LastModified())
	assert.Equal(t, u, (&Post{Date: d, Updated: u}).LastModified())
}

func TestTagSlugs(t *testing.T) {
	p := &Post{Tags: []string{"Async/Await", "", "Task Groups"}}
	assert.Equal(t, []string{"async-await", "task-groups"}, p.TagSlugs())
}

func TestSortByDateAndAdjacent(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []*Post{
		{Slug: "b", Date: day(1)},
		{Slug: "c", Date: day(3)},
		{Slug: "a", Date: day(1)},
	}

	SortByDate(posts)

	assert.Equal(t, "c", posts[0].Slug)
	assert.Equal(t, "a", posts[1].Slug)
	assert.Equal(t, "b", posts[2].Slug)

	newer, older := Adjacent(posts, 0)
	assert.Nil(t, newer)
	assert.Equal(t, "a", older.Slug)

	newer, older = Adjacent(posts, 2)
	assert.Equal(t, "a", newer.Slug)
	assert.Nil(t, older)
}
