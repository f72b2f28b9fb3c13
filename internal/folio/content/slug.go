package content

import (
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// ToSlug lowercases s and collapses every run of non-alphanumerics into a
// single hyphen.
func ToSlug(s string) string {
	s = strings.ToLower(s)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugFromFile derives a slug from a content file name, dropping the
// extension and an optional "YYYY-MM-DD-" date prefix.
func SlugFromFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if len(base) > 11 && datePrefix.MatchString(base[:11]) {
		base = base[11:]
	}
	return ToSlug(base)
}

var datePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-$`)

// TitleFromSlug turns "actors-in-practice" into "Actors In Practice".
func TitleFromSlug(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(s)
}
