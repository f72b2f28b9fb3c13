package render

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/folio-blog/folio/internal/folio/category"
	"github.com/folio-blog/folio/internal/folio/content"
)

const wordsPerMinute = 200

// BuildFuncMap creates the template FuncMap. Every helper here is used by
// the embedded theme.
func BuildFuncMap() template.FuncMap {
	return template.FuncMap{
		// Numbers
		"formatNumber": formatNumber,

		// Dates
		"formatDate": formatDate,
		"isoDate":    func(t time.Time) string { return t.Format("2006-01-02") },
		"rfc3339":    func(t time.Time) string { return t.Format(time.RFC3339) },

		// Posts
		"categoryLabel": func(c category.Category) string { return c.Label() },
		"readingTime":   readingTime,
		"tagURL":        func(tag string) string { return "/tags/" + content.ToSlug(tag) + "/" },
	}
}

// formatNumber adds thousands separators to a number.
func formatNumber(n interface{}) string {
	var num int64
	switch v := n.(type) {
	case int:
		num = int64(v)
	case int64:
		num = v
	case float64:
		num = int64(v)
	default:
		return fmt.Sprintf("%v", n)
	}

	s := strconv.FormatInt(num, 10)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// formatDate renders "January 2, 2006"; the zero time renders empty.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// readingTime estimates minutes to read a markdown body, at least 1.
func readingTime(body string) int {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// truncate limits s to n runes, the last being an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n < 1 {
		return ""
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
