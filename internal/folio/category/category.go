// Package category defines the closed set of post categories and their
// display labels.
package category

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnknownCategory is returned when a key is outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrMissingLabel is returned by Validate when a category has no label.
	ErrMissingLabel = errors.New("category has no display label")
)

// Category is a post category key.
type Category string

// Categories. Adding one here requires a matching case in Label.
const (
	SwiftConcurrency Category = "swift-concurrency"
	SwiftUI          Category = "swiftui"
	SwiftTesting     Category = "swift-testing"
	Xcode            Category = "xcode"
	Architecture     Category = "architecture"
	ServerSideSwift  Category = "server-side-swift"
)

var all = []Category{
	SwiftConcurrency,
	SwiftUI,
	SwiftTesting,
	Xcode,
	Architecture,
	ServerSideSwift,
}

// All returns every category in display order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Label returns the display name. It returns "" for keys outside the set,
// which Validate reports.
func (c Category) Label() string {
	switch c {
	case SwiftConcurrency:
		return "Swift Concurrency"
	case SwiftUI:
		return "SwiftUI"
	case SwiftTesting:
		return "Swift Testing"
	case Xcode:
		return "Xcode"
	case Architecture:
		return "App Architecture"
	case ServerSideSwift:
		return "Server-Side Swift"
	}
	return ""
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// Slug is the URL path segment for the category hub page.
func (c Category) Slug() string {
	return string(c)
}

// Valid reports whether c is in the closed set.
func (c Category) Valid() bool {
	for _, k := range all {
		if k == c {
			return true
		}
	}
	return false
}

// Parse resolves a key (case and surrounding space insensitive).
func Parse(key string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(key)))
	if !c.Valid() {
		return "", errors.Wrapf(ErrUnknownCategory, "%q", key)
	}
	return c, nil
}

// Validate checks that every category has a label. It is called at startup.
func Validate() error {
	for _, c := range all {
		if c.Label() == "" {
			return errors.Wrapf(ErrMissingLabel, "%q", string(c))
		}
	}
	return nil
}
