// Package images maps free-text recipe names to representative BBQ photos.
package images

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Category is one of the fixed photo categories.
type Category string

const (
	Beef       Category = "beef"
	Pork       Category = "pork"
	Chicken    Category = "chicken"
	Lamb       Category = "lamb"
	Seafood    Category = "seafood"
	Vegetables Category = "vegetables"
	Sausages   Category = "sausages"
	Skewers    Category = "skewers"
	Burgers    Category = "burgers"
	Other      Category = "other"
)

// Categories lists every category in catalog order.
var Categories = []Category{Beef, Pork, Chicken, Lamb, Seafood, Vegetables, Sausages, Skewers, Burgers, Other}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

//go:embed catalog.toml
var embeddedCatalog []byte

type catalogFile struct {
	Default    string                  `toml:"default"`
	Categories map[string]categoryFile `toml:"categories"`
}

type categoryFile struct {
	Keywords []string `toml:"keywords"`
	Images   []string `toml:"images"`
}

type keyword struct {
	text     string
	runes    int
	category Category
}

// Catalog holds the image lists and the keyword table. It is immutable after
// Parse and safe for concurrent use.
type Catalog struct {
	defaultImage string
	images       map[Category][]string
	// keywords are ordered by match priority: longest first, then lexicographic.
	keywords []keyword
}

// Parse decodes a TOML catalog. Every category must have at least one image
// and a keyword may belong to only one category.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode image catalog: %w", err)
	}
	if strings.TrimSpace(f.Default) == "" {
		return nil, fmt.Errorf("image catalog has no default image")
	}

	c := &Catalog{
		defaultImage: f.Default,
		images:       make(map[Category][]string, len(Categories)),
	}
	owner := make(map[string]Category)
	for name, cf := range f.Categories {
		cat := Category(name)
		if !cat.Valid() {
			return nil, fmt.Errorf("unknown image category %q", name)
		}
		if len(cf.Images) == 0 {
			return nil, fmt.Errorf("image category %q has no images", name)
		}
		c.images[cat] = append([]string(nil), cf.Images...)
		for _, kw := range cf.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if prev, ok := owner[kw]; ok && prev != cat {
				return nil, fmt.Errorf("keyword %q is mapped to both %s and %s", kw, prev, cat)
			}
			if _, ok := owner[kw]; ok {
				continue
			}
			owner[kw] = cat
			c.keywords = append(c.keywords, keyword{text: kw, runes: utf8.RuneCountInString(kw), category: cat})
		}
	}
	for _, cat := range Categories {
		if len(c.images[cat]) == 0 {
			return nil, fmt.Errorf("image category %q is missing", cat)
		}
	}

	sort.Slice(c.keywords, func(i, j int) bool {
		a, b := c.keywords[i], c.keywords[j]
		if a.runes != b.runes {
			return a.runes > b.runes
		}
		return a.text < b.text
	})
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultImage is the sentinel returned when nothing matches.
func (c *Catalog) DefaultImage() string { return c.defaultImage }

// ImagesByCategory returns a copy of the image list, or nil for an unknown category.
func (c *Catalog) ImagesByCategory(cat Category) []string {
	imgs, ok := c.images[cat]
	if !ok {
		return nil
	}
	return append([]string(nil), imgs...)
}

// Keywords returns the keywords registered for cat in match priority order.
func (c *Catalog) Keywords(cat Category) []string {
	var out []string
	for _, kw := range c.keywords {
		if kw.category == cat {
			out = append(out, kw.text)
		}
	}
	return out
}

// ImageCount is the total number of images across all categories.
func (c *Catalog) ImageCount() int {
	n := 0
	for _, imgs := range c.images {
		n += len(imgs)
	}
	return n
}

// Encode renders the catalog back to TOML.
func (c *Catalog) Encode() ([]byte, error) {
	f := catalogFile{Default: c.defaultImage, Categories: make(map[string]categoryFile, len(c.images))}
	for _, cat := range Categories {
		f.Categories[string(cat)] = categoryFile{Keywords: c.Keywords(cat), Images: c.ImagesByCategory(cat)}
	}
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(f); err != nil {
		return nil, fmt.Errorf("failed to encode image catalog: %w", err)
	}
	return []byte(sb.String()), nil
}
