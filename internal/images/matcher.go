package images

import (
	"math/rand/v2"
	"strings"
)

// DetectCategory returns the category of the highest priority keyword found
// in query. Fallback heuristics are not applied.
func (c *Catalog) DetectCategory(query string) (Category, bool) {
	q := strings.ToLower(query)
	for _, kw := range c.keywords {
		if strings.Contains(q, kw.text) {
			return kw.category, true
		}
	}
	return "", false
}

// Match resolves query to a category. Without a keyword hit, generic grill
// words map to Other and generic meat words map to Beef.
func (c *Catalog) Match(query string) (Category, bool) {
	if query == "" {
		return "", false
	}
	if cat, ok := c.DetectCategory(query); ok {
		return cat, true
	}
	q := strings.ToLower(query)
	switch {
	case containsAny(q, "grill", "bbq", "barbecue"):
		return Other, true
	case containsAny(q, "meat", "fleisch"):
		return Beef, true
	}
	return "", false
}

// Resolve picks the image for query. index selects among the category's
// images so cards on one page can differ; negative values use |index|.
func (c *Catalog) Resolve(query string, index int) string {
	cat, ok := c.Match(query)
	if !ok {
		return c.defaultImage
	}
	imgs := c.images[cat]
	if len(imgs) == 0 {
		return c.defaultImage
	}
	i := index % len(imgs)
	if i < 0 {
		i = -i
	}
	return imgs[i]
}

// RecipeImage prefers the AI supplied imageQuery and falls back to the recipe
// name when the query only yields the default image.
func (c *Catalog) RecipeImage(name, imageQuery string, index int) string {
	if imageQuery != "" {
		if img := c.Resolve(imageQuery, index); img != c.defaultImage {
			return img
		}
	}
	return c.Resolve(name, index)
}

// RandomImage returns a random image from cat, or from a random category when
// cat is empty or unknown.
func (c *Catalog) RandomImage(cat Category) string {
	imgs, ok := c.images[cat]
	if !ok {
		imgs = c.images[Categories[rand.IntN(len(Categories))]]
	}
	return imgs[rand.IntN(len(imgs))]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ResolveImage resolves query against the embedded catalog.
func ResolveImage(query string, index int) string {
	return Default().Resolve(query, index)
}
