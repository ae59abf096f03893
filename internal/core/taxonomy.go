package core

// Taxonomy is the fixed set of expense category labels and their display
// colors, supplied to the presentation layer. The derivation logic treats
// categories as opaque strings and never validates against the taxonomy.
type Taxonomy struct {
	categories []string
	colors     map[string]string
}

const fallbackColor = "#6b7280"

// DefaultTaxonomy returns the built-in category set.
func DefaultTaxonomy() Taxonomy {
	categories := []string{
		"Food & Dining",
		"Transportation",
		"Shopping",
		"Bills & Utilities",
		"Healthcare",
		"Entertainment",
		"Education",
		"Travel",
		"Other",
	}
	colors := map[string]string{
		"Food & Dining":     "#ef4444",
		"Transportation":    "#f97316",
		"Shopping":          "#eab308",
		"Bills & Utilities": "#22c55e",
		"Healthcare":        "#06b6d4",
		"Entertainment":     "#8b5cf6",
		"Education":         "#ec4899",
		"Travel":            "#10b981",
		"Other":             fallbackColor,
	}
	return NewTaxonomy(categories, colors)
}

// NewTaxonomy builds a taxonomy from a category list and color mapping.
// Both inputs are copied.
func NewTaxonomy(categories []string, colors map[string]string) Taxonomy {
	t := Taxonomy{
		categories: append([]string(nil), categories...),
		colors:     make(map[string]string, len(colors)),
	}
	for k, v := range colors {
		t.colors[k] = v
	}
	return t
}

// Categories returns the category labels in declaration order.
func (t Taxonomy) Categories() []string {
	return append([]string(nil), t.categories...)
}

// Color returns the display color for a category, or a neutral gray for
// categories outside the taxonomy.
func (t Taxonomy) Color(category string) string {
	if c, ok := t.colors[category]; ok {
		return c
	}
	return fallbackColor
}

// Contains reports whether the category is part of the taxonomy.
func (t Taxonomy) Contains(category string) bool {
	for _, c := range t.categories {
		if c == category {
			return true
		}
	}
	return false
}
