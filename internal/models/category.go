// Package models provides the data structures used throughout the application.
package models

// Category is a node in the two-level category hierarchy. ParentID is nil
// for top-level categories.
type Category struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	ParentID *int64   `json:"parent_id,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool {
	return c.ParentID == nil
}

// HasKeywords reports whether the category takes part in matching.
func (c Category) HasKeywords() bool {
	return len(c.Keywords) > 0
}

// CategoryNode is a parent category with its children, in load order.
type CategoryNode struct {
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

// CategorySeed represents a parent category and its keyword-bearing
// children in the seed YAML file.
type CategorySeed struct {
	Name     string              `yaml:"name"`
	Children []CategorySeedChild `yaml:"children"`
}

// CategorySeedChild is one child entry of a CategorySeed.
type CategorySeedChild struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig represents the structure of the categories YAML file
type CategoriesConfig struct {
	Categories []CategorySeed `yaml:"categories"`
}
