// Package categorizer assigns categories to transactions by keyword matching
// against an ordered, cached snapshot of the category hierarchy.
package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
)

var errEmptyName = errors.New("category name is empty")

// Categorizer owns a snapshot of all categories in load order. Every write
// made through it reloads the snapshot before returning.
type Categorizer struct {
	repo   CategoryRepository
	logger logging.Logger

	mu       sync.RWMutex
	snapshot []models.Category
}

// NewCategorizer creates a Categorizer and loads the initial snapshot.
func NewCategorizer(ctx context.Context, repo CategoryRepository, logger logging.Logger) (*Categorizer, error) {
	c := &Categorizer{
		repo:   repo,
		logger: logging.OrDefault(logger),
	}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the snapshot with the repository's current categories.
func (c *Categorizer) Reload(ctx context.Context) error {
	categories, err := c.repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	c.mu.Lock()
	c.snapshot = categories
	c.mu.Unlock()

	c.logger.Debug("Category snapshot loaded", logging.F(logging.FieldCount, len(categories)))
	return nil
}

// Categories returns a copy of the snapshot in match order.
func (c *Categorizer) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Categorize returns the first category, in load order, with a keyword that
// occurs case-insensitively in description. No match is not an error.
func (c *Categorizer) Categorize(description string) (Match, bool) {
	c.mu.RLock()
	match, ok := matchKeywords(c.snapshot, description)
	c.mu.RUnlock()

	if ok {
		c.logger.Debug("Transaction categorized using keyword matching",
			logging.F(logging.FieldKeyword, match.Keyword),
			logging.F(logging.FieldCategory, match.Category.Name))
	}
	return match, ok
}

// CategoryID is Categorize reduced to the optional category identity.
func (c *Categorizer) CategoryID(description string) *int64 {
	match, ok := c.Categorize(description)
	if !ok {
		return nil
	}
	id := match.Category.ID
	return &id
}

// AddCategoryWithKeywords creates name with keywords. When parentName is set
// the child is placed under the top-level category of that name, which is
// created first if missing. The snapshot is reloaded before returning.
func (c *Categorizer) AddCategoryWithKeywords(ctx context.Context, name string, keywords []string, parentName string) (int64, error) {
	id, err := c.addCategory(ctx, name, keywords, parentName)
	if err != nil {
		return 0, err
	}
	if err := c.Reload(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// InitializeDefaults adds every seed parent and child. Existing categories
// are kept, so it can be re-run. It returns the number of new categories.
func (c *Categorizer) InitializeDefaults(ctx context.Context, seeds []models.CategorySeed) (int, error) {
	before := len(c.Categories())

	for _, seed := range seeds {
		if len(seed.Children) == 0 {
			if _, err := c.addCategory(ctx, seed.Name, nil, ""); err != nil {
				return 0, err
			}
			continue
		}
		for _, child := range seed.Children {
			if _, err := c.addCategory(ctx, child.Name, child.Keywords, seed.Name); err != nil {
				return 0, err
			}
		}
	}

	if err := c.Reload(ctx); err != nil {
		return 0, err
	}
	created := len(c.Categories()) - before
	c.logger.Info("Default categories initialized", logging.F(logging.FieldCount, created))
	return created, nil
}

func (c *Categorizer) addCategory(ctx context.Context, name string, keywords []string, parentName string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &parsererror.CategorizationError{Category: name, Err: errEmptyName}
	}

	var parentID *int64
	if parentName = strings.TrimSpace(parentName); parentName != "" {
		id, err := c.ensureParent(ctx, parentName)
		if err != nil {
			return 0, err
		}
		parentID = &id
	}

	res, err := c.repo.AddCategory(ctx, name, parentID, normalizeKeywords(keywords))
	if err != nil {
		return 0, &parsererror.CategorizationError{Category: name, Err: err}
	}

	c.logger.Debug("Category added",
		logging.F(logging.FieldCategory, name),
		logging.F(logging.FieldCategoryID, res.ID),
		logging.F(logging.FieldStatus, res.Outcome.String()))
	return res.ID, nil
}

// ensureParent finds a top-level category by name in the snapshot, or
// creates it. The repository's uniqueness keeps repeated calls idempotent.
func (c *Categorizer) ensureParent(ctx context.Context, name string) (int64, error) {
	c.mu.RLock()
	for _, cat := range c.snapshot {
		if cat.IsTopLevel() && cat.Name == name {
			c.mu.RUnlock()
			return cat.ID, nil
		}
	}
	c.mu.RUnlock()

	res, err := c.repo.AddCategory(ctx, name, nil, nil)
	if err != nil {
		return 0, &parsererror.CategorizationError{Category: name, Err: err}
	}
	return res.ID, nil
}

// Tree groups the snapshot into parents, in load order, each with its
// children in load order.
func (c *Categorizer) Tree() []models.CategoryNode {
	categories := c.Categories()

	index := make(map[int64]int)
	tree := make([]models.CategoryNode, 0)
	for _, cat := range categories {
		if cat.IsTopLevel() {
			index[cat.ID] = len(tree)
			tree = append(tree, models.CategoryNode{Name: cat.Name, Children: []string{}})
		}
	}
	for _, cat := range categories {
		if cat.IsTopLevel() {
			continue
		}
		if i, ok := index[*cat.ParentID]; ok {
			tree[i].Children = append(tree[i].Children, cat.Name)
		}
	}
	return tree
}

func normalizeKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}
