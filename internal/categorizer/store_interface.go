package categorizer

import (
	"context"

	"fjacquet/fintrack/internal/models"
)

// CategoryRepository is the persistence the categorizer reads through.
// ListCategories must return categories in insertion order.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	AddCategory(ctx context.Context, name string, parentID *int64, keywords []string) (models.InsertResult, error)
}
