package categorizer

import (
	"context"
	"errors"
	"sync"
	"testing"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo keeps categories in insertion order and enforces (name, parent)
// uniqueness the way the ledger does.
type memoryRepo struct {
	mu         sync.Mutex
	categories []models.Category
	listErr    error
	addErr     error
	listCalls  int
}

func (r *memoryRepo) ListCategories(context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]models.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *memoryRepo) AddCategory(_ context.Context, name string, parentID *int64, keywords []string) (models.InsertResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return models.InsertResult{}, r.addErr
	}
	for _, c := range r.categories {
		if c.Name == name && sameParent(c.ParentID, parentID) {
			return models.InsertResult{ID: c.ID, Outcome: models.Duplicate}, nil
		}
	}
	id := int64(len(r.categories) + 1)
	r.categories = append(r.categories, models.Category{ID: id, Name: name, ParentID: parentID, Keywords: keywords})
	return models.InsertResult{ID: id, Outcome: models.Inserted}, nil
}

func sameParent(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func newTestCategorizer(t *testing.T, repo *memoryRepo) *Categorizer {
	t.Helper()
	c, err := NewCategorizer(context.Background(), repo, logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})

	idA, err := c.AddCategoryWithKeywords(ctx, "A", []string{"shop"}, "")
	require.NoError(t, err)
	_, err = c.AddCategoryWithKeywords(ctx, "B", []string{"shop", "mart"}, "")
	require.NoError(t, err)

	match, ok := c.Categorize("mart shop")
	require.True(t, ok)
	assert.Equal(t, idA, match.Category.ID)
	assert.Equal(t, "A", match.Category.Name)
	assert.Equal(t, "shop", match.Keyword)
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})
	_, err := c.AddCategoryWithKeywords(ctx, "Pharmacy", []string{"Shoppers Drug Mart"}, "Health")
	require.NoError(t, err)

	match, ok := c.Categorize("SHOPPERS DRUG MART #13 TORONTO ON")
	require.True(t, ok)
	assert.Equal(t, "Pharmacy", match.Category.Name)
}

func TestCategorize_NoMatch(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})
	_, err := c.AddCategoryWithKeywords(ctx, "Coffee", []string{"coffee"}, "Food")
	require.NoError(t, err)

	_, ok := c.Categorize("HYDRO BILL")
	assert.False(t, ok)
	_, ok = c.Categorize("")
	assert.False(t, ok)
	assert.Nil(t, c.CategoryID("HYDRO BILL"))
}

func TestCategorize_SkipsCategoriesWithoutKeywords(t *testing.T) {
	repo := &memoryRepo{categories: []models.Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Blank", Keywords: []string{""}},
		{ID: 3, Name: "Groceries", ParentID: int64Ptr(1), Keywords: []string{"metro"}},
	}}
	c := newTestCategorizer(t, repo)

	id := c.CategoryID("METRO 123")
	require.NotNil(t, id)
	assert.Equal(t, int64(3), *id)
}

func TestAddCategoryWithKeywords_CreatesParentOnce(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	c := newTestCategorizer(t, repo)

	groceries, err := c.AddCategoryWithKeywords(ctx, "Groceries", []string{" Metro "}, "Food")
	require.NoError(t, err)
	dining, err := c.AddCategoryWithKeywords(ctx, "Dining", []string{"pizza"}, "Food")
	require.NoError(t, err)
	again, err := c.AddCategoryWithKeywords(ctx, "Groceries", []string{"metro"}, "Food")
	require.NoError(t, err)

	assert.Equal(t, groceries, again)
	assert.NotEqual(t, groceries, dining)

	cats := c.Categories()
	require.Len(t, cats, 3)
	assert.Equal(t, "Food", cats[0].Name)
	assert.True(t, cats[0].IsTopLevel())
	require.NotNil(t, cats[1].ParentID)
	assert.Equal(t, cats[0].ID, *cats[1].ParentID)
	assert.Equal(t, []string{"metro"}, cats[1].Keywords)
}

func TestAddCategoryWithKeywords_VisibleImmediately(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})

	_, ok := c.Categorize("NETFLIX.COM")
	assert.False(t, ok)

	_, err := c.AddCategoryWithKeywords(ctx, "Streaming", []string{"netflix"}, "Entertainment")
	require.NoError(t, err)

	match, ok := c.Categorize("NETFLIX.COM")
	require.True(t, ok)
	assert.Equal(t, "Streaming", match.Category.Name)
}

func TestAddCategoryWithKeywords_Errors(t *testing.T) {
	ctx := context.Background()

	c := newTestCategorizer(t, &memoryRepo{})
	_, err := c.AddCategoryWithKeywords(ctx, "  ", nil, "")
	var catErr *parsererror.CategorizationError
	assert.ErrorAs(t, err, &catErr)

	storageErr := parsererror.NewStorageError("add category", errors.New("disk full"))
	failing := newTestCategorizer(t, &memoryRepo{})
	failing.repo.(*memoryRepo).addErr = storageErr
	_, err = failing.AddCategoryWithKeywords(ctx, "Gas", []string{"shell"}, "Transportation")
	require.Error(t, err)
	assert.True(t, parsererror.IsStorageError(err))
}

func TestNewCategorizer_LoadError(t *testing.T) {
	_, err := NewCategorizer(context.Background(), &memoryRepo{listErr: errors.New("no table")}, nil)
	assert.Error(t, err)
}

func TestInitializeDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{}
	c := newTestCategorizer(t, repo)

	seeds := []models.CategorySeed{
		{Name: "Food", Children: []models.CategorySeedChild{
			{Name: "Groceries", Keywords: []string{"metro"}},
			{Name: "Coffee", Keywords: []string{"coffee"}},
		}},
		{Name: "Transportation", Children: []models.CategorySeedChild{
			{Name: "Gas", Keywords: []string{"shell"}},
		}},
		{Name: "Misc"},
	}

	created, err := c.InitializeDefaults(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	created, err = c.InitializeDefaults(ctx, seeds)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Len(t, repo.categories, 6)

	match, ok := c.Categorize("SHELL C01234")
	require.True(t, ok)
	assert.Equal(t, "Gas", match.Category.Name)
}

func TestTree(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})

	_, err := c.AddCategoryWithKeywords(ctx, "Groceries", []string{"metro"}, "Food")
	require.NoError(t, err)
	_, err = c.AddCategoryWithKeywords(ctx, "Gas", []string{"shell"}, "Transportation")
	require.NoError(t, err)
	_, err = c.AddCategoryWithKeywords(ctx, "Dining", []string{"pizza"}, "Food")
	require.NoError(t, err)

	assert.Equal(t, []models.CategoryNode{
		{Name: "Food", Children: []string{"Groceries", "Dining"}},
		{Name: "Transportation", Children: []string{"Gas"}},
	}, c.Tree())
}

func TestCategorize_ConcurrentReads(t *testing.T) {
	ctx := context.Background()
	c := newTestCategorizer(t, &memoryRepo{})
	_, err := c.AddCategoryWithKeywords(ctx, "Coffee", []string{"coffee"}, "Food")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := c.Categorize("SECOND CUP COFFEE")
			assert.True(t, ok)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, c.Reload(ctx))
	}()
	wg.Wait()
}

func int64Ptr(v int64) *int64 {
	return &v
}
