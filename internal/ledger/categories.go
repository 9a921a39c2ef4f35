package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
)

// AddCategory creates a category, or returns the identity of the existing
// category with the same name and parent. Keywords of an existing category
// are not changed.
func (l *Ledger) AddCategory(ctx context.Context, name string, parentID *int64, keywords []string) (models.InsertResult, error) {
	name = strings.TrimSpace(name)

	var encoded sql.NullString
	if len(keywords) > 0 {
		data, err := json.Marshal(keywords)
		if err != nil {
			return models.InsertResult{}, parsererror.NewStorageError("add category", err)
		}
		encoded = sql.NullString{String: string(data), Valid: true}
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO categories (name, parent_id, keywords)
		VALUES (?, ?, ?)
		ON CONFLICT DO NOTHING`,
		name, nullInt64(parentID), encoded)
	if err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("add category", err)
	}

	outcome, err := insertOutcome(res, "add category")
	if err != nil {
		return models.InsertResult{}, err
	}
	if outcome == models.Inserted {
		id, err := res.LastInsertId()
		if err != nil {
			return models.InsertResult{}, parsererror.NewStorageError("add category", err)
		}
		return models.InsertResult{ID: id, Outcome: models.Inserted}, nil
	}

	var id int64
	if err := l.db.QueryRowContext(ctx,
		`SELECT id FROM categories WHERE name = ? AND parent_id IS ?`,
		name, nullInt64(parentID)).Scan(&id); err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("add category", err)
	}
	return models.InsertResult{ID: id, Outcome: models.Duplicate}, nil
}

// SetCategoryKeywords replaces the keyword list of a category. It reports
// whether the category exists.
func (l *Ledger) SetCategoryKeywords(ctx context.Context, id int64, keywords []string) (bool, error) {
	var encoded sql.NullString
	if len(keywords) > 0 {
		data, err := json.Marshal(keywords)
		if err != nil {
			return false, parsererror.NewStorageError("set category keywords", err)
		}
		encoded = sql.NullString{String: string(data), Valid: true}
	}

	res, err := l.db.ExecContext(ctx, `UPDATE categories SET keywords = ? WHERE id = ?`, encoded, id)
	if err != nil {
		return false, parsererror.NewStorageError("set category keywords", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, parsererror.NewStorageError("set category keywords", err)
	}
	return n > 0, nil
}

// ListCategories returns every category in insertion order.
func (l *Ledger) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, name, parent_id, keywords FROM categories ORDER BY id`)
	if err != nil {
		return nil, parsererror.NewStorageError("list categories", err)
	}
	defer func() { _ = rows.Close() }()

	categories := []models.Category{}
	for rows.Next() {
		var (
			c        models.Category
			parentID sql.NullInt64
			keywords sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &parentID, &keywords); err != nil {
			return nil, parsererror.NewStorageError("list categories", err)
		}
		c.ParentID = int64Ptr(parentID)
		if keywords.Valid && keywords.String != "" {
			if err := json.Unmarshal([]byte(keywords.String), &c.Keywords); err != nil {
				return nil, parsererror.NewStorageError("decode category keywords", err)
			}
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, parsererror.NewStorageError("list categories", err)
	}
	return categories, nil
}
