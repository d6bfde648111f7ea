package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/recipebox/internal/recipe"
)

const selectRecipe = `
	SELECT id, title, category, ingredients, instructions, image, date_added
	FROM recipes
`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// List returns every recipe in insertion order.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) List(ctx context.Context) ([]recipe.Recipe, error) {
	return s.queryRecipes(ctx, selectRecipe+` ORDER BY seq ASC`)
}

// ListByCategory returns the recipes whose category equals category exactly
// (byte-wise, case-sensitive), in insertion order.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]recipe.Recipe, error) {
	return s.queryRecipes(ctx, selectRecipe+`
		WHERE category = ? COLLATE BINARY
		ORDER BY seq ASC
	`, category)
}

// Get retrieves a single recipe by id.
// Returns ErrNotFound if no recipe has that id.
func (s *Store) Get(ctx context.Context, id int64) (recipe.Recipe, error) {
	row := s.db.QueryRowContext(ctx, selectRecipe+` WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.Recipe{}, ErrNotFound
	}
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return r, nil
}

// NextID returns one more than the largest stored id, or 1 if empty.
//
// The value is only a preview: use Create to assign and insert atomically.
func (s *Store) NextID(ctx context.Context) (int64, error) {
	id, err := nextID(ctx, s.db)
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return id, nil
}

// Count returns the number of stored recipes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	return n, nil
}

// Categories returns the distinct categories currently stored, sorted
// ascending by byte-wise comparison (Go's ordinary string order).
//
// Recomputed on every call; returns an empty slice for an empty store.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT category
		FROM recipes
		ORDER BY category COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func nextID(ctx context.Context, db queryer) (int64, error) {
	var id int64
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM recipes`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("query max id: %w", err)
	}
	return id, nil
}

func (s *Store) queryRecipes(ctx context.Context, query string, args ...any) ([]recipe.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	recipes := []recipe.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	return recipes, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(sc scanner) (recipe.Recipe, error) {
	var (
		r           recipe.Recipe
		ingredients string
		image       sql.NullString
	)

	err := sc.Scan(&r.ID, &r.Title, &r.Category, &ingredients, &r.Instructions, &image, &r.DateAdded)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return recipe.Recipe{}, err
		}
		return recipe.Recipe{}, fmt.Errorf("scan recipe: %w", err)
	}

	r.Ingredients, err = unmarshalIngredients(ingredients)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("recipe %d: %w", r.ID, err)
	}
	r.Image = imageFromNull(image)

	return r, nil
}
