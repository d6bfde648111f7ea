package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/recipebox/internal/recipe"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Append adds a recipe to the end of the store.
//
// The caller must already have assigned a unique positive ID. No field
// validation is performed here. A taken id yields ErrDuplicateID.
func (s *Store) Append(ctx context.Context, r recipe.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := insertRecipe(ctx, s.db, r); err != nil {
		return fmt.Errorf("append recipe %d: %w", r.ID, err)
	}
	return nil
}

// Create assigns the next id to r and appends it in one transaction.
// Returns the stored recipe.
//
// Concurrent Create calls never observe the same maximum id: the writer
// mutex and the transaction cover both the read and the insert.
func (s *Store) Create(ctx context.Context, r recipe.Recipe) (recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	id, err := nextID(ctx, tx)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}
	r.ID = id

	if err := insertRecipe(ctx, tx, r); err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return recipe.Recipe{}, fmt.Errorf("create recipe: commit: %w", err)
	}

	return r, nil
}

// Seed appends the given recipes in order, keeping their ids.
// Intended for loading the seed catalog into a fresh store.
func (s *Store) Seed(ctx context.Context, recipes []recipe.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, r := range recipes {
		if err := insertRecipe(ctx, tx, r); err != nil {
			return fmt.Errorf("seed recipe %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// insertRecipe writes one row, stamping seq as the next insertion position.
func insertRecipe(ctx context.Context, db execer, r recipe.Recipe) error {
	ingredients, err := marshalIngredients(r.Ingredients)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO recipes
		(id, seq, title, category, ingredients, instructions, image, date_added)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM recipes), ?, ?, ?, ?, ?, ?)
	`,
		r.ID,
		r.Title,
		r.Category,
		ingredients,
		r.Instructions,
		nullableImage(r.Image),
		r.DateAdded,
	)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
