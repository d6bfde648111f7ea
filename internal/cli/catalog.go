package cli

import (
	"context"
	"fmt"

	"github.com/roach88/recipebox/internal/recipe"
	"github.com/roach88/recipebox/internal/seed"
	"github.com/roach88/recipebox/internal/store"
)

// loadCatalog returns the seed catalog at path, or the embedded one when
// path is empty.
func loadCatalog(path string) ([]recipe.Recipe, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.Load(path)
}

// openSeededStore opens a fresh in-memory store holding recipes.
// The caller must Close the store.
func openSeededStore(ctx context.Context, recipes []recipe.Recipe) (*store.Store, error) {
	st, err := store.Open()
	if err != nil {
		return nil, err
	}
	if err := st.Seed(ctx, recipes); err != nil {
		st.Close()
		return nil, fmt.Errorf("load seed catalog: %w", err)
	}
	return st, nil
}
