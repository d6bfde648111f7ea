package store

import (
	"context"
	"testing"

	"github.com/roach88/recipebox/internal/recipe"
)

// createTestStore creates a new in-memory store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createSeededStore creates a store holding ids 1-3 across three categories.
func createSeededStore(t *testing.T) *Store {
	t.Helper()
	s := createTestStore(t)
	if err := s.Seed(context.Background(), testSeed()); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	return s
}

func testSeed() []recipe.Recipe {
	return []recipe.Recipe{
		createTestRecipe(1, "Classic Margherita Pizza", "Italian"),
		createTestRecipe(2, "Vegetable Stir-Fry", "Asian"),
		createTestRecipe(3, "Spicy Chicken Tacos", "Mexican"),
	}
}

// createTestRecipe creates a recipe with minimal required fields.
func createTestRecipe(id int64, title, category string) recipe.Recipe {
	return recipe.Recipe{
		ID:           id,
		Title:        title,
		Category:     category,
		Ingredients:  []string{"one", "two"},
		Instructions: "cook",
		DateAdded:    "2024-07-01",
	}
}

func titles(recipes []recipe.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}
