// Package recipe defines the recipe catalog's single entity and the typed
// form submission that creates it.
//
// This package contains no storage or transport code. The store, seed and
// web packages import recipe; recipe imports nothing internal.
//
// Key constraints:
//   - ID is assigned by the store, never by callers building a Recipe
//   - Image is a pointer: nil means "no image", distinct from ""
//   - DateAdded is a calendar date in DateLayout, set once at creation
//   - All JSON and YAML tags use snake_case
package recipe
