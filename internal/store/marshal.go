package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// marshalIngredients converts the ingredient lines to JSON TEXT for storage.
// Line order is preserved exactly.
func marshalIngredients(lines []string) (string, error) {
	if lines == nil {
		lines = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep "&" and "<" readable in the raw column
	if err := enc.Encode(lines); err != nil {
		return "", fmt.Errorf("marshal ingredients: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

// unmarshalIngredients parses JSON TEXT back to ingredient lines.
// Returns an empty slice (not nil) for an empty array.
func unmarshalIngredients(data string) ([]string, error) {
	lines := []string{}
	if data == "" {
		return lines, nil
	}
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	return lines, nil
}

// nullableImage maps an absent image to SQL NULL.
func nullableImage(image *string) sql.NullString {
	if image == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *image, Valid: true}
}

// imageFromNull maps SQL NULL back to an absent image.
func imageFromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
