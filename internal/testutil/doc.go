// Package testutil provides deterministic fixtures shared by package tests:
// a settable wall clock and a predictable flash token generator.
package testutil
