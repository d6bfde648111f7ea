package testutil

import (
	"fmt"
	"sync"
)

// SequenceTokens generates flash tokens "test-token-1", "test-token-2", ...
//
// This keeps cookie values predictable in handler tests and golden files.
//
// Thread-safety: SequenceTokens is safe for concurrent use via internal mutex.
type SequenceTokens struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceTokens creates a generator using prefix.
// If prefix is empty, "test-token" is used.
func NewSequenceTokens(prefix string) *SequenceTokens {
	if prefix == "" {
		prefix = "test-token"
	}
	return &SequenceTokens{prefix: prefix}
}

// Generate returns the next token in sequence.
//
// Implements flash.TokenGenerator interface.
func (g *SequenceTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// Issued returns how many tokens have been generated.
func (g *SequenceTokens) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}
