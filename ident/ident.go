// Package ident generates the opaque prefixed identifiers used as primary
// keys for users and tasks (e.g. "usr_a8Kq0ZpR3x", "task_M2nV7cQe1s").
package ident

import (
	"fmt"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	// UserPrefix is the identifier prefix for user records.
	UserPrefix = "usr_"
	// TaskPrefix is the identifier prefix for task records.
	TaskPrefix = "task_"

	suffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	suffixLength   = 10
)

// Generator produces random identifiers with a fixed prefix.
type Generator struct {
	prefix string
	gen    func() string
}

// NewGenerator creates a Generator for the given prefix.
func NewGenerator(prefix string) (*Generator, error) {
	gen, err := nanoid.CustomASCII(suffixAlphabet, suffixLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create id generator: %w", err)
	}
	return &Generator{prefix: prefix, gen: gen}, nil
}

// New returns a fresh identifier.
func (g *Generator) New() string {
	return g.prefix + g.gen()
}

// MustGenerator is like NewGenerator but panics on failure. The only failure
// mode is an invalid alphabet or length, which is a programming error.
func MustGenerator(prefix string) *Generator {
	g, err := NewGenerator(prefix)
	if err != nil {
		panic(err)
	}
	return g
}
