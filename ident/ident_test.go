package ident

import (
	"strings"
	"testing"
)

func TestGenerator_PrefixAndLength(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{name: "user prefix", prefix: UserPrefix},
		{name: "task prefix", prefix: TaskPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := MustGenerator(tt.prefix)
			id := g.New()

			if !strings.HasPrefix(id, tt.prefix) {
				t.Errorf("New() = %q, want prefix %q", id, tt.prefix)
			}
			if len(id) != len(tt.prefix)+suffixLength {
				t.Errorf("len(New()) = %d, want %d", len(id), len(tt.prefix)+suffixLength)
			}

			for _, c := range id[len(tt.prefix):] {
				if !strings.ContainsRune(suffixAlphabet, c) {
					t.Errorf("New() = %q contains %q outside the suffix alphabet", id, c)
				}
			}
		})
	}
}

func TestGenerator_Uniqueness(t *testing.T) {
	g := MustGenerator(TaskPrefix)

	seen := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id := g.New()
		if seen[id] {
			t.Fatalf("duplicate id generated after %d iterations: %s", i, id)
		}
		seen[id] = true
	}
}
