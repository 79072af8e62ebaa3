package signaling

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSequentialIdentity(t *testing.T) {
	gen := SequentialIdentity()

	want := []string{"student1", "student2", "student3"}
	for _, w := range want {
		if got := gen.Next(); got != w {
			t.Fatalf("Next() = %q, want %q", got, w)
		}
	}

	// A fresh generator (a new room instance) starts over.
	if got := SequentialIdentity().Next(); got != "student1" {
		t.Fatalf("fresh generator Next() = %q, want student1", got)
	}
}

func TestRandomIdentity(t *testing.T) {
	gen := RandomIdentity()

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		if !strings.HasPrefix(id, "student-") {
			t.Fatalf("unexpected identity format: %q", id)
		}
		if err := uuid.Validate(strings.TrimPrefix(id, "student-")); err != nil {
			t.Fatalf("identity %q is not UUID-backed: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("identity %q minted twice", id)
		}
		seen[id] = true
	}
}
