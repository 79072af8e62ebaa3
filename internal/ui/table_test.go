package ui

import (
	"strings"
	"testing"
)

func TestRosterTableView(t *testing.T) {
	view := RosterTableView([]RosterItem{
		{Index: 1, Name: "Alice", ID: "student1"},
		{Index: 2, Name: "Bob", ID: "student2"},
	})

	for _, want := range []string{"Alice", "student1", "Bob", "student2"} {
		if !strings.Contains(view, want) {
			t.Fatalf("table missing %q:\n%s", want, view)
		}
	}

	// Alice joined first, so her row renders above Bob's.
	if strings.Index(view, "Alice") > strings.Index(view, "Bob") {
		t.Fatalf("rows out of join order:\n%s", view)
	}
}

func TestRosterTableView_Empty(t *testing.T) {
	view := RosterTableView(nil)
	if !strings.Contains(view, "No students yet") {
		t.Fatalf("empty roster placeholder missing: %q", view)
	}
}
