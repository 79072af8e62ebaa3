package signaling

import "testing"

func TestRoom_AddStudentMintsSequentialIdentities(t *testing.T) {
	room := newRoom("math101", SequentialIdentity())

	a := &Client{}
	b := &Client{}

	if id := room.addStudent(a, "Alice"); id != "student1" {
		t.Fatalf("first id = %q, want student1", id)
	}
	if id := room.addStudent(b, "Bob"); id != "student2" {
		t.Fatalf("second id = %q, want student2", id)
	}
	if len(room.Students) != 2 {
		t.Fatalf("students = %d, want 2", len(room.Students))
	}
}

func TestRoom_RemoveStudentOnlyForOwningConnection(t *testing.T) {
	room := newRoom("math101", SequentialIdentity())

	owner := &Client{}
	other := &Client{}
	id := room.addStudent(owner, "Alice")

	if room.removeStudent(id, other) {
		t.Fatal("removal must be refused for a different connection")
	}
	if !room.removeStudent(id, owner) {
		t.Fatal("removal must succeed for the owning connection")
	}
	if room.removeStudent(id, owner) {
		t.Fatal("second removal must be a no-op")
	}
}

func TestRoom_RosterInJoinOrder(t *testing.T) {
	room := newRoom("math101", SequentialIdentity())

	names := []string{"Carol", "Alice", "Bob"}
	for _, name := range names {
		room.addStudent(&Client{}, name)
	}

	roster := room.roster()
	if len(roster) != 3 {
		t.Fatalf("roster size = %d, want 3", len(roster))
	}
	for i, entry := range roster {
		if entry.Name != names[i] {
			t.Fatalf("roster[%d] = %q, want %q", i, entry.Name, names[i])
		}
	}
}

func TestRoom_Empty(t *testing.T) {
	room := newRoom("math101", SequentialIdentity())
	if !room.empty() {
		t.Fatal("new room must be empty")
	}

	room.Teacher = &Client{}
	if room.empty() {
		t.Fatal("room with a teacher is not empty")
	}

	room.Teacher = nil
	c := &Client{}
	id := room.addStudent(c, "Alice")
	if room.empty() {
		t.Fatal("room with a student is not empty")
	}

	room.removeStudent(id, c)
	if !room.empty() {
		t.Fatal("room must be empty again")
	}
}
