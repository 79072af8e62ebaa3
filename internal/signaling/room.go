package signaling

import "sort"

// Room tracks the participants of one named classroom: at most one teacher
// and any number of students keyed by their minted identity.
//
// A room exists in the hub's map only while it has at least one participant.
// The hub creates it on the first join that names it and deletes it when the
// teacher leaves or the last student of a teacherless room leaves.
type Room struct {
	// Name is the client-chosen room name, used as the registry key.
	Name string

	// Teacher is the broadcasting connection, or nil if none joined yet.
	Teacher *Client

	// Students maps minted identity -> registration.
	Students map[string]*studentEntry

	// ids mints student identities for this room instance.
	ids IdentityGenerator

	// joinSeq orders roster entries by join time.
	joinSeq int
}

type studentEntry struct {
	client *Client
	name   string
	seq    int
}

func newRoom(name string, ids IdentityGenerator) *Room {
	return &Room{
		Name:     name,
		Students: make(map[string]*studentEntry),
		ids:      ids,
	}
}

// addStudent mints a fresh identity for c and registers it.
func (r *Room) addStudent(c *Client, name string) string {
	id := r.ids.Next()
	r.joinSeq++
	r.Students[id] = &studentEntry{client: c, name: name, seq: r.joinSeq}
	return id
}

// removeStudent drops the registration for id, but only if it still belongs
// to c. Reports whether an entry was removed, so the caller can decide
// whether a student-left notification is due.
func (r *Room) removeStudent(id string, c *Client) bool {
	entry, ok := r.Students[id]
	if !ok || entry.client != c {
		return false
	}
	delete(r.Students, id)
	return true
}

// roster lists the current students in join order.
func (r *Room) roster() []RosterEntry {
	ids := make([]string, 0, len(r.Students))
	for id := range r.Students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return r.Students[ids[i]].seq < r.Students[ids[j]].seq
	})

	roster := make([]RosterEntry, 0, len(ids))
	for _, id := range ids {
		roster = append(roster, RosterEntry{ID: id, Name: r.Students[id].name})
	}
	return roster
}

// empty reports whether no participant is left in the room.
func (r *Room) empty() bool {
	return r.Teacher == nil && len(r.Students) == 0
}
