package ui

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RosterItem represents one student row in the roster table.
type RosterItem struct {
	Index int
	Name  string
	ID    string
}

// RosterTableView renders the room roster as a table string.
func RosterTableView(items []RosterItem) string {
	if len(items) == 0 {
		return MutedStyle.Render("No students yet")
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "ID"})
	for _, item := range items {
		t.AppendRow(table.Row{item.Index, item.Name, item.ID})
	}
	t.SetStyle(table.StyleRounded)
	return t.Render()
}

// RenderRosterTable outputs the roster table directly to stdout.
func RenderRosterTable(items []RosterItem) {
	fmt.Println(RosterTableView(items))
}
