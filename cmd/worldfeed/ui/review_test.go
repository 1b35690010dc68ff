package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"worldfeed/internal/review"
	"worldfeed/internal/store"
	"worldfeed/internal/world"
)

func testWorlds() []*store.World {
	return []*store.World{
		{Record: world.Record{ID: "wrld_a", Name: "First"}, Status: store.StatusPending},
		{Record: world.Record{ID: "wrld_b", Name: "Second"}, Status: store.StatusPending},
	}
}

func press(m reviewModel, key string) reviewModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(reviewModel)
}

func newTestModel() reviewModel {
	return reviewModel{
		worlds:    testWorlds(),
		decisions: make(map[string]review.Action),
	}
}

func TestApproveAdvancesToNextWorld(t *testing.T) {
	m := press(newTestModel(), "a")
	if m.decisions["wrld_a"] != review.ActionApprove {
		t.Fatalf("decision = %q", m.decisions["wrld_a"])
	}
	if m.index != 1 {
		t.Fatalf("index = %d, want 1", m.index)
	}
}

func TestRejectRecordsDecision(t *testing.T) {
	m := press(newTestModel(), "r")
	if m.decisions["wrld_a"] != review.ActionReject {
		t.Fatalf("decision = %q", m.decisions["wrld_a"])
	}
}

func TestSkipLeavesWorldUndecided(t *testing.T) {
	m := press(newTestModel(), "s")
	if _, ok := m.decisions["wrld_a"]; ok {
		t.Fatal("skip recorded a decision")
	}
	if m.index != 1 {
		t.Fatalf("index = %d, want 1", m.index)
	}
}

func TestUndoClearsDecision(t *testing.T) {
	m := press(newTestModel(), "a")
	m = press(m, "h")
	m = press(m, "u")
	if _, ok := m.decisions["wrld_a"]; ok {
		t.Fatal("undo left a decision behind")
	}
}

func TestDecidingLastWorldQuits(t *testing.T) {
	m := press(newTestModel(), "a")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m = next.(reviewModel)
	if cmd == nil {
		t.Fatal("deciding the final world did not quit")
	}
	if m.decisions["wrld_b"] != review.ActionApprove {
		t.Fatalf("final decision = %q", m.decisions["wrld_b"])
	}
}

func TestEscapeAborts(t *testing.T) {
	next, cmd := newTestModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
	m := next.(reviewModel)
	if !m.aborted {
		t.Fatal("escape did not abort")
	}
	if cmd == nil {
		t.Fatal("escape did not quit")
	}
}

func TestDisplayTags(t *testing.T) {
	if got := displayTags(nil); got != "-" {
		t.Fatalf("empty tags = %q", got)
	}
	if got := displayTags([]string{"author_tag_game"}); got != "Author Tag Game" {
		t.Fatalf("tag label = %q", got)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := displayDate("none"); got != "-" {
		t.Fatalf("none date = %q", got)
	}
	if got := displayDate("2023-06-01T12:00:00Z"); got != "2023-06-01" {
		t.Fatalf("date = %q", got)
	}
}
