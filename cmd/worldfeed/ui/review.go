// Package ui contains the interactive review screen. Decisions are collected
// in memory while the program runs and applied by the caller afterwards, so a
// cancelled session never touches the store.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"worldfeed/internal/review"
	"worldfeed/internal/store"
)

var tagTitler = cases.Title(language.English)

type reviewModel struct {
	worlds    []*store.World
	index     int
	decisions map[string]review.Action
	viewport  viewport.Model
	ready     bool
	width     int
	aborted   bool
}

// RunReview walks the user through the given worlds one at a time and returns
// the decisions they made. The second return value is false when the session
// was aborted and nothing should be applied.
func RunReview(worlds []*store.World) (map[string]review.Action, bool, error) {
	model := reviewModel{
		worlds:    worlds,
		decisions: make(map[string]review.Action),
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("run review ui: %w", err)
	}
	result, ok := final.(reviewModel)
	if !ok || result.aborted {
		return nil, false, nil
	}
	return result.decisions, true, nil
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - 14
		if height < 3 {
			height = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-6, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 6
			m.viewport.Height = height
		}
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "q":
			return m, tea.Quit
		case "a":
			m.decide(review.ActionApprove)
			return m.advance()
		case "r":
			m.decide(review.ActionReject)
			return m.advance()
		case "s":
			return m.advance()
		case "u":
			if w := m.current(); w != nil {
				delete(m.decisions, w.ID)
			}
			return m, nil
		case "left", "h":
			if m.index > 0 {
				m.index--
				m.syncViewport()
			}
			return m, nil
		case "right", "l":
			if m.index < len(m.worlds)-1 {
				m.index++
				m.syncViewport()
			}
			return m, nil
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m reviewModel) View() string {
	if len(m.worlds) == 0 {
		return "Nothing pending review.\n\nPress q to quit.\n"
	}
	w := m.current()
	if w == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(progressStyle.Render(fmt.Sprintf("World %d of %d", m.index+1, len(m.worlds))))
	b.WriteString("  ")
	b.WriteString(m.decisionBadge(w.ID))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(w.Name))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Author") + w.AuthorName + "\n")
	b.WriteString(labelStyle.Render("Visits") + fmt.Sprintf("%d", w.Visits) + "\n")
	b.WriteString(labelStyle.Render("Favorites") + fmt.Sprintf("%d", w.Favorites) + "\n")
	b.WriteString(labelStyle.Render("Tags") + displayTags(w.Tags) + "\n")
	b.WriteString(labelStyle.Render("Published") + displayDate(w.PublicationDate) + "\n")
	b.WriteString(labelStyle.Render("URL") + w.PageURL() + "\n\n")
	if m.ready {
		b.WriteString(panelStyle.Render(m.viewport.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("a approve  r reject  s skip  u undo  ←/→ move  q apply & quit  esc abort"))
	b.WriteString("\n")
	return b.String()
}

func (m *reviewModel) current() *store.World {
	if m.index < 0 || m.index >= len(m.worlds) {
		return nil
	}
	return m.worlds[m.index]
}

func (m *reviewModel) decide(action review.Action) {
	if w := m.current(); w != nil {
		m.decisions[w.ID] = action
	}
}

func (m reviewModel) advance() (tea.Model, tea.Cmd) {
	if m.index < len(m.worlds)-1 {
		m.index++
		m.syncViewport()
		return m, nil
	}
	return m, tea.Quit
}

func (m *reviewModel) syncViewport() {
	if !m.ready {
		return
	}
	w := m.current()
	if w == nil {
		return
	}
	description := w.Description
	if description == "" {
		description = "(no description)"
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(description))
	m.viewport.GotoTop()
}

func (m reviewModel) decisionBadge(worldID string) string {
	switch m.decisions[worldID] {
	case review.ActionApprove:
		return approvedStyle.Render("APPROVE")
	case review.ActionReject:
		return rejectedStyle.Render("REJECT")
	default:
		return pendingStyle.Render("undecided")
	}
}

func displayTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, tagTitler.String(strings.ReplaceAll(tag, "_", " ")))
	}
	return strings.Join(labels, ", ")
}

func displayDate(value string) string {
	if value == "" || value == "none" {
		return "-"
	}
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}
