package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/nullmedium/exek/log"
	"github.com/nullmedium/exek/model"
	"github.com/nullmedium/exek/session"
)

// chrome is the number of lines around the result list: title, query and
// help bar.
const chrome = 3

// Model renders a session and feeds it key presses. All launcher logic
// lives in session.State; Model only translates input and draws.
type Model struct {
	state    session.State
	keys     keyMap
	help     help.Model
	width    int
	height   int
	selected model.Candidate
	quitting bool
}

func NewModel(state session.State) Model {
	m := Model{
		state:  state,
		keys:   defaultKeys(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.state, _ = m.state.Apply(session.Resize(m.visibleRows()))
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.state, _ = m.state.Apply(session.Resize(m.visibleRows()))
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, ev := range m.keys.events(msg) {
		var out session.Outcome
		m.state, out = m.state.Apply(ev)

		switch out.Status {
		case session.Launch:
			m.selected = out.Selected
			m.quitting = true
			return m, tea.Quit
		case session.Cancelled:
			m.quitting = true
			return m, tea.Quit
		}
	}
	log.Debug().
		Str("query", m.state.Query()).
		Stringer("mode", m.state.Mode()).
		Int("results", m.state.Len()).
		Msg("update")
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderTitle() + "\n")
	b.WriteString(m.renderQuery() + "\n")

	visible := m.visibleRows()
	start, end := m.state.Window()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i, i == m.state.Selected()) + "\n")
	}

	rendered := end - start
	if m.state.Len() == 0 {
		b.WriteString(emptyStyle.Render(m.emptyText()) + "\n")
		rendered++
	}
	for i := rendered; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString(" " + m.help.View(m.keys))
	return b.String()
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("exek")
	label := "Applications"
	if m.state.Mode() == session.ModePaths {
		label = "Path Completions"
	}
	return title + dimStyle.Render(fmt.Sprintf("  %s (%d)", label, m.state.Len()))
}

func (m Model) renderQuery() string {
	q := []rune(m.state.Query())
	c := m.state.Cursor()

	var b strings.Builder
	b.WriteString(promptStyle.Render(" > "))
	b.WriteString(queryStyle.Render(string(q[:c])))
	if c < len(q) {
		b.WriteString(cursorStyle.Render(string(q[c])))
		b.WriteString(queryStyle.Render(string(q[c+1:])))
	} else {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func (m Model) renderRow(i int, selected bool) string {
	var tag, text string
	if m.state.Mode() == session.ModePaths {
		c := m.state.Completions()[i]
		if c.IsDir {
			tag = dirTag.Render("dir ")
			text = c.Display + "/"
		} else {
			tag = execTag.Render("exe ")
			text = c.Display
		}
	} else {
		r := m.state.Results()[i]
		text = r.App.Name
		if r.App.Description != "" {
			text += " - " + r.App.Description
		}
		if r.App.IsPath() {
			tag = pathTag.Render("path ")
		}
	}

	width := m.width - 2 - lipgloss.Width(tag) // row padding
	if width < 8 {
		width = 8
	}
	text = runewidth.Truncate(text, width, "..")

	if selected {
		row := selectedStyle.Render(tag + text)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, row)
	}
	return normalStyle.Render(tag + text)
}

func (m Model) emptyText() string {
	if m.state.Mode() == session.ModePaths {
		return "no matching directories or executables"
	}
	if m.state.Query() == "" {
		return "no applications found"
	}
	return "no matches"
}

func (m Model) visibleRows() int {
	rows := m.height - chrome
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Selected returns the candidate confirmed by the user, or nil when the
// session was cancelled.
func (m Model) Selected() model.Candidate {
	return m.selected
}

// State exposes the session for tests and callers that render elsewhere.
func (m Model) State() session.State {
	return m.state
}
