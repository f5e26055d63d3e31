package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nullmedium/exek/session"
)

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Left      key.Binding
	Right     key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Complete  key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+k", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+j", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Left:      key.NewBinding(key.WithKeys("left", "ctrl+b")),
		Right:     key.NewBinding(key.WithKeys("right", "ctrl+f")),
		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
		Delete:    key.NewBinding(key.WithKeys("delete", "ctrl+d")),
		Complete:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Complete, k.Up, k.Down, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Confirm, k.Complete, k.Cancel},
		{k.Up, k.Down, k.PageUp, k.PageDown},
	}
}

// events translates a key press into session events. Typed or pasted text
// becomes one insert per rune.
func (k keyMap) events(msg tea.KeyMsg) []session.Event {
	bindings := []struct {
		binding key.Binding
		kind    session.EventKind
	}{
		{k.Up, session.EventUp},
		{k.Down, session.EventDown},
		{k.PageUp, session.EventPageUp},
		{k.PageDown, session.EventPageDown},
		{k.Left, session.EventLeft},
		{k.Right, session.EventRight},
		{k.Home, session.EventHome},
		{k.End, session.EventEnd},
		{k.Backspace, session.EventBackspace},
		{k.Delete, session.EventDelete},
		{k.Complete, session.EventAccept},
		{k.Confirm, session.EventConfirm},
		{k.Cancel, session.EventCancel},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return []session.Event{session.Key(b.kind)}
		}
	}

	switch msg.Type {
	case tea.KeySpace:
		return []session.Event{session.Insert(' ')}
	case tea.KeyRunes:
		evs := make([]session.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			evs = append(evs, session.Insert(r))
		}
		return evs
	}
	return nil
}
