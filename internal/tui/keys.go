package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	All       key.Binding
	Active    key.Binding
	Inactive  key.Binding
	Paid      key.Binding
	Search    key.Binding
	Clear     key.Binding
	Grid      key.Binding
	Column    key.Binding
	Add       key.Binding
	Details   key.Binding
	Dismiss   key.Binding
	Retry     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		All:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Inactive:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "inactive")),
		Paid:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "paid")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Grid:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid")),
		Column:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "column")),
		Add:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add company")),
		Details:   key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "details")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Retry:     key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "retry")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Search, k.Details, k.Grid, k.Column, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.All, k.Active, k.Inactive, k.Paid},
		{k.Search, k.Clear, k.Grid, k.Column},
		{k.Add, k.Details, k.Dismiss, k.Retry, k.Quit},
	}
}

type formKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	PlanPrev key.Binding
	PlanNext key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev")),
		PlanPrev: key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "plan")),
		PlanNext: key.NewBinding(key.WithKeys("right")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "register")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.PlanPrev, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
