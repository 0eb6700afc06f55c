package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"calctui/config"
)

// keyMap resolves the configured keybindings into bubbles bindings.
type keyMap struct {
	Help           key.Binding
	About          key.Binding
	Quit           key.Binding
	SwitchMode     key.Binding
	Yank           key.Binding
	RefreshHistory key.Binding

	Evaluate key.Binding
	AllClear key.Binding

	SelectOperation key.Binding
	Filter          key.Binding
	Next            key.Binding
	Prev            key.Binding
	Down            key.Binding
	Up              key.Binding

	ClearEntry key.Binding
	Pow        key.Binding
	Sqrt       key.Binding
	Log        key.Binding
	Sin        key.Binding
	Cos        key.Binding
	Tan        key.Binding
}

func newKeyMap(kb *config.KeyBindingsConfig) keyMap {
	if kb == nil {
		kb = config.DefaultKeybindings()
	}

	bind := func(action, desc string, extra ...string) key.Binding {
		k := kb.GetActionKey(action)
		return key.NewBinding(
			key.WithKeys(append([]string{k}, extra...)...),
			key.WithHelp(kb.DisplayActionKey(action), desc),
		)
	}

	return keyMap{
		Help:           bind("help", "help"),
		About:          bind("about", "about"),
		Quit:           bind("quit", "quit"),
		SwitchMode:     bind("switch_mode", "switch calculator"),
		Yank:           bind("yank_result", "copy result"),
		RefreshHistory: bind("refresh_history", "reload history"),

		Evaluate: bind("evaluate", "evaluate"),
		AllClear: bind("all_clear", "clear"),

		SelectOperation: bind("select_operation", "select"),
		Filter:          bind("filter_operations", "filter"),
		Next:            bind("operation_next", "next"),
		Prev:            bind("operation_prev", "previous"),
		Down:            bind("operation_down", "down"),
		Up:              bind("operation_up", "up"),

		ClearEntry: bind("clear_entry", "clear entry", "backspace"),
		Pow:        bind("pow", "pow"),
		Sqrt:       bind("sqrt", "sqrt"),
		Log:        bind("log", "log"),
		Sin:        bind("sin", "sin"),
		Cos:        bind("cos", "cos"),
		Tan:        bind("tan", "tan"),
	}
}

// operationsHelp implements help.KeyMap for the operations calculator.
type operationsHelp struct{ keyMap }

func (h operationsHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.SelectOperation, h.Evaluate, h.AllClear, h.Filter, h.SwitchMode, h.Help, h.Quit}
}

func (h operationsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Prev, h.Next, h.Up, h.Down, h.SelectOperation, h.Filter},
		{h.Evaluate, h.AllClear, h.Yank, h.RefreshHistory},
		{h.SwitchMode, h.Help, h.About, h.Quit},
	}
}

// expressionHelp implements help.KeyMap for the expression calculator.
type expressionHelp struct{ keyMap }

func (h expressionHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.Evaluate, h.AllClear, h.ClearEntry, h.SwitchMode, h.Help, h.Quit}
}

func (h expressionHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.Pow, h.Sqrt, h.Log, h.Sin, h.Cos, h.Tan},
		{h.Evaluate, h.AllClear, h.ClearEntry, h.Yank, h.RefreshHistory},
		{h.SwitchMode, h.Help, h.About, h.Quit},
	}
}
