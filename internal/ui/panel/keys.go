package panel

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	NextInput key.Binding
	PrevOpt   key.Binding
	NextOpt   key.Binding
	Clear     key.Binding
	Pager     key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Accept    key.Binding
	Decline   key.Binding

	controls []key.Binding
}

func newKeyMap(controls []Control) keyMap {
	km := keyMap{
		NextInput: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch input")),
		PrevOpt:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous option")),
		NextOpt:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next option")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Pager:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page results")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
		Accept:    key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "continue")),
		Decline:   key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
	for _, c := range controls {
		km.controls = append(km.controls, c.Key)
	}
	return km
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextInput, k.PrevOpt, k.NextOpt, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.controls,
		{k.NextInput, k.PrevOpt, k.NextOpt},
		{k.Clear, k.Pager, k.Help, k.Quit},
	}
}

// confirmKeys is the help shown while an overload prompt is open
type confirmKeys struct {
	Accept  key.Binding
	Decline key.Binding
}

func (k confirmKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Accept, k.Decline} }
func (k confirmKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
