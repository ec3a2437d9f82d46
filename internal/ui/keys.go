package ui

import "github.com/charmbracelet/bubbles/key"

type globalKeyMap struct {
	Quit       key.Binding
	QuitHome   key.Binding
	ToggleChat key.Binding
	Landing    key.Binding
	Admin      key.Binding
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

type chatKeyMap struct {
	Send      key.Binding
	Close     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Copy      key.Binding
	Export    key.Binding
	Find      key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
}

type adminKeyMap struct {
	SwitchMode key.Binding
	Submit     key.Binding
	SubmitURL  key.Binding
	Browse     key.Binding
	Pick       key.Binding
}

func defaultKeys() globalKeyMap {
	return globalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitHome: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ToggleChat: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "chat"),
		),
		Landing: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "home"),
		),
		Admin: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "admin"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f", " "),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

func defaultChatKeys() chatKeyMap {
	return chatKeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close chat"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy answer"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Find: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "find"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("enter", "ctrl+n"),
			key.WithHelp("enter", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prev match"),
		),
	}
}

func defaultAdminKeys() adminKeyMap {
	return adminKeyMap{
		SwitchMode: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "documents/urls"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sync"),
		),
		SubmitURL: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "sync url"),
		),
		// Browse and Pick only describe the file picker's own bindings in help.
		Browse: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "browse"),
		),
		Pick: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/select"),
		),
	}
}
