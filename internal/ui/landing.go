package ui

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

//go:embed landing.md
var landingMarkdown string

const collegeName = "MIET Arts & Science"

type landingPage struct {
	style    string
	viewport viewport.Model
}

func newLandingPage(style string) landingPage {
	l := landingPage{style: style, viewport: viewport.New(80, 20)}
	l.render()
	return l
}

func (l *landingPage) setSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height
	l.render()
}

func (l *landingPage) render() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(l.style),
		glamour.WithWordWrap(max(l.viewport.Width-4, 20)),
	)
	if err != nil {
		l.viewport.SetContent(landingMarkdown)
		return
	}
	out, err := r.Render(landingMarkdown)
	if err != nil {
		l.viewport.SetContent(landingMarkdown)
		return
	}
	l.viewport.SetContent(out)
}

func (l *landingPage) handleKey(msg tea.KeyMsg, keys globalKeyMap) {
	switch {
	case key.Matches(msg, keys.Up):
		l.viewport.LineUp(1)
	case key.Matches(msg, keys.Down):
		l.viewport.LineDown(1)
	case key.Matches(msg, keys.PageUp):
		l.viewport.HalfViewUp()
	case key.Matches(msg, keys.PageDown):
		l.viewport.HalfViewDown()
	}
}

func (l landingPage) View() string {
	return l.viewport.View()
}
