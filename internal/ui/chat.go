package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-helpdesk/internal/backend"
	"campus-helpdesk/internal/clipboard"
	"campus-helpdesk/internal/export"
	"campus-helpdesk/internal/search"
	"campus-helpdesk/internal/transcript"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

const (
	chatGreeting = "Hi there! 👋 I'm your Student Helpdesk companion. I'm here to help you find information about courses, fees, and campus life. What can I help you with today?"
	chatFallback = "I'm having a little trouble connecting to my brain! Please check your internet or try again in a moment."
	chatThinking = "Assistant is thinking..."
)

// Asker answers a single chat question.
type Asker interface {
	Chat(ctx context.Context, query string) (backend.ChatReply, error)
}

type chatReplyMsg struct {
	answer string
	err    error
}

// chatRevealMsg fires once the display delay after a reply has elapsed.
type chatRevealMsg struct{ text string }

type chatNoticeMsg struct{ text string }

type chatWidget struct {
	ctx      context.Context
	asker    Asker
	exporter *export.Exporter
	session  export.Session
	log      zerolog.Logger
	keys     chatKeyMap
	delay    time.Duration
	style    string

	open     bool
	pending  bool
	messages []transcript.Message
	notice   string

	searching bool
	query     textinput.Model
	matches   search.Matches
	matchAt   int

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	rendered []string

	width  int
	height int
}

func newChatWidget(
	ctx context.Context,
	asker Asker,
	exporter *export.Exporter,
	session export.Session,
	delay time.Duration,
	style string,
	log zerolog.Logger,
) chatWidget {
	ti := textinput.New()
	ti.Placeholder = "Ask a question..."
	ti.Prompt = "> "
	ti.CharLimit = 1000

	q := textinput.New()
	q.Placeholder = "find in conversation"
	q.Prompt = "/ "
	q.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	c := chatWidget{
		ctx:      ctx,
		asker:    asker,
		exporter: exporter,
		session:  session,
		log:      log,
		keys:     defaultChatKeys(),
		delay:    delay,
		style:    style,
		messages: []transcript.Message{transcript.BotMessage(chatGreeting)},
		query:    q,
		matchAt:  -1,
		input:    ti,
		viewport: viewport.New(40, 10),
		spinner:  sp,
	}
	c.setSize(48, 20)
	return c
}

func (c *chatWidget) innerWidth() int {
	// border and horizontal padding
	return max(c.width-4, 10)
}

func (c *chatWidget) setSize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height

	inner := c.innerWidth()
	c.input.Width = max(inner-len(c.input.Prompt)-1, 1)
	c.query.Width = c.input.Width
	c.viewport.Width = inner
	// title, input and notice lines sit around the transcript
	c.viewport.Height = max(height-2-3, 3)

	c.renderer = nil
	if r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(c.style),
		glamour.WithWordWrap(max(inner-2, 10)),
	); err == nil {
		c.renderer = r
	} else {
		c.log.Debug().Err(err).Str("style", c.style).Msg("glamour renderer unavailable")
	}
	c.rendered = nil
	c.refresh()
}

// Toggle opens or closes the panel. The transcript survives either way.
func (c *chatWidget) Toggle() tea.Cmd {
	c.open = !c.open
	if !c.open {
		c.input.Blur()
		c.endSearch()
		return nil
	}
	c.refresh()
	return tea.Batch(c.input.Focus(), textinput.Blink)
}

// Send submits text as a question. Blank input and a pending reply are no-ops.
func (c *chatWidget) Send(text string) tea.Cmd {
	if c.pending {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	c.messages = append(c.messages, transcript.UserMessage(text))
	c.input.Reset()
	c.pending = true
	c.notice = ""
	c.refresh()

	asker, ctx := c.asker, c.ctx
	ask := func() tea.Msg {
		reply, err := asker.Chat(ctx, text)
		if err != nil {
			return chatReplyMsg{err: err}
		}
		return chatReplyMsg{answer: reply.Answer}
	}
	return tea.Batch(ask, c.spinner.Tick)
}

func (c *chatWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case chatReplyMsg:
		text := msg.answer
		if msg.err != nil {
			c.log.Warn().Err(msg.err).Msg("chat request failed")
			text = chatFallback
		}
		return c.revealAfter(text)

	case chatRevealMsg:
		c.messages = append(c.messages, transcript.BotMessage(msg.text))
		c.pending = false
		c.refresh()
		return nil

	case chatNoticeMsg:
		c.notice = msg.text
		return nil

	case spinner.TickMsg:
		if !c.pending || msg.ID != c.spinner.ID() {
			return nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		follow := c.viewport.AtBottom()
		c.paint()
		if follow {
			c.viewport.GotoBottom()
		}
		return cmd

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	var cmd tea.Cmd
	if c.searching {
		c.query, cmd = c.query.Update(msg)
		return cmd
	}
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *chatWidget) revealAfter(text string) tea.Cmd {
	reveal := chatRevealMsg{text: text}
	if c.delay <= 0 {
		return func() tea.Msg { return reveal }
	}
	return tea.Tick(c.delay, func(time.Time) tea.Msg { return reveal })
}

func (c *chatWidget) handleKey(msg tea.KeyMsg) tea.Cmd {
	if c.searching {
		return c.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, c.keys.Send):
		return c.Send(c.input.Value())
	case key.Matches(msg, c.keys.Close):
		return c.Toggle()
	case key.Matches(msg, c.keys.PageUp):
		c.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, c.keys.PageDown):
		c.viewport.HalfViewDown()
		return nil
	case key.Matches(msg, c.keys.Copy):
		return c.copyCmd()
	case key.Matches(msg, c.keys.Export):
		return c.exportCmd()
	case key.Matches(msg, c.keys.Find):
		c.searching = true
		c.input.Blur()
		return c.query.Focus()
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *chatWidget) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Close):
		c.endSearch()
		c.refresh()
		return c.input.Focus()
	case key.Matches(msg, c.keys.NextMatch):
		c.jumpToMatch(1)
		return nil
	case key.Matches(msg, c.keys.PrevMatch):
		c.jumpToMatch(-1)
		return nil
	case key.Matches(msg, c.keys.PageUp):
		c.viewport.HalfViewUp()
		return nil
	case key.Matches(msg, c.keys.PageDown):
		c.viewport.HalfViewDown()
		return nil
	}

	before := c.query.Value()
	var cmd tea.Cmd
	c.query, cmd = c.query.Update(msg)
	if c.query.Value() != before {
		c.paint()
		c.matchAt = -1
		c.jumpToMatch(1)
	}
	return cmd
}

func (c *chatWidget) endSearch() {
	c.searching = false
	c.query.Reset()
	c.query.Blur()
	c.matches = search.Matches{}
	c.matchAt = -1
}

func (c *chatWidget) jumpToMatch(step int) {
	next := c.matches.Next(c.matchAt, step)
	if next < 0 {
		return
	}
	c.matchAt = next
	c.viewport.SetYOffset(c.matches.Lines[next])
}

func (c *chatWidget) copyCmd() tea.Cmd {
	last, ok := transcript.LastFrom(c.messages, transcript.SenderBot)
	if !ok {
		c.notice = "Nothing to copy yet"
		return nil
	}
	text := last.Text
	return func() tea.Msg {
		if err := clipboard.Copy(text); err != nil {
			if errors.Is(err, clipboard.ErrToolNotFound) {
				return chatNoticeMsg{text: "Copy failed: clipboard tool not found"}
			}
			return chatNoticeMsg{text: "Copy failed: " + err.Error()}
		}
		return chatNoticeMsg{text: "Copied latest answer"}
	}
}

func (c *chatWidget) exportCmd() tea.Cmd {
	if c.exporter == nil {
		c.notice = "Export is not configured"
		return nil
	}
	exp, session := c.exporter, c.session
	msgs := append([]transcript.Message(nil), c.messages...)
	return func() tea.Msg {
		path, err := exp.Export(session, msgs)
		if err != nil {
			return chatNoticeMsg{text: "Export failed: " + err.Error()}
		}
		return chatNoticeMsg{text: "Exported: " + path}
	}
}

// refresh re-renders the transcript and pins the view to the newest entry.
func (c *chatWidget) refresh() {
	c.paint()
	c.viewport.GotoBottom()
}

func (c *chatWidget) paint() {
	for i := len(c.rendered); i < len(c.messages); i++ {
		c.rendered = append(c.rendered, c.renderMessage(c.messages[i]))
	}

	parts := append([]string(nil), c.rendered...)
	if c.pending {
		parts = append(parts, c.spinner.View()+" "+thinkingStyle.Render(chatThinking))
	}
	content := strings.Join(parts, "\n\n")
	if c.searching {
		c.matches = search.Mark(content, c.query.Value(), func(s string) string {
			return matchStyle.Render(s)
		})
		content = c.matches.Text
		if c.matchAt >= len(c.matches.Lines) {
			c.matchAt = len(c.matches.Lines) - 1
		}
	}
	c.viewport.SetContent(content)
}

func (c *chatWidget) renderMessage(m transcript.Message) string {
	inner := c.innerWidth()
	if m.Sender == transcript.SenderUser {
		return userLabelStyle.Render("You") + "\n" + userTextStyle.Width(inner).Render(m.Text)
	}

	body := lipgloss.NewStyle().Width(inner).Render(m.Text)
	if c.renderer != nil {
		if out, err := c.renderer.Render(m.Text); err == nil {
			body = strings.Trim(out, "\n")
		}
	}
	return botLabelStyle.Render("Helpdesk") + "\n" + body
}

func (c chatWidget) View() string {
	inner := c.innerWidth()
	title := chatTitleStyle.Render("🎓 Student Helpdesk")
	notice := ""
	if c.notice != "" {
		notice = noticeStyle.Render(ansi.Truncate(c.notice, inner, "…"))
	}
	prompt := c.input.View()
	if c.searching {
		prompt = c.query.View()
		notice = noticeStyle.Render(c.matchSummary())
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		c.viewport.View(),
		prompt,
		notice,
	)
	return chatPanelStyle().
		Width(max(c.width-2, 1)).
		Height(max(c.height-2, 1)).
		MaxHeight(c.height).
		Render(body)
}

func (c chatWidget) matchSummary() string {
	if strings.TrimSpace(c.query.Value()) == "" {
		return "type to search, esc to return"
	}
	if c.matches.Count == 0 {
		return "no matches"
	}
	if c.matchAt < 0 {
		return fmt.Sprintf("%d hits", c.matches.Count)
	}
	return fmt.Sprintf("line %d/%d · %d hits", c.matchAt+1, len(c.matches.Lines), c.matches.Count)
}
