package ui

import (
	"context"
	"strings"
	"time"

	"campus-helpdesk/internal/config"
	"campus-helpdesk/internal/export"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Backend is everything the UI needs from the helpdesk service.
type Backend interface {
	Asker
	Trainer
}

type route int

const (
	routeLanding route = iota
	routeAdmin
)

func (r route) String() string {
	if r == routeAdmin {
		return "admin"
	}
	return "landing"
}

type Model struct {
	ctx context.Context
	cfg config.AppConfig
	api Backend
	log zerolog.Logger

	keys globalKeyMap
	help help.Model

	route      route
	landing    landingPage
	admin      *adminConsole
	adminEpoch int
	chat       chatWidget

	width  int
	height int
}

func NewModel(ctx context.Context, cfg config.AppConfig, api Backend, exporter *export.Exporter, log zerolog.Logger) Model {
	session := export.Session{
		ID:         uuid.NewString(),
		BackendURL: cfg.BackendURL,
		StartedAt:  time.Now(),
	}
	log.Info().Str("session", session.ID).Str("backend", cfg.BackendURL).Msg("helpdesk session started")

	return Model{
		ctx:     ctx,
		cfg:     cfg,
		api:     api,
		log:     log,
		keys:    defaultKeys(),
		help:    help.New(),
		route:   routeLanding,
		landing: newLandingPage(cfg.GlamourStyle),
		chat:    newChatWidget(ctx, api, exporter, session, cfg.ReplyDelay, cfg.GlamourStyle, log),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case chatReplyMsg, chatRevealMsg, chatNoticeMsg:
		return m, m.chat.Update(msg)

	case adminResultMsg:
		if m.admin == nil || m.admin.epoch != msg.epoch {
			m.log.Debug().Int("epoch", msg.epoch).Msg("dropping result for unmounted admin console")
			return m, nil
		}
		return m, m.admin.Update(msg)

	case spinner.TickMsg:
		cmds := []tea.Cmd{m.chat.Update(msg)}
		if m.admin != nil {
			cmds = append(cmds, m.admin.Update(msg))
		}
		return m, tea.Batch(cmds...)
	}

	// cursor blinks and directory listings
	cmds := []tea.Cmd{m.chat.Update(msg)}
	if m.admin != nil {
		cmds = append(cmds, m.admin.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.ToggleChat):
		cmd := m.chat.Toggle()
		m.resize()
		return cmd
	case key.Matches(msg, m.keys.Landing):
		return m.navigate(routeLanding)
	case key.Matches(msg, m.keys.Admin):
		return m.navigate(routeAdmin)
	}

	if m.chat.open {
		cmd := m.chat.Update(msg)
		if !m.chat.open {
			m.resize()
		}
		return cmd
	}

	switch m.route {
	case routeAdmin:
		if m.admin != nil {
			return m.admin.Update(msg)
		}
	default:
		if key.Matches(msg, m.keys.QuitHome) {
			return m.quit()
		}
		m.landing.handleKey(msg, m.keys)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.admin != nil {
		m.admin.unmount()
	}
	m.log.Info().Int("messages", len(m.chat.messages)).Msg("helpdesk session closed")
	return tea.Quit
}

// navigate mounts the admin console on entry and tears it down on exit.
func (m *Model) navigate(to route) tea.Cmd {
	if to == m.route {
		return nil
	}
	m.log.Debug().Stringer("from", m.route).Stringer("to", to).Msg("navigate")
	m.route = to

	if to != routeAdmin {
		if m.admin != nil {
			m.admin.unmount()
			m.admin = nil
		}
		m.resize()
		return nil
	}

	m.adminEpoch++
	m.admin = newAdminConsole(m.ctx, m.adminEpoch, m.api, m.cfg.UploadDir, m.log)
	m.resize()
	return m.admin.Init()
}

func (m *Model) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyWidth, bodyHeight := m.bodySize()
	if m.chat.open {
		m.chat.setSize(m.chatWidth(), bodyHeight)
	}
	m.landing.setSize(bodyWidth, bodyHeight)
	if m.admin != nil {
		m.admin.setSize(bodyWidth, bodyHeight)
	}
	m.help.Width = m.width
}

// chatWidth is the panel width; narrow terminals give the chat the whole row.
func (m *Model) chatWidth() int {
	if m.width < 72 {
		return m.width
	}
	w := m.width * 2 / 5
	if w < 36 {
		w = 36
	}
	if w > 60 {
		w = 60
	}
	return w
}

func (m *Model) bodySize() (int, int) {
	height := max(m.height-2, 4)
	width := m.width
	if m.chat.open {
		width -= m.chatWidth()
	}
	return max(width, 0), height
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Starting..."
	}

	bodyWidth, bodyHeight := m.bodySize()
	body := ""
	if bodyWidth > 0 {
		page := m.landing.View()
		if m.route == routeAdmin && m.admin != nil {
			page = m.admin.View()
		}
		body = lipgloss.NewStyle().
			Width(bodyWidth).
			Height(bodyHeight).
			MaxWidth(bodyWidth).
			MaxHeight(bodyHeight).
			Render(page)
	}
	if m.chat.open {
		if body == "" {
			body = m.chat.View()
		} else {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.chat.View())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		m.footerView(),
	)
}

func (m Model) headerView() string {
	nav := func(label string, r route) string {
		if m.route == r {
			return navActiveStyle.Render(label)
		}
		return navStyle.Render(label)
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render("🎓 "+collegeName),
		navStyle.Render(" "),
		nav("Home f1", routeLanding),
		nav("Admin f2", routeAdmin),
	)
	right := ansi.Truncate(m.cfg.BackendURL, max(m.width-lipgloss.Width(left)-4, 0), "…")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)
	line := left + navStyle.Render(strings.Repeat(" ", gap)) + navStyle.Render(right)
	return headerStyle.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m Model) footerView() string {
	helpView := m.help.ShortHelpView(m.helpKeys())
	if m.chat.open {
		return ansi.Truncate(helpView, m.width, "…")
	}
	launcher := launcherStyle.Render("💬 Chat ctrl+t")
	if m.chat.pending {
		launcher = launcherStyle.Render("💬 " + m.chat.spinner.View() + " Chat ctrl+t")
	}
	room := max(m.width-lipgloss.Width(launcher)-1, 0)
	helpView = ansi.Truncate(helpView, room, "…")
	gap := max(m.width-lipgloss.Width(helpView)-lipgloss.Width(launcher), 1)
	return helpView + strings.Repeat(" ", gap) + launcher
}

func (m Model) helpKeys() []key.Binding {
	if m.chat.open {
		k := m.chat.keys
		if m.chat.searching {
			return []key.Binding{k.NextMatch, k.PrevMatch, k.PageUp, k.PageDown, k.Close}
		}
		return []key.Binding{k.Send, k.PageUp, k.PageDown, k.Find, k.Copy, k.Export, k.Close, m.keys.Quit}
	}
	bindings := []key.Binding{m.keys.Landing, m.keys.Admin, m.keys.ToggleChat}
	if m.route == routeAdmin && m.admin != nil {
		bindings = append(bindings, m.admin.helpKeys()...)
		return append(bindings, m.keys.Quit)
	}
	return append(bindings, m.keys.Up, m.keys.Down, m.keys.QuitHome)
}
