package ui

import (
	"context"
	"path/filepath"
	"strings"

	"campus-helpdesk/internal/backend"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

// Trainer feeds new material into the knowledge base.
type Trainer interface {
	UploadFile(ctx context.Context, path string) (backend.TrainReply, error)
	TrainURL(ctx context.Context, rawURL string) (backend.TrainReply, error)
}

type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// UploadStatus is the banner shown under the active form.
type UploadStatus struct {
	Kind    StatusKind
	Message string
}

type adminMode int

const (
	modeFile adminMode = iota
	modeURL
)

func (m adminMode) String() string {
	if m == modeURL {
		return "url"
	}
	return "file"
}

var acceptedTypes = []string{".pdf", ".txt", ".docx"}

const (
	msgNoFile       = "Please select a file first."
	msgNoURL        = "Please enter a URL first."
	msgUploading    = "Uploading and processing..."
	msgCrawling     = "Crawling and processing URL..."
	msgUploadFailed = "Upload failed."
	msgTrainFailed  = "URL training failed."
	msgUnsupported  = "Unsupported file type. Supported formats: PDF, TXT, DOCX."
	msgSynced       = "Knowledge base updated."
)

// adminResultMsg carries the epoch of the console that issued the request.
type adminResultMsg struct {
	epoch int
	mode  adminMode
	reply backend.TrainReply
	err   error
}

type adminConsole struct {
	ctx     context.Context
	cancel  context.CancelFunc
	epoch   int
	trainer Trainer
	log     zerolog.Logger
	keys    adminKeyMap

	mode    adminMode
	loading bool
	file    string
	status  UploadStatus

	picker  filepicker.Model
	url     textinput.Model
	spinner spinner.Model

	width  int
	height int
}

func newAdminConsole(parent context.Context, epoch int, trainer Trainer, startDir string, log zerolog.Logger) *adminConsole {
	ctx, cancel := context.WithCancel(parent)

	fp := filepicker.New()
	fp.AllowedTypes = acceptedTypes
	fp.CurrentDirectory = startDir
	fp.AutoHeight = false
	fp.Height = 8

	ti := textinput.New()
	ti.Placeholder = "https://example.edu/admissions"
	ti.Prompt = "🔗 "
	ti.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Line

	return &adminConsole{
		ctx:     ctx,
		cancel:  cancel,
		epoch:   epoch,
		trainer: trainer,
		log:     log.With().Int("admin_epoch", epoch).Logger(),
		keys:    defaultAdminKeys(),
		status:  UploadStatus{Kind: StatusIdle},
		picker:  fp,
		url:     ti,
		spinner: sp,
	}
}

func (a *adminConsole) Init() tea.Cmd {
	return a.picker.Init()
}

// unmount abandons any request still in flight.
func (a *adminConsole) unmount() {
	a.cancel()
}

func (a *adminConsole) setSize(width, height int) {
	a.width = width
	a.height = height
	a.url.Width = max(width-12, 10)
	// title block, tabs, labels, button and status banner
	a.picker.Height = max(height-18, 3)
}

func (a *adminConsole) SelectMode(mode adminMode) tea.Cmd {
	a.mode = mode
	if mode == modeURL {
		return a.url.Focus()
	}
	a.url.Blur()
	return nil
}

func (a *adminConsole) SelectFile(path string) {
	a.file = path
}

// SubmitActive submits whichever form the current tab shows.
func (a *adminConsole) SubmitActive() tea.Cmd {
	if a.mode == modeURL {
		return a.SubmitURL()
	}
	return a.SubmitFile()
}

func (a *adminConsole) SubmitFile() tea.Cmd {
	if a.loading {
		return nil
	}
	if a.file == "" {
		a.status = UploadStatus{Kind: StatusError, Message: msgNoFile}
		return nil
	}
	a.loading = true
	a.status = UploadStatus{Kind: StatusInfo, Message: msgUploading}
	a.log.Info().Str("file", filepath.Base(a.file)).Msg("uploading knowledge file")

	trainer, ctx, epoch, path := a.trainer, a.ctx, a.epoch, a.file
	upload := func() tea.Msg {
		reply, err := trainer.UploadFile(ctx, path)
		return adminResultMsg{epoch: epoch, mode: modeFile, reply: reply, err: err}
	}
	return tea.Batch(upload, a.spinner.Tick)
}

func (a *adminConsole) SubmitURL() tea.Cmd {
	if a.loading {
		return nil
	}
	raw := strings.TrimSpace(a.url.Value())
	if raw == "" {
		a.status = UploadStatus{Kind: StatusError, Message: msgNoURL}
		return nil
	}
	a.loading = true
	a.status = UploadStatus{Kind: StatusInfo, Message: msgCrawling}
	a.log.Info().Str("url", raw).Msg("training from url")

	trainer, ctx, epoch := a.trainer, a.ctx, a.epoch
	train := func() tea.Msg {
		reply, err := trainer.TrainURL(ctx, raw)
		return adminResultMsg{epoch: epoch, mode: modeURL, reply: reply, err: err}
	}
	return tea.Batch(train, a.spinner.Tick)
}

func (a *adminConsole) applyResult(msg adminResultMsg) {
	defer func() { a.loading = false }()

	if msg.err != nil {
		fallback := msgUploadFailed
		if msg.mode == modeURL {
			fallback = msgTrainFailed
		}
		a.log.Warn().Err(msg.err).Stringer("mode", msg.mode).Msg("training request failed")
		a.status = UploadStatus{Kind: StatusError, Message: backend.MessageOr(msg.err, fallback)}
		return
	}

	text := strings.TrimSpace(msg.reply.Message)
	if text == "" {
		text = msgSynced
	}
	a.status = UploadStatus{Kind: StatusSuccess, Message: text}
	switch msg.mode {
	case modeFile:
		a.file = ""
	case modeURL:
		a.url.SetValue("")
	}
}

func (a *adminConsole) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case adminResultMsg:
		a.applyResult(msg)
		return nil
	case spinner.TickMsg:
		if !a.loading || msg.ID != a.spinner.ID() {
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	cmds = append(cmds, cmd)
	a.url, cmd = a.url.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (a *adminConsole) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.SwitchMode):
		if a.mode == modeFile {
			return a.SelectMode(modeURL)
		}
		return a.SelectMode(modeFile)
	case key.Matches(msg, a.keys.Submit):
		return a.SubmitActive()
	}

	if a.mode == modeURL {
		if key.Matches(msg, a.keys.SubmitURL) {
			return a.SubmitURL()
		}
		var cmd tea.Cmd
		a.url, cmd = a.url.Update(msg)
		return cmd
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	if ok, path := a.picker.DidSelectFile(msg); ok {
		a.SelectFile(path)
	} else if ok, path := a.picker.DidSelectDisabledFile(msg); ok {
		a.status = UploadStatus{Kind: StatusError, Message: msgUnsupported + " (" + filepath.Base(path) + ")"}
	}
	return cmd
}

func (a *adminConsole) helpKeys() []key.Binding {
	if a.mode == modeURL {
		return []key.Binding{a.keys.SwitchMode, a.keys.SubmitURL, a.keys.Submit}
	}
	return []key.Binding{a.keys.SwitchMode, a.keys.Browse, a.keys.Pick, a.keys.Submit}
}

func (a *adminConsole) View() string {
	width := max(a.width-4, 20)

	tabs := lipgloss.JoinHorizontal(lipgloss.Bottom,
		tabStyle(a.mode == modeFile).Render("📄 Documents"),
		tabStyle(a.mode == modeURL).Render("🌐 Website / URLs"),
	)

	var section string
	if a.mode == modeURL {
		section = lipgloss.JoinVertical(lipgloss.Left,
			"Enter College Website URL or Resource Link:",
			a.url.View(),
			"",
			a.button("Sync Website to AI", "Crawling Data...", strings.TrimSpace(a.url.Value()) != ""),
		)
	} else {
		label := "Upload Training Data"
		if a.file != "" {
			label = "Selected: " + filepath.Base(a.file)
		}
		section = lipgloss.JoinVertical(lipgloss.Left,
			fileLabelStyle.Render(ansi.Truncate(label, width, "…")),
			mutedStyle.Render("Supported formats: PDF, TXT, DOCX"),
			pickerFrameStyle.Render(a.picker.View()),
			a.button("Sync Document to AI", "Syncing Knowledge...", a.file != ""),
		)
	}

	parts := []string{
		adminTitleStyle.Render("AI Training Lab"),
		mutedStyle.Render("Expand the chatbot's knowledge by syncing files or web pages."),
		"",
		tabs,
		"",
		section,
	}
	if banner := a.statusView(width); banner != "" {
		parts = append(parts, "", banner)
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (a *adminConsole) button(label, busy string, ready bool) string {
	switch {
	case a.loading:
		return buttonDisabledStyle.Render(a.spinner.View() + " " + busy)
	case !ready:
		return buttonDisabledStyle.Render(label)
	default:
		return buttonStyle.Render(label + "  ctrl+s")
	}
}

func (a *adminConsole) statusView(width int) string {
	if a.status.Message == "" {
		return ""
	}
	text := ansi.Truncate(a.status.Message, max(width-4, 10), "…")
	switch a.status.Kind {
	case StatusError:
		return statusErrorStyle.Render("✖ " + text)
	case StatusSuccess:
		return statusSuccessStyle.Render("✔ " + text)
	default:
		return statusInfoStyle.Render(text)
	}
}
