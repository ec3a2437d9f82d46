package ui

import (
	"context"
	"sync"
	"testing"

	"campus-helpdesk/internal/backend"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeBackend struct {
	mu sync.Mutex

	chatQueries []string
	uploads     []string
	urls        []string

	chatReply  backend.ChatReply
	chatErr    error
	trainReply backend.TrainReply
	trainErr   error
}

func (f *fakeBackend) Chat(_ context.Context, query string) (backend.ChatReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatQueries = append(f.chatQueries, query)
	return f.chatReply, f.chatErr
}

func (f *fakeBackend) UploadFile(_ context.Context, path string) (backend.TrainReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, path)
	return f.trainReply, f.trainErr
}

func (f *fakeBackend) TrainURL(_ context.Context, rawURL string) (backend.TrainReply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, rawURL)
	return f.trainReply, f.trainErr
}

// collect runs cmd and any batched children, returning the messages that
// belong to this package. Spinner ticks and cursor blinks are dropped.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case chatReplyMsg, chatRevealMsg, chatNoticeMsg, adminResultMsg:
			out = append(out, msg)
		}
	}
	return out
}

// pump feeds every message produced by cmd back through update until it settles.
func pump(t *testing.T, cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	t.Helper()
	pending := []tea.Cmd{cmd}
	for steps := 0; len(pending) > 0; steps++ {
		if steps > 50 {
			t.Fatalf("commands did not settle")
		}
		next := pending[0]
		pending = pending[1:]
		for _, msg := range collect(t, next) {
			pending = append(pending, update(msg))
		}
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}
