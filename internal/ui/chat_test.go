package ui

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"campus-helpdesk/internal/backend"
	"campus-helpdesk/internal/export"
	"campus-helpdesk/internal/transcript"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestChat(t *testing.T, api Asker, delay time.Duration) *chatWidget {
	t.Helper()
	exp, err := export.New(t.TempDir())
	require.NoError(t, err)
	c := newChatWidget(context.Background(), api, exp, export.Session{ID: "test-session"}, delay, "notty", zerolog.Nop())
	return &c
}

func TestChatStartsWithGreeting(t *testing.T) {
	c := newTestChat(t, &fakeBackend{}, 0)

	require.False(t, c.open)
	require.False(t, c.pending)
	require.Len(t, c.messages, 1)
	require.Equal(t, transcript.SenderBot, c.messages[0].Sender)
	require.Equal(t, chatGreeting, c.messages[0].Text)
}

func TestChatSendAppendsQuestionAndAnswer(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "We offer B.Sc, B.Com and BCA."}}
	c := newTestChat(t, api, 0)
	c.Toggle()

	cmd := c.Send("What courses are offered?")
	require.True(t, c.pending)
	require.Equal(t, transcript.UserMessage("What courses are offered?"), c.messages[1])
	require.Empty(t, c.input.Value())

	pump(t, cmd, c.Update)

	require.False(t, c.pending)
	require.Len(t, c.messages, 3)
	require.Equal(t, transcript.BotMessage("We offer B.Sc, B.Com and BCA."), c.messages[2])
	require.Equal(t, []string{"What courses are offered?"}, api.chatQueries)
}

func TestChatSendKeepsQuestionVerbatim(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "ok"}}
	c := newTestChat(t, api, 0)

	pump(t, c.Send("  fees?  "), c.Update)

	require.Equal(t, []string{"  fees?  "}, api.chatQueries)
	require.Equal(t, "  fees?  ", c.messages[1].Text)
}

func TestChatIgnoresBlankInput(t *testing.T) {
	api := &fakeBackend{}
	c := newTestChat(t, api, 0)

	for _, text := range []string{"", "   ", "\n\t"} {
		require.Nil(t, c.Send(text))
	}
	require.Len(t, c.messages, 1)
	require.False(t, c.pending)
	require.Empty(t, api.chatQueries)
}

func TestChatIgnoresSendWhilePending(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "first"}}
	c := newTestChat(t, api, 0)

	first := c.Send("one")
	require.NotNil(t, first)
	require.Nil(t, c.Send("two"))
	require.Len(t, c.messages, 2)

	pump(t, first, c.Update)
	require.Equal(t, []string{"one"}, api.chatQueries)
	require.Len(t, c.messages, 3)
}

func TestChatFailureShowsFallback(t *testing.T) {
	api := &fakeBackend{chatErr: &backend.Error{Kind: backend.KindNetwork, Err: errors.New("connection refused")}}
	c := newTestChat(t, api, 0)

	pump(t, c.Send("hello"), c.Update)

	require.False(t, c.pending)
	last := c.messages[len(c.messages)-1]
	require.Equal(t, transcript.SenderBot, last.Sender)
	require.Equal(t, chatFallback, last.Text)
}

func TestChatRevealWaitsForDelay(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "later"}}
	c := newTestChat(t, api, 20*time.Millisecond)

	msgs := collect(t, c.Send("hi"))
	require.Len(t, msgs, 1)
	reply, ok := msgs[0].(chatReplyMsg)
	require.True(t, ok)

	reveal := c.Update(reply)
	require.NotNil(t, reveal)
	require.True(t, c.pending, "reply stays hidden until the delay elapses")
	require.Len(t, c.messages, 2)

	start := time.Now()
	msgs = collect(t, reveal)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	require.Equal(t, []tea.Msg{chatRevealMsg{text: "later"}}, msgs)

	c.Update(msgs[0])
	require.False(t, c.pending)
	require.Equal(t, "later", c.messages[2].Text)
}

func TestChatTogglePreservesTranscript(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "yes"}}
	c := newTestChat(t, api, 0)

	c.Toggle()
	cmd := c.Send("open?")
	c.Toggle()
	require.False(t, c.open)

	pump(t, cmd, c.Update)
	c.Toggle()

	require.True(t, c.open)
	require.Len(t, c.messages, 3)
	require.Equal(t, "yes", c.messages[2].Text)
}

func TestChatKeysSendFromInput(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "Fees are listed online."}}
	c := newTestChat(t, api, 0)
	c.Toggle()

	c.Update(keyRunes("fees"))
	require.Equal(t, "fees", c.input.Value())

	pump(t, c.Update(keyType(tea.KeyEnter)), c.Update)
	require.Equal(t, []string{"fees"}, api.chatQueries)
	require.Len(t, c.messages, 3)

	c.Update(keyType(tea.KeyEsc))
	require.False(t, c.open)
}

func TestChatViewportFollowsNewestMessage(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: strings.Repeat("line\n\n", 20)}}
	c := newTestChat(t, api, 0)
	c.setSize(40, 12)

	for i := 0; i < 3; i++ {
		pump(t, c.Send("more"), c.Update)
	}
	require.True(t, c.viewport.AtBottom())
	require.Contains(t, c.View(), "Student Helpdesk")
}

func TestChatExportWritesTranscript(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "We offer BCA."}}
	c := newTestChat(t, api, 0)
	pump(t, c.Send("courses?"), c.Update)

	pump(t, c.exportCmd(), c.Update)

	require.True(t, strings.HasPrefix(c.notice, "Exported: "), c.notice)
	raw, err := os.ReadFile(strings.TrimPrefix(c.notice, "Exported: "))
	require.NoError(t, err)
	require.Contains(t, string(raw), "We offer BCA.")
	require.Contains(t, string(raw), "> courses?")
}

func TestChatExportWithoutExporter(t *testing.T) {
	c := newTestChat(t, &fakeBackend{}, 0)
	c.exporter = nil

	require.Nil(t, c.exportCmd())
	require.Equal(t, "Export is not configured", c.notice)
}

func TestChatFindHighlightsAndReturns(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "Hostel fees are due in June."}}
	c := newTestChat(t, api, 0)
	c.Toggle()
	pump(t, c.Send("fees?"), c.Update)

	c.Update(keyType(tea.KeyCtrlF))
	require.True(t, c.searching)

	c.Update(keyRunes("june"))
	require.Equal(t, 1, c.matches.Count)
	require.Equal(t, 0, c.matchAt)

	c.Update(keyType(tea.KeyEnter))
	require.Len(t, api.chatQueries, 1, "enter moves between matches while searching")

	c.Update(keyType(tea.KeyEsc))
	require.False(t, c.searching)
	require.True(t, c.open)
	require.Empty(t, c.query.Value())
	require.True(t, c.viewport.AtBottom())
}

func TestChatFindPositionFollowsTranscriptChanges(t *testing.T) {
	api := &fakeBackend{chatReply: backend.ChatReply{Answer: "Fees are due in June."}}
	c := newTestChat(t, api, 0)
	c.Toggle()
	inflight := c.Send("fees?")

	c.Update(keyType(tea.KeyCtrlF))
	c.Update(keyRunes("thinking"))
	require.Equal(t, 1, c.matches.Count)
	require.Equal(t, 0, c.matchAt)

	pump(t, inflight, c.Update)

	require.Zero(t, c.matches.Count)
	require.Equal(t, -1, c.matchAt)
	require.Equal(t, "no matches", c.matchSummary())

	c.Update(keyType(tea.KeyCtrlP))
	require.Equal(t, -1, c.matchAt)
}
