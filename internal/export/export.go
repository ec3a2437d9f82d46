package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"campus-helpdesk/internal/transcript"
)

// Session identifies one run of the chat widget.
type Session struct {
	ID         string
	BackendURL string
	StartedAt  time.Time
}

type Exporter struct {
	dir string
	now func() time.Time
}

func New(dir string) (*Exporter, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve cwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}
	return &Exporter{dir: dir, now: time.Now}, nil
}

func (e *Exporter) Dir() string {
	return e.dir
}

func (e *Exporter) Export(session Session, messages []transcript.Message) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(e.dir, safeFileName(session.ID)+".md")

	md := BuildSessionMarkdown(session, messages, e.now().UTC())
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func BuildSessionMarkdown(session Session, messages []transcript.Message, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Helpdesk chat " + safeValue(session.ID) + "\n\n")
	b.WriteString("Exported: " + now.Format(time.RFC3339) + "\n\n")
	b.WriteString("```text\n")
	b.WriteString("backend: " + safeValue(session.BackendURL) + "\n")
	if !session.StartedAt.IsZero() {
		b.WriteString("started: " + session.StartedAt.UTC().Format(time.RFC3339) + "\n")
	}
	b.WriteString(fmt.Sprintf("message_count: %d\n", len(messages)))
	b.WriteString("```\n\n")

	body := transcript.Markdown(messages)
	if body == "" {
		body = "_No messages._\n"
	}
	b.WriteString(body)
	return b.String()
}

func safeFileName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "chat"
	}
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")
	return replacer.Replace(s)
}

func safeValue(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "n/a"
	}
	return s
}
