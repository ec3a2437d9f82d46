package transcript

import "strings"

const (
	userHeading = "## You"
	botHeading  = "## Helpdesk"
)

// Markdown renders messages in order, one section per message.
func Markdown(messages []Message) string {
	var b strings.Builder
	for _, m := range messages {
		content := strings.TrimSpace(m.Text)
		if content == "" {
			continue
		}
		switch m.Sender {
		case SenderUser:
			b.WriteString(userHeading + "\n\n")
			b.WriteString(quote(content) + "\n\n")
		default:
			b.WriteString(botHeading + "\n\n")
			b.WriteString(content + "\n\n")
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return ""
	}
	return out + "\n"
}

// LastFrom returns the newest message sent by sender.
func LastFrom(messages []Message, sender Sender) (Message, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Sender == sender {
			return messages[i], true
		}
	}
	return Message{}, false
}

func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}
