package transcript

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry. Entries are only ever appended.
type Message struct {
	Text   string
	Sender Sender
}

func UserMessage(text string) Message {
	return Message{Text: text, Sender: SenderUser}
}

func BotMessage(text string) Message {
	return Message{Text: text, Sender: SenderBot}
}
