package chat

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Message is one turn of the conversation as the backend serializes it.
// Content may carry a small markdown subset (**bold**, "## " headings).
// Messages are immutable once created.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage stamps a user turn with the current instant.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content, Timestamp: time.Now().UTC()}
}

// NewAgentMessage stamps an agent turn with the current instant.
func NewAgentMessage(content string) Message {
	return Message{Role: RoleAgent, Content: content, Timestamp: time.Now().UTC()}
}

// Fixed texts the front-end substitutes when the backend has nothing usable.
const (
	WelcomeText = "👋 Hi! I'm your workspace assistant. I can help you with:\n\n" +
		"📧 **Emails** - See unread, important, or search by sender\n" +
		"📚 **Assignments** - Check what's due soon\n" +
		"📅 **Schedule** - View today's meetings\n\n" +
		"What would you like to know?"

	FallbackReplyText = "Sorry, I couldn't process that request."

	SendErrorText = "❌ Sorry, I encountered an error. Please try again."
)
