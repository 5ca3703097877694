package chat

// Category groups a suggestion by the part of the workspace it targets.
type Category string

const (
	CategoryMail       Category = "mail"
	CategoryAssignment Category = "assignment"
	CategoryMeeting    Category = "meeting"
	CategoryGeneric    Category = "generic"
)

// Suggestion is one prompt chip offered to the user.
type Suggestion struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// MaxSuggestions caps how many chips are offered at once.
const MaxSuggestions = 3
