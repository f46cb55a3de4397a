package domain

// Message roles for generation prompts.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one prompt message for the generation provider.
type Message struct {
	Role    string
	Content string
}

// GenerationRequest is a completion request to the generation provider.
type GenerationRequest struct {
	Messages    []Message
	Model       string
	Temperature float32
	MaxTokens   int
}
