package agent

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is a provider-neutral completion request.
type Request struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	Temperature  float64
	MaxTokens    int
}

// Usage reports token counts for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response is a provider-neutral completion.
type Response struct {
	Content string
	Usage   Usage
}
