package models

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage represents a single message in a chat-completion payload.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}

// AskRequest is the payload sent to the assistant endpoint.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse carries the assistant reply, or a user-facing failure message.
type AskResponse struct {
	Response string `json:"response"`
}

// ChatCompletionRequest is the body posted to the chat-completion API.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// ChatCompletionResponse is the subset of the chat-completion reply we read.
type ChatCompletionResponse struct {
	Choices []struct {
		Message *struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
