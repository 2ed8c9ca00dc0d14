package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"portfolio-site/internal/models"
)

// DefaultAssistantTimeout bounds each outbound chat-completion call.
const DefaultAssistantTimeout = 30 * time.Second

const (
	assistantTemperature = 0.7
	assistantMaxTokens   = 150
	maxResponseBytes     = 1 << 20
	excerptLength        = 200
)

// AssistantCategory classifies why an assistant call failed.
type AssistantCategory int

const (
	CategoryConfig AssistantCategory = iota + 1
	CategoryHTTP
	CategoryConnection
	CategoryTimeout
	CategoryMalformed
	CategoryUnexpected
)

func (c AssistantCategory) String() string {
	switch c {
	case CategoryConfig:
		return "config"
	case CategoryHTTP:
		return "http"
	case CategoryConnection:
		return "connection"
	case CategoryTimeout:
		return "timeout"
	case CategoryMalformed:
		return "malformed"
	case CategoryUnexpected:
		return "unexpected"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// UserMessage is the text shown to the visitor for this failure.
func (c AssistantCategory) UserMessage() string {
	switch c {
	case CategoryConfig:
		return "Server configuration error: the AI assistant is not available right now."
	case CategoryHTTP:
		return "Sorry, there was an error reaching the AI service. Please try again later."
	case CategoryConnection:
		return "Sorry, I couldn't connect to the AI service. Please check your connection and try again."
	case CategoryTimeout:
		return "Sorry, the AI service took too long to respond. Please try again."
	case CategoryMalformed:
		return "Sorry, I received an unexpected response from the AI service."
	}
	return "Sorry, an internal error occurred while processing your request."
}

// AssistantError is the only error type returned by AssistantService.Ask.
type AssistantError struct {
	Category AssistantCategory
	Detail   string
	Err      error
}

func (e *AssistantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("assistant %s: %s: %v", e.Category, e.Detail, e.Err)
	}
	return fmt.Sprintf("assistant %s: %s", e.Category, e.Detail)
}

func (e *AssistantError) Unwrap() error { return e.Err }

type AssistantOptions struct {
	APIKey    string
	BaseURL   string
	Model     string
	Biography string
	// Timeout overrides DefaultAssistantTimeout when positive.
	Timeout time.Duration
}

// AssistantService forwards visitor questions to an OpenAI-compatible
// chat-completion endpoint. It makes exactly one attempt per question.
type AssistantService struct {
	apiKey    string
	endpoint  string
	model     string
	biography string
	client    *http.Client
}

func NewAssistantService(opts AssistantOptions) *AssistantService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultAssistantTimeout
	}
	return &AssistantService{
		apiKey:    opts.APIKey,
		endpoint:  strings.TrimRight(opts.BaseURL, "/") + "/chat/completions",
		model:     opts.Model,
		biography: opts.Biography,
		client:    &http.Client{Timeout: timeout},
	}
}

// Configured reports whether an API credential is available.
func (s *AssistantService) Configured() bool {
	return s.apiKey != ""
}

// BuildMessages assembles the fixed system instruction and the biography-prefixed question.
func BuildMessages(biography, query string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: SystemInstruction},
		{Role: models.RoleUser, Content: biography + "\n\nQuestion: " + query},
	}
}

// Ask sends query to the chat-completion API and returns the first choice's text.
// Every failure is an *AssistantError.
func (s *AssistantService) Ask(ctx context.Context, query string) (string, error) {
	if !s.Configured() {
		return "", &AssistantError{Category: CategoryConfig, Detail: "OPENAI_API_KEY is not set"}
	}

	payload, err := json.Marshal(models.ChatCompletionRequest{
		Model:       s.model,
		Messages:    BuildMessages(s.biography, query),
		Temperature: assistantTemperature,
		MaxTokens:   assistantMaxTokens,
	})
	if err != nil {
		return "", &AssistantError{Category: CategoryUnexpected, Detail: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &AssistantError{Category: CategoryUnexpected, Detail: "build request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", classifyTransportError("send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", classifyTransportError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &AssistantError{
			Category: CategoryHTTP,
			Detail:   fmt.Sprintf("status %d: %s", resp.StatusCode, excerpt(body)),
		}
	}

	var parsed models.ChatCompletionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &AssistantError{Category: CategoryMalformed, Detail: "decode response: " + excerpt(body), Err: err}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message == nil || parsed.Choices[0].Message.Content == nil {
		return "", &AssistantError{Category: CategoryMalformed, Detail: "missing choices[0].message.content: " + excerpt(body)}
	}

	text := strings.TrimSpace(*parsed.Choices[0].Message.Content)
	if text == "" {
		return "", &AssistantError{Category: CategoryMalformed, Detail: "empty message content"}
	}
	return text, nil
}

func classifyTransportError(stage string, err error) *AssistantError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &AssistantError{Category: CategoryTimeout, Detail: stage, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &AssistantError{Category: CategoryTimeout, Detail: stage, Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AssistantError{Category: CategoryUnexpected, Detail: stage + ": caller went away", Err: err}
	}
	return &AssistantError{Category: CategoryConnection, Detail: stage, Err: err}
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	r := []rune(s)
	if len(r) <= excerptLength {
		return s
	}
	return string(r[:excerptLength]) + "..."
}
