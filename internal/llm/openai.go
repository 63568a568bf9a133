package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rgoyal8/surveyor/internal/tools"
	"github.com/rgoyal8/surveyor/internal/types"
)

// Client talks to an OpenAI-compatible chat-completions endpoint with
// function calling. Works against OpenAI, vLLM, and Ollama's /v1 API.
type Client struct {
	endpoint    string
	apiKey      string
	model       string
	temperature float32
	maxTokens   int
	client      *http.Client
}

// NewClient creates a chat-completions client.
func NewClient(endpoint, apiKey, model string, timeout time.Duration, temperature float32, maxTokens int) *Client {
	return &Client{
		endpoint:    strings.TrimRight(endpoint, "/"),
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		client:      &http.Client{Timeout: timeout},
	}
}

type chatFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type chatRequest struct {
	Model       string                 `json:"model"`
	Messages    []chatMessage          `json:"messages"`
	Temperature float32                `json:"temperature"`
	MaxTokens   int                    `json:"max_tokens"`
	Tools       []tools.FunctionSchema `json:"tools,omitempty"`
	ToolChoice  string                 `json:"tool_choice,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content   string         `json:"content"`
			ToolCalls []chatToolCall `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate sends the conversation and tool schemas to the model and parses
// the next step. maxToolCalls is advisory and forwarded as prompt-side
// guidance only; the API itself has no hard cap.
func (c *Client) Generate(ctx context.Context, msgs []types.Message, schemas []tools.FunctionSchema, maxToolCalls int) (*Response, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    convertMessages(msgs),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if len(schemas) > 0 {
		req.Tools = schemas
		req.ToolChoice = "auto"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode failed: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	msg := chatResp.Choices[0].Message
	toolCalls := make([]types.ToolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		toolCalls = append(toolCalls, types.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return &Response{
		Message:        msg.Content,
		ToolCalls:      toolCalls,
		ShouldContinue: shouldContinue(msg.Content, len(toolCalls)),
	}, nil
}

func convertMessages(msgs []types.Message) []chatMessage {
	out := make([]chatMessage, len(msgs))
	for i, m := range msgs {
		out[i] = chatMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			out[i].ToolCalls = append(out[i].ToolCalls, chatToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: chatFunction{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
	}
	return out
}

// Continuation heuristics. These are backend policy, not an engine
// contract: the engine only trusts this hint on passes with no tool calls.
var (
	stopSignals = []string{
		"task completed",
		"analysis complete",
		"plan finished",
		"done",
		"finished",
		"complete",
	}
	continueSignals = []string{
		"let me",
		"i'll",
		"next",
		"now i",
		"continue",
	}
)

// shouldContinue decides the continuation hint for a response. Tool calls
// always continue; otherwise the content is scanned for explicit stop or
// continue signals, defaulting to stop when neither appears.
func shouldContinue(content string, toolCalls int) bool {
	if toolCalls > 0 {
		return true
	}

	lower := strings.ToLower(content)
	for _, signal := range stopSignals {
		if strings.Contains(lower, signal) {
			return false
		}
	}
	for _, signal := range continueSignals {
		if strings.Contains(lower, signal) {
			return true
		}
	}
	return false
}
