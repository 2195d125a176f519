// Package llm wraps the OpenAI chat-completions API for the AI coach.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type Client struct {
	api   *openai.Client
	model string
}

func New(apiKey, model string) *Client {
	return NewWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewWithConfig allows pointing the client at a different endpoint, used by
// tests.
func NewWithConfig(config openai.ClientConfig, model string) *Client {
	return &Client{api: openai.NewClientWithConfig(config), model: model}
}

// PendingToolCall is a function invocation requested by the model that the
// caller must execute before asking for the final reply.
type PendingToolCall struct {
	ID   string
	Name string
	Args json.RawMessage
}

// CoachReply holds either a direct answer or a pending tool call; exactly one
// is set.
type CoachReply struct {
	Content  string
	ToolCall *PendingToolCall
	raw      openai.ChatCompletionMessage
}

// Coach sends the assembled financial context and the user's message to the
// model with the coach tool schema attached. When the model requests tools,
// only the first call is surfaced; the rest are dropped.
func (c *Client) Coach(ctx context.Context, contextPrompt, userMessage string) (*CoachReply, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: contextPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		Tools:       coachTools(),
		ToolChoice:  "auto",
		Temperature: 0.7,
		MaxTokens:   600,
	})
	if err != nil {
		return nil, fmt.Errorf("coach completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return &CoachReply{Content: "Sorry, I could not generate a response."}, nil
	}

	message := resp.Choices[0].Message
	if len(message.ToolCalls) > 0 {
		call := message.ToolCalls[0]
		return &CoachReply{
			ToolCall: &PendingToolCall{
				ID:   call.ID,
				Name: call.Function.Name,
				Args: json.RawMessage(call.Function.Arguments),
			},
			raw: message,
		}, nil
	}

	if message.Content == "" {
		return &CoachReply{Content: "Sorry, I could not generate a response."}, nil
	}
	return &CoachReply{Content: message.Content}, nil
}

// ConfirmTool feeds the tool result back to the model so it can phrase a
// natural-language confirmation. Falls back to the raw result when the model
// returns nothing.
func (c *Client) ConfirmTool(ctx context.Context, contextPrompt, userMessage string, reply *CoachReply, result string) (string, error) {
	if reply.ToolCall == nil {
		return "", fmt.Errorf("no pending tool call to confirm")
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: contextPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
			reply.raw,
			{Role: openai.ChatMessageRoleTool, ToolCallID: reply.ToolCall.ID, Content: result},
		},
		Temperature: 0.7,
		MaxTokens:   300,
	})
	if err != nil {
		return "", fmt.Errorf("tool confirmation completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return result, nil
	}
	return resp.Choices[0].Message.Content, nil
}
