package llm

import (
	"context"
	"fmt"
	"regexp"

	openai "github.com/sashabaranov/go-openai"
)

var titleCleaner = regexp.MustCompile(`[^a-zA-Z0-9 ':,;-]+`)

// GenerateTitle asks the model for a short conversation title based on the
// opening message.
func (c *Client) GenerateTitle(ctx context.Context, userMessage string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openai.GPT3Dot5Turbo,
		MaxTokens:   20,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a helpful assistant that generates short, descriptive titles for financial advice chat conversations. Keep it under 5 words using only alphanumeric characters.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Create a short title for this chat: %q", userMessage),
			},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) > 0 && resp.Choices[0].Message.Content != "" {
		return titleCleaner.ReplaceAllString(resp.Choices[0].Message.Content, ""), nil
	}
	return "New Chat", nil
}
