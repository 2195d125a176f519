package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI answers every chat completion with the queued responses in
// order.
func fakeOpenAI(t *testing.T, responses ...openai.ChatCompletionResponse) *httptest.Server {
	t.Helper()
	calls := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Less(t, calls, len(responses), "unexpected extra completion request")
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(responses[calls]))
		calls++
	}))
}

func testClient(serverURL string) *Client {
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = serverURL
	return NewWithConfig(cfg, "gpt-4-turbo-preview")
}

func TestCoachDirectAnswer(t *testing.T) {
	server := fakeOpenAI(t, openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "Cut your subscriptions."}},
		},
	})
	defer server.Close()

	reply, err := testClient(server.URL).Coach(context.Background(), "context", "How do I save more?")
	require.NoError(t, err)
	assert.Nil(t, reply.ToolCall)
	assert.Equal(t, "Cut your subscriptions.", reply.Content)
}

func TestCoachSurfacesFirstToolCall(t *testing.T) {
	server := fakeOpenAI(t, openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role: "assistant",
				ToolCalls: []openai.ToolCall{
					{
						ID:   "call-1",
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      ToolCreateGoal,
							Arguments: `{"name":"New PC","targetAmount":1200}`,
						},
					},
					{
						ID:   "call-2",
						Type: openai.ToolTypeFunction,
						Function: openai.FunctionCall{
							Name:      ToolCreateIncome,
							Arguments: `{}`,
						},
					},
				},
			}},
		},
	})
	defer server.Close()

	reply, err := testClient(server.URL).Coach(context.Background(), "context", "Save for a PC")
	require.NoError(t, err)
	require.NotNil(t, reply.ToolCall)
	assert.Equal(t, "call-1", reply.ToolCall.ID)
	assert.Equal(t, ToolCreateGoal, reply.ToolCall.Name)

	var args CreateGoalArgs
	require.NoError(t, json.Unmarshal(reply.ToolCall.Args, &args))
	assert.Equal(t, "New PC", args.Name)
	assert.Equal(t, 1200.0, args.TargetAmount)
}

func TestConfirmToolFallsBackToResult(t *testing.T) {
	server := fakeOpenAI(t,
		openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{
					Role: "assistant",
					ToolCalls: []openai.ToolCall{
						{
							ID:       "call-1",
							Type:     openai.ToolTypeFunction,
							Function: openai.FunctionCall{Name: ToolCreateGoal, Arguments: `{"name":"Trip","targetAmount":500}`},
						},
					},
				}},
			},
		},
		// Second completion returns no content, forcing the fallback.
		openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: ""}},
			},
		},
	)
	defer server.Close()

	client := testClient(server.URL)
	reply, err := client.Coach(context.Background(), "context", "Save for a trip")
	require.NoError(t, err)
	require.NotNil(t, reply.ToolCall)

	final, err := client.ConfirmTool(context.Background(), "context", "Save for a trip", reply, `Goal "Trip" created successfully.`)
	require.NoError(t, err)
	assert.Equal(t, `Goal "Trip" created successfully.`, final)
}

func TestGenerateTitleStripsDisallowedCharacters(t *testing.T) {
	server := fakeOpenAI(t, openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: "assistant", Content: `"Budget Help!?"`}},
		},
	})
	defer server.Close()

	title, err := testClient(server.URL).GenerateTitle(context.Background(), "How do I budget?")
	require.NoError(t, err)
	assert.Equal(t, "Budget Help", title)
}
