// Package llm generates analysis narratives from a chat-completion model.
package llm

import (
	"context"
	"fmt"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Generator produces a free-text narrative for a prompt. Implementations
// make no guarantee about the phrasing of the response; callers extract
// structure from whatever text comes back.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const systemPrompt = `You are a professional equity analyst. Given a stock's current technical indicators, write a concise analysis covering: a brief summary of the stock, a technical read of the indicators, a recommendation (Buy/Sell/Hold), price targets for the next 3-6 months, key risks, and a suggested portfolio allocation percentage.`

// Client talks to any OpenAI-compatible chat-completion endpoint. Ollama
// serves one at /v1, which is the default target in local deployments.
type Client struct {
	cli   oa.Client
	model string
}

// NewClient creates a generator client. baseURL selects the endpoint (e.g.
// http://localhost:11434/v1 for Ollama); apiKey may be a dummy value for
// servers that do not check it.
func NewClient(baseURL, apiKey, model string) *Client {
	cli := oa.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)
	return &Client{cli: cli, model: model}
}

// Generate requests a narrative for the prompt. Any transport failure or
// empty completion is returned as an error; the orchestrator maps these to
// its narrative-unavailable condition.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: oa.ChatModel(c.model),
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned by %s", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}
