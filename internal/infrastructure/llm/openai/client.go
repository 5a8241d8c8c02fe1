// Package openai provides a roster Suggester backed by OpenAI.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/tutor-sync/internal/infrastructure/config"
)

const suggestionPrompt = `You match a name from a calendar booking to a list of known students.
Bookings are often made by a parent, use a nickname, or drop a surname.

Name: %q

Candidates (zero-based index, label):
%s

Return ONLY a JSON object {"index": N} where N is the index of the single most
likely candidate, or -1 if none is plausible. No other text.`

// Client implements ports.Suggester using OpenAI chat completions.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI suggester client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	return newClient(openai.DefaultConfig(cfg.APIKey), cfg.Model), nil
}

func newClient(clientCfg openai.ClientConfig, model string) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}
}

// Suggest returns the index of the most likely candidate, or -1.
func (c *Client) Suggest(ctx context.Context, name string, candidates []string) (int, error) {
	if len(candidates) == 0 {
		return -1, nil
	}

	var list strings.Builder
	for i, label := range candidates {
		fmt.Fprintf(&list, "%d\t%s\n", i, label)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(suggestionPrompt, name, list.String()),
			},
		},
		Temperature: 0,
	})
	if err != nil {
		return -1, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return -1, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return -1, fmt.Errorf("parsing suggestion JSON: %w (response: %s)", err, content)
	}

	idx, ok := indexFromJSON(raw.Index)
	if !ok || idx < 0 || idx >= len(candidates) {
		return -1, nil
	}
	return idx, nil
}

// rawSuggestion is the JSON structure returned by the model.
type rawSuggestion struct {
	Index interface{} `json:"index"`
}

// indexFromJSON converts the index field to int (handles strings from LLM).
func indexFromJSON(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
