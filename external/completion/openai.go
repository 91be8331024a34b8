package completion

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gparth254/meet-ai/internal/voice"
	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

const (
	replyMaxTokens   = 150
	replyTemperature = 0.7

	// instructionBudget and userTextBudget bound the prompt in tokens.
	instructionBudget = 2000
	userTextBudget    = 1000

	fallbackEncoding = "cl100k_base"
	charsPerToken    = 4
)

type tokenizer interface {
	Encode(text string, allowedSpecial, disallowedSpecial []string) []int
	Decode(tokens []int) string
}

type OpenAICompleter struct {
	client *openai.Client
	model  string
	enc    tokenizer
}

func NewOpenAICompleter(apiKey, baseURL, model string) *OpenAICompleter {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	var enc tokenizer
	t, err := tiktoken.EncodingForModel(model)
	if err != nil {
		t, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		slog.Warn("tokenizer unavailable, using character estimate", "model", model, "error", err)
	} else {
		enc = t
	}
	return newOpenAICompleter(openai.NewClientWithConfig(cfg), model, enc)
}

func newOpenAICompleter(client *openai.Client, model string, enc tokenizer) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: model, enc: enc}
}

func (c *OpenAICompleter) Complete(ctx context.Context, instructions, userText string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   replyMaxTokens,
		Temperature: replyTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.truncate(instructions, instructionBudget)},
			{Role: openai.ChatMessageRoleUser, Content: c.truncate(userText, userTextBudget)},
		},
	})
	if err != nil {
		return "", asProviderError(err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// truncate cuts text to at most budget tokens.
func (c *OpenAICompleter) truncate(text string, budget int) string {
	if c.enc == nil {
		runes := []rune(text)
		if len(runes) <= budget*charsPerToken {
			return text
		}
		return string(runes[:budget*charsPerToken])
	}
	tokens := c.enc.Encode(text, nil, nil)
	if len(tokens) <= budget {
		return text
	}
	return strings.TrimSpace(c.enc.Decode(tokens[:budget]))
}

func asProviderError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &voice.ProviderError{StatusCode: apiErr.HTTPStatusCode, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &voice.ProviderError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return err
}
