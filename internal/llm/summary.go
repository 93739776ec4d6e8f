package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
)

// Compile-time interface check
var _ Summarizer = (*OpenAI)(nil)

// Summarizer turns a business snapshot description into prose.
type Summarizer interface {
	Summarize(ctx context.Context, snapshot string) (string, error)
}

// ChatService defines the interface for making chat completion calls.
// This abstraction enables testing without calling the real OpenAI API.
type ChatService interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

const systemPrompt = "You are an assistant for a small-business admin dashboard. " +
	"Summarize the business snapshot you are given in two or three short sentences " +
	"for the owner: revenue, client movement, goal progress. Plain language, no markdown."

// The summary is a short factual digest. Low temperature keeps it grounded
// in the numbers; the token cap bounds both latency and cost.
const (
	summaryTemperature = 0.3
	summaryMaxTokens   = 300
)

// OpenAI implements Summarizer over the OpenAI chat completions API.
type OpenAI struct {
	chat  ChatService
	model openai.ChatModel
	m     *metrics.Metrics
}

// NewOpenAI creates a summarizer bound to one model.
func NewOpenAI(apiKey, model string, m *metrics.Metrics) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
		m:     m,
	}
}

// Summarize sends the snapshot and returns the model's plain-text summary.
func (o *OpenAI) Summarize(ctx context.Context, snapshot string) (string, error) {
	start := time.Now()
	resp, err := o.chat.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.F(o.model),
		Temperature: openai.F(summaryTemperature),
		MaxTokens:   openai.F(int64(summaryMaxTokens)),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(snapshot),
		}),
	})
	if o.m != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		o.m.LLMLatency.WithLabelValues(status).Observe(time.Since(start).Seconds())
		o.m.LLMRequests.WithLabelValues(status).Inc()
	}
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summary generation failed: no choices returned")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("summary generation failed: empty completion")
	}
	return text, nil
}
