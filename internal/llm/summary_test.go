package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChatService struct {
	params   openai.ChatCompletionNewParams
	response *openai.ChatCompletion
	err      error
}

func (m *mockChatService) New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error) {
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func completionWith(text string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: text}},
		},
	}
}

func TestSummarizeSendsFullParameterSet(t *testing.T) {
	chat := &mockChatService{response: completionWith("Revenue is up.")}
	o := &OpenAI{chat: chat, model: "gpt-4o-mini"}

	got, err := o.Summarize(context.Background(), "Revenue: today $120.00")
	require.NoError(t, err)
	assert.Equal(t, "Revenue is up.", got)

	assert.Equal(t, openai.ChatModel("gpt-4o-mini"), chat.params.Model.Value)
	assert.Equal(t, float64(summaryTemperature), chat.params.Temperature.Value)
	assert.Equal(t, int64(summaryMaxTokens), chat.params.MaxTokens.Value)
	require.Len(t, chat.params.Messages.Value, 2, "system message plus user prompt")
}

func TestSummarizeWrapsProviderError(t *testing.T) {
	chat := &mockChatService{err: errors.New("rate limited")}
	o := &OpenAI{chat: chat, model: "gpt-4o-mini"}

	_, err := o.Summarize(context.Background(), "snapshot")
	require.Error(t, err)
	assert.ErrorContains(t, err, "summary generation failed")
}

func TestSummarizeRejectsEmptyCompletion(t *testing.T) {
	chat := &mockChatService{response: completionWith("   ")}
	o := &OpenAI{chat: chat, model: "gpt-4o-mini"}

	_, err := o.Summarize(context.Background(), "snapshot")
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty completion")
}
