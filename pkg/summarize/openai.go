package summarize

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are an AI assistant that helps summarize customer support articles. " +
	"Do not use line breaks and new lines. Article summary must be a single line text."

// OpenAISummarizer summarizes articles through an Azure OpenAI chat
// deployment. Each call is bounded by its own timeout so a slow model cannot
// stall the whole report.
type OpenAISummarizer struct {
	client      *openai.Client
	deployment  string
	callTimeout time.Duration
}

// NewOpenAISummarizer configures the Azure endpoint. baseURL is the resource
// URL and deployment the chat model deployment name.
func NewOpenAISummarizer(apiKey, baseURL, deployment, apiVersion string) *OpenAISummarizer {
	cfg := openai.DefaultAzureConfig(apiKey, baseURL)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}
	return &OpenAISummarizer{
		client:      openai.NewClientWithConfig(cfg),
		deployment:  deployment,
		callTimeout: 30 * time.Second,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.deployment,
		Temperature: 0.7,
		MaxTokens:   800,
		TopP:        0.95,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Summarize this article: \n" + Truncate(text)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
