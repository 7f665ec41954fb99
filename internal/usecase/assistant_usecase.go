package usecase

import (
	"context"
	"errors"
	"strings"

	"mentorlink/internal/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var ErrAssistantUnavailable = errors.New("assistant unavailable")

const assistantSystemPrompt = "You are a study assistant for a mentorship " +
	"platform. Answer questions about learning plans, study techniques and " +
	"career growth concisely."

type AssistantUsecase interface {
	Chat(ctx context.Context, message string) (string, error)
}

// Assistant is a stateless proxy to an OpenAI-compatible completion API.
// No history is kept server-side; each call carries a single user message.
type Assistant struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewAssistantUsecase(cfg config.AssistantConfig, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return &Assistant{client: nil, model: cfg.Model, logger: logger}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Assistant{client: openai.NewClientWithConfig(clientCfg), model: cfg.Model, logger: logger}
}

func (a *Assistant) Chat(ctx context.Context, message string) (string, error) {
	if a.client == nil {
		return "", ErrAssistantUnavailable
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assistantSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
	})
	if err != nil {
		a.logger.Warn("assistant completion failed", zap.Error(err))
		return "", ErrAssistantUnavailable
	}
	if len(resp.Choices) == 0 {
		return "", ErrAssistantUnavailable
	}
	return resp.Choices[0].Message.Content, nil
}
