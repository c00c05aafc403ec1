// Package aicontent предоставляет тонкий клиент для генерации текстового
// контента (анализы, планы питания, чат, профили) через OpenAI API.
// Пакет не содержит предметной логики: промпт пользователя передаётся как есть,
// различаются только системные промпты по виду контента.
package aicontent

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client обёртка над go-openai с фиксированной моделью.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient создает новый экземпляр Client.
func NewClient(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Generate генерирует контент указанного вида по промпту пользователя.
// Неизвестный вид контента — ошибка до обращения к API.
func (c *Client) Generate(ctx context.Context, kind Kind, prompt string) (string, error) {
	const op = "aicontent.Generate"

	systemPrompt, ok := systemPrompts[kind]
	if !ok {
		return "", fmt.Errorf("%s: unknown content kind: %s", op, kind)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: empty response from model", op)
	}
	return resp.Choices[0].Message.Content, nil
}
