package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const systemPrompt = "You are a personal finance assistant. You answer questions " +
	"about the user's accounts, transactions, budgets, and spending patterns using " +
	"the provided tools. Be concise and concrete, quote exact amounts from the tool " +
	"results, and never invent numbers. If the data does not answer the question, " +
	"say so."

// maxToolRounds bounds the tool-use loop so a misbehaving model cannot
// keep the request open forever.
const maxToolRounds = 8

var ErrNoAnswer = errors.New("the assistant did not produce an answer")

// Service answers natural-language questions using a language model
// and the read-only tool layer.
type Service struct {
	client    Client
	model     string
	formatter *Formatter
	maxTokens int
}

// NewService creates an assistant service. Amounts in tool results are
// rendered in the given ISO 4217 currency.
func NewService(client Client, model, currency string) *Service {
	if model == "" {
		model = "claude-sonnet-4-5"
	}

	return &Service{
		client:    client,
		model:     model,
		formatter: NewFormatter(currency),
		maxTokens: 1024,
	}
}

// Answer runs the tool-use loop for one user question and returns the
// model's final text.
func (s *Service) Answer(ctx context.Context, db *gorm.DB, userID uuid.UUID, question string) (string, error) {
	tools := NewTools(db, userID, s.formatter, nil)

	messages := []Message{
		{Role: "user", Content: []ContentBlock{{Type: "text", Text: question}}},
	}

	for round := 0; round < maxToolRounds; round++ {
		response, err := s.client.Complete(ctx, MessagesRequest{
			Model:     s.model,
			MaxTokens: s.maxTokens,
			System:    systemPrompt,
			Messages:  messages,
			Tools:     Definitions(),
		})
		if err != nil {
			return "", err
		}

		if response.StopReason != "tool_use" {
			return textOf(response.Content)
		}

		// Execute every requested tool and hand the results back
		messages = append(messages, Message{Role: "assistant", Content: response.Content})

		results := make([]ContentBlock, 0)
		for _, block := range response.Content {
			if block.Type != "tool_use" {
				continue
			}

			result, err := tools.Call(block.Name, block.Input)
			if err != nil {
				log.Error().Str("tool", block.Name).Err(err).Msg("assistant")
				results = append(results, ContentBlock{
					Type:      "tool_result",
					ToolUseID: block.ID,
					Content:   fmt.Sprintf("Error: %v", err),
					IsError:   true,
				})
				continue
			}

			results = append(results, ContentBlock{
				Type:      "tool_result",
				ToolUseID: block.ID,
				Content:   result,
			})
		}

		messages = append(messages, Message{Role: "user", Content: results})
	}

	return "", ErrNoAnswer
}

// textOf joins the text blocks of a response.
func textOf(content []ContentBlock) (string, error) {
	var parts []string
	for _, block := range content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}

	if len(parts) == 0 {
		return "", ErrNoAnswer
	}

	return strings.Join(parts, "\n"), nil
}
