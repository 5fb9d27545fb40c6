// Package assist wraps a chat-completion model into a coffee machine
// troubleshooting assistant. It serializes the guide catalog into the
// prompt and asks the model to answer conversationally, tagging any
// guides it recommends by id.
package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/KelvinH2322/coffeehelper/internal/logging"
	"github.com/KelvinH2322/coffeehelper/pkg/domain"
	"github.com/KelvinH2322/coffeehelper/pkg/ports"
)

const systemPrompt = `You are an expert Coffee Machine Troubleshooting Assistant.
Help the user diagnose and solve issues with their coffee machine in a
conversational manner. Be empathetic, ask clarifying questions if needed, and
provide clear, step-by-step, actionable advice. If any of the instruction
guides listed below are a strong match for the user's current problem, include
their exact ids in "guideIds" (at most three). If the problem seems to require
internal repairs, advise that professional help might be needed.

Respond with a JSON object: {"response": "<your reply>", "guideIds": ["..."]}.`

// Turn is one exchange in the conversation history.
type Turn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}

// Request carries one user turn plus its context.
type Request struct {
	Message  string
	ImageURI string // optional data URI for a photo of the machine
	History  []Turn
	Machine  *domain.Machine
}

// Response is the assistant's reply. SuggestedGuideIDs only contains
// ids that exist in the catalog; anything else the model invents is
// dropped.
type Response struct {
	Text              string
	SuggestedGuideIDs []string
}

// ChatCompleter is the slice of the OpenAI client the assistant needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Assistant turns troubleshooting requests into chat completions.
type Assistant struct {
	client  ChatCompleter
	catalog ports.GuideCatalog
	model   string
	logger  *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithModel overrides the completion model.
func WithModel(model string) Option {
	return func(a *Assistant) { a.model = model }
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) { a.logger = logger }
}

// New builds an Assistant over a chat client and the guide catalog.
func New(client ChatCompleter, catalog ports.GuideCatalog, opts ...Option) *Assistant {
	a := &Assistant{
		client:  client,
		catalog: catalog,
		model:   openai.GPT4oMini,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewOpenAI builds an Assistant backed by the real OpenAI API.
func NewOpenAI(apiKey string, catalog ports.GuideCatalog, opts ...Option) *Assistant {
	return New(openai.NewClient(apiKey), catalog, opts...)
}

// Troubleshoot sends one turn to the model and returns its reply.
func (a *Assistant) Troubleshoot(ctx context.Context, req Request) (Response, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: a.buildContext(req.Machine)},
	}
	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Text})
	}
	messages = append(messages, a.userMessage(req))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Response{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("chat completion: empty response")
	}

	return a.parseReply(resp.Choices[0].Message.Content), nil
}

func (a *Assistant) buildContext(machine *domain.Machine) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")
	if machine != nil {
		fmt.Fprintf(&b, "The user is working with a %s %s machine. Prioritize advice and guides specific to this machine.\n\n", machine.Brand, machine.Model)
	} else {
		b.WriteString("The user has not specified a machine model. Provide general advice.\n\n")
	}
	b.WriteString("Available instruction guides:\n")
	b.WriteString(a.formatGuides())
	return b.String()
}

func (a *Assistant) formatGuides() string {
	guides := a.catalog.List(domain.GuideFilter{})
	if len(guides) == 0 {
		return "No specific instruction guides available."
	}
	parts := make([]string, 0, len(guides))
	for _, g := range guides {
		summary := g.Summary
		if len(summary) > 100 {
			summary = summary[:100] + "..."
		}
		parts = append(parts, fmt.Sprintf("Guide ID: %s\nTitle: %s\nCategory: %s\nMachine: %s %s\nSummary: %s",
			g.ID, g.Title, g.Category, g.MachineBrand, g.MachineModel, summary))
	}
	return strings.Join(parts, "\n---\n")
}

func (a *Assistant) userMessage(req Request) openai.ChatCompletionMessage {
	if req.ImageURI == "" {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.Message}
	}
	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Message},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: req.ImageURI}},
		},
	}
}

type modelReply struct {
	Response string   `json:"response"`
	GuideIDs []string `json:"guideIds"`
}

// parseReply decodes the model's JSON and filters suggested guide ids
// down to ones the catalog actually has. A non-JSON reply is passed
// through as plain text with no suggestions.
func (a *Assistant) parseReply(content string) Response {
	var reply modelReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		a.logger.Warn("assistant reply was not valid JSON, using raw text", "err", err)
		return Response{Text: content}
	}

	out := Response{Text: reply.Response}
	for _, id := range reply.GuideIDs {
		if _, err := a.catalog.Lookup(id); err != nil {
			a.logger.Debug("dropping unknown suggested guide", "guide_id", id)
			continue
		}
		out.SuggestedGuideIDs = append(out.SuggestedGuideIDs, id)
	}
	return out
}
