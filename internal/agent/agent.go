package agent

import (
	"context"
	"fmt"

	"github.com/omarvaldez/shopstock-backend/pkg/logger"
	"github.com/omarvaldez/shopstock-backend/pkg/openai"
)

// maxToolRounds caps completion round trips per user turn so a model stuck in
// a tool loop cannot spin forever.
const maxToolRounds = 10

type chatClient interface {
	ChatCompletion(ctx context.Context, messages []openai.Message, tools []openai.ToolDefinition) (*openai.ChatResponse, error)
}

// Agent runs a function-calling conversation over the tool registry. It keeps
// the full message history so follow-up questions have context. Not safe for
// concurrent use; give each conversation its own Agent.
type Agent struct {
	client   chatClient
	registry *Registry
	logg     *logger.Logger
	history  []openai.Message
}

// New builds an agent with a fresh conversation seeded with the system prompt.
func New(client chatClient, registry *Registry, logg *logger.Logger) (*Agent, error) {
	if client == nil {
		return nil, fmt.Errorf("chat client required")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry required")
	}
	return &Agent{
		client:   client,
		registry: registry,
		logg:     logg,
		history:  []openai.Message{{Role: "system", Content: systemPrompt}},
	}, nil
}

// Chat sends one user message and drives the tool loop until the model answers
// with plain content, which is returned.
func (a *Agent) Chat(ctx context.Context, userMessage string) (string, error) {
	a.history = append(a.history, openai.Message{Role: "user", Content: userMessage})
	tools := a.registry.Definitions()

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.ChatCompletion(ctx, a.history, tools)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}

		if len(resp.ToolCalls) == 0 {
			a.history = append(a.history, openai.Message{Role: "assistant", Content: resp.Content})
			return resp.Content, nil
		}

		a.history = append(a.history, openai.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			result := a.runTool(ctx, call)
			a.history = append(a.history, openai.Message{
				Role:       "tool",
				Content:    result,
				ToolCallID: call.ID,
			})
		}
	}

	return "", fmt.Errorf("tool loop exceeded %d rounds", maxToolRounds)
}

// runTool executes one requested call. Failures go back to the model as an
// error payload instead of aborting the conversation; the model can recover or
// apologize.
func (a *Agent) runTool(ctx context.Context, call openai.ToolCall) string {
	if a.logg != nil {
		ctx = a.logg.WithToolName(ctx, call.Function.Name)
	}

	result, err := a.registry.Execute(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		if a.logg != nil {
			a.logg.Warn(ctx, fmt.Sprintf("tool failed: %v", err))
		}
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}

	if a.logg != nil {
		a.logg.Info(ctx, "tool executed")
	}
	return result
}
