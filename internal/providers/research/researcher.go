package research

import (
	"context"
	"fmt"

	"github.com/duetsim/duet/internal/core"
	"github.com/duetsim/duet/pkg/log"
)

// ToolSource is the slice of Service the researcher loop needs.
type ToolSource interface {
	GetTools(ctx context.Context) ([]core.Tool, error)
	CallTool(ctx context.Context, name string, args string) (string, error)
}

// maxResearchSteps caps the tool-calling loop per research request.
const maxResearchSteps = 8

var _ core.Researcher = (*Researcher)(nil)

// Researcher asks the model to profile a persona's dialogue partner before
// the first turn, letting it call the configured search tools until it
// answers in plain text.
type Researcher struct {
	ai    core.AIProvider
	tools ToolSource
}

func NewResearcher(ai core.AIProvider, tools ToolSource) *Researcher {
	return &Researcher{ai: ai, tools: tools}
}

func (r *Researcher) Research(ctx context.Context, personName string) (string, error) {
	logger := log.FromCtx(ctx)

	prompt := fmt.Sprintf(
		"Research information about a person named %s. Find their background, interests, and any notable achievements.",
		personName,
	)
	messages := []core.Message{{Role: core.RoleUser, Content: prompt}}

	var finalContent string

	for step := 0; step < maxResearchSteps; step++ {
		tools, err := r.tools.GetTools(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get tools: %w", err)
		}

		responseMsg, err := r.ai.Chat(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("ai chat error: %w", err)
		}
		messages = append(messages, responseMsg)

		if responseMsg.Content != "" {
			finalContent = responseMsg.Content
		}

		if len(responseMsg.ToolCalls) == 0 {
			return finalContent, nil
		}

		for _, tc := range responseMsg.ToolCalls {
			logger.Info().Str("tool", tc.Function.Name).Msg("executing research tool")

			result, err := r.tools.CallTool(ctx, tc.Function.Name, tc.Function.Arguments)
			if err != nil {
				result = fmt.Sprintf("Error executing tool: %v", err)
			}
			messages = append(messages, core.Message{
				Role:       core.RoleTool,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	if finalContent != "" {
		return finalContent, nil
	}
	return "", fmt.Errorf("research did not finish within %d steps", maxResearchSteps)
}
