package command

import (
	"context"
	"fmt"
	"strings"
)

type FactorsCommand struct {
	persona    string
	engine     EngineView
	sampleSize int
	formatter  *ResponseFormatter
}

func NewFactorsCommand(persona string, engine EngineView, sampleSize int) *FactorsCommand {
	return &FactorsCommand{
		persona:    persona,
		engine:     engine,
		sampleSize: sampleSize,
		formatter:  NewResponseFormatter(),
	}
}

func (c *FactorsCommand) Name() string {
	return "factors"
}

func (c *FactorsCommand) Description() string {
	return "Break the compatibility belief down per factor"
}

func (c *FactorsCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	view := c.engine.FactorView(c.sampleSize)
	items := make([]string, 0, len(view))
	for _, f := range view {
		items = append(items, fmt.Sprintf("%s (w=%.2f): mean=%.3f, 90%% CI [%.3f, %.3f]",
			strings.ReplaceAll(f.Name, "_", " "), f.Weight, f.Mean, f.Low, f.High))
	}

	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("%s's Factor Beliefs", c.persona)),
		c.formatter.List(items),
	), nil
}
