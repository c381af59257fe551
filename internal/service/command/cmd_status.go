package command

import (
	"context"
	"fmt"
)

type StatusCommand struct {
	persona   string
	engine    EngineView
	formatter *ResponseFormatter
}

func NewStatusCommand(persona string, engine EngineView) *StatusCommand {
	return &StatusCommand{
		persona:   persona,
		engine:    engine,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatusCommand) Name() string {
	return "status"
}

func (c *StatusCommand) Description() string {
	return "Show the persona's current compatibility read of you"
}

func (c *StatusCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	status, message := c.engine.Status()
	return c.formatter.Combine(
		c.formatter.Info("Compatibility Status"),
		c.formatter.Label("Persona", c.persona),
		c.formatter.Label("Status", status),
		c.formatter.Label("Point estimate", fmt.Sprintf("%.3f", c.engine.PointEstimate())),
		message+"\n",
	), nil
}
