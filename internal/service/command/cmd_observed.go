package command

import (
	"context"
)

type ObservedCommand struct {
	observer  ObserverView
	formatter *ResponseFormatter
}

func NewObservedCommand(observer ObserverView) *ObservedCommand {
	return &ObservedCommand{
		observer:  observer,
		formatter: NewResponseFormatter(),
	}
}

func (c *ObservedCommand) Name() string {
	return "observed"
}

func (c *ObservedCommand) Description() string {
	return "Show what the persona has picked up about you"
}

func (c *ObservedCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Observed So Far"),
		c.observer.Summary()+"\n",
		c.formatter.Tip("Observations accumulate from what you say; keep chatting."),
	), nil
}
