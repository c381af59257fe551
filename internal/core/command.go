package core

import "context"

// CmdRouter dispatches slash commands typed into any transport. The bool
// reports whether the input was a command at all.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

// Command is one slash command. Execute receives the words after the
// command name.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
