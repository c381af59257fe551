package command

import (
	"context"
	"fmt"
	"strconv"
)

type ProfilesCommand struct {
	store     ProfileLister
	formatter *ResponseFormatter
}

func NewProfilesCommand(store ProfileLister) *ProfilesCommand {
	return &ProfilesCommand{
		store:     store,
		formatter: NewResponseFormatter(),
	}
}

func (c *ProfilesCommand) Name() string {
	return "profiles"
}

func (c *ProfilesCommand) Description() string {
	return "List saved personas"
}

func (c *ProfilesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	profiles, err := c.store.List()
	if err != nil {
		return "", fmt.Errorf("failed to list profiles: %w", err)
	}

	if len(profiles) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Personas"),
			"No profiles saved yet.\n",
			c.formatter.Tip("Create one with `duet wizard`."),
		), nil
	}

	items := make([]string, 0, len(profiles))
	for _, p := range profiles {
		bits := []string{p.Name}
		if p.Age > 0 {
			bits = append(bits, strconv.Itoa(p.Age))
		}
		if p.Occupation != "" {
			bits = append(bits, p.Occupation)
		}
		line := bits[0]
		for _, b := range bits[1:] {
			line += ", " + b
		}
		items = append(items, fmt.Sprintf("`%s`: %s", p.Slug(), line))
	}

	return c.formatter.Combine(
		c.formatter.Info("Personas"),
		c.formatter.List(items),
	), nil
}
