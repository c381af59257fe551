package command

import (
	"context"
	"errors"
	"testing"

	"github.com/duetsim/duet/internal/core"
)

type fakeCommand struct {
	name string
	out  string
	err  error
	args []string
}

func (f *fakeCommand) Name() string        { return f.name }
func (f *fakeCommand) Description() string { return "fake" }

func (f *fakeCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	f.args = args
	return f.out, f.err
}

func TestRouterExecute(t *testing.T) {
	echo := &fakeCommand{name: "echo", out: "done"}
	boom := &fakeCommand{name: "boom", err: errors.New("kaput")}
	r := New([]core.Command{echo, boom})

	if _, handled := r.Execute(context.Background(), "s1", "just chatting"); handled {
		t.Error("plain text should not be handled as a command")
	}

	out, handled := r.Execute(context.Background(), "s1", "/echo one two")
	if !handled || out != "done" {
		t.Errorf("Execute(/echo) = (%q, %v)", out, handled)
	}
	if len(echo.args) != 2 || echo.args[0] != "one" || echo.args[1] != "two" {
		t.Errorf("args = %v", echo.args)
	}

	out, handled = r.Execute(context.Background(), "s1", "/boom")
	if !handled || out != "Error: kaput" {
		t.Errorf("Execute(/boom) = (%q, %v)", out, handled)
	}

	out, handled = r.Execute(context.Background(), "s1", "/nope")
	if !handled || out != "Unknown command: /nope" {
		t.Errorf("Execute(/nope) = (%q, %v)", out, handled)
	}
}

func TestRouterListCommandsSorted(t *testing.T) {
	r := New([]core.Command{
		&fakeCommand{name: "zeta"},
		&fakeCommand{name: "alpha"},
		&fakeCommand{name: "mid"},
	})

	list := r.ListCommands()
	want := []string{"alpha", "mid", "zeta"}
	if len(list) != len(want) {
		t.Fatalf("ListCommands returned %d commands, want %d", len(list), len(want))
	}
	for i, cmd := range list {
		if cmd.Name() != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, cmd.Name(), want[i])
		}
	}
}
