package plugins

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Qix-/tag/taglang"
)

// Exec runs host processes. Child output goes to Output.
type Exec struct {
	Output io.Writer
	Logger *slog.Logger
}

func (e Exec) Plugin(ctx context.Context) (*taglang.Plugin, error) {
	return &taglang.Plugin{
		Name: "exec",
		Commands: map[string]taglang.Command{
			"run":     e.run,
			"capture": e.capture,
			"which":   e.which,
		},
	}, nil
}

func (e Exec) command(ctx context.Context, args []taglang.Located) *exec.Cmd {
	cmd := exec.CommandContext(ctx, args[0].Text)
	for _, arg := range args[1:] {
		cmd.Args = append(cmd.Args, arg.Text)
	}
	cmd.Stderr = e.Output
	if e.Logger != nil {
		e.Logger.DebugContext(ctx, "exec", "args", cmd.Args)
	}
	return cmd
}

func commandFailed(args []taglang.Located, err error) error {
	e := taglang.Errorf(taglang.KindCommandFailed, "command failed: %s: %v", args[0].Text, err)
	e.Err = err
	return e
}

func (e Exec) run(ctx context.Context, call *taglang.Call) (map[string]taglang.Entry, error) {
	if len(call.Args) == 0 {
		return nil, taglang.Errorf(taglang.KindEmptyArguments, "incorrect usage: exec:run <command> [args...]")
	}
	cmd := e.command(ctx, call.Args)
	cmd.Stdout = e.Output
	if err := cmd.Run(); err != nil {
		return nil, commandFailed(call.Args, err)
	}
	return nil, nil
}

func (e Exec) capture(ctx context.Context, call *taglang.Call) (map[string]taglang.Entry, error) {
	if len(call.Args) < 2 {
		return nil, taglang.Errorf(taglang.KindEmptyArguments, "incorrect usage: exec:capture <variable_name> <command> [args...]")
	}
	name := call.Args[0].Text
	if !taglang.ValidIdentifier(name) {
		return nil, taglang.Errorf(taglang.KindInvalidIdentifier, "invalid variable format: %s", name)
	}
	cmd := e.command(ctx, call.Args[1:])
	out := new(bytes.Buffer)
	cmd.Stdout = out
	if err := cmd.Run(); err != nil {
		return nil, commandFailed(call.Args[1:], err)
	}
	return map[string]taglang.Entry{
		name: taglang.Variable{
			Value: taglang.Literals(strings.TrimSpace(out.String())),
		},
	}, nil
}

// which stores the resolved executable path, or an empty value when not found.
func (e Exec) which(ctx context.Context, call *taglang.Call) (map[string]taglang.Entry, error) {
	if len(call.Args) != 2 {
		return nil, taglang.Errorf(taglang.KindUsageError, "incorrect usage: exec:which <variable_name> <program>")
	}
	name := call.Args[0].Text
	if !taglang.ValidIdentifier(name) {
		return nil, taglang.Errorf(taglang.KindInvalidIdentifier, "invalid variable format: %s", name)
	}
	path, err := exec.LookPath(call.Args[1].Text)
	if err != nil {
		return map[string]taglang.Entry{
			name: taglang.Variable{},
		}, nil
	}
	return map[string]taglang.Entry{
		name: taglang.Variable{
			Value: taglang.Literals(path),
		},
	}, nil
}
