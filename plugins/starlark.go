package plugins

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/Qix-/tag/taglang"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

const StarlarkExt = ".star"

var starlarkFileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// StarlarkLoader loads modules written in Starlark. A module defines
// `namespace` (a dict of entries), and optionally `name` and `commands`
// (a dict of functions taking one call argument).
type StarlarkLoader struct {
	Output io.Writer
	Logger *slog.Logger
}

var _ taglang.Loader = StarlarkLoader{}

var starlarkPredeclared = starlark.StringDict{
	"tag":      starlark.NewBuiltin("tag", starlarkTag),
	"variable": starlark.NewBuiltin("variable", starlarkVariable),
	"getenv": starlarkutil.MakeFunc("getenv", func(name string) string {
		return os.Getenv(name)
	}),
	"exists": starlarkutil.MakeFunc("exists", func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}),
}

func starlarkTag(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	enabled := true
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "enabled?", &enabled); err != nil {
		return nil, err
	}
	return starlarkstruct.FromStringDict(tagConstructor, starlark.StringDict{
		"enabled": starlark.Bool(enabled),
	}), nil
}

func starlarkVariable(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	for i, arg := range args {
		if _, ok := starlark.AsString(arg); !ok {
			return nil, fmt.Errorf("%s: argument %d is %s, want string", b.Name(), i+1, arg.Type())
		}
	}
	return starlarkstruct.FromStringDict(variableConstructor, starlark.StringDict{
		"values": args,
	}), nil
}

func (s StarlarkLoader) thread(ctx context.Context, name string) (*starlark.Thread, func() bool) {
	thread := &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			if s.Output != nil {
				fmt.Fprintln(s.Output, msg)
			}
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	return thread, stop
}

func (s StarlarkLoader) Load(ctx context.Context, name string, path string) (*taglang.Plugin, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	thread, stop := s.thread(ctx, path)
	defer stop()
	globals, err := starlark.ExecFileOptions(starlarkFileOptions, thread, path, src, starlarkPredeclared)
	if err != nil {
		return nil, starlarkError(taglang.KindInvalidPlugin, err)
	}
	if s.Logger != nil {
		s.Logger.DebugContext(ctx, "starlark module loaded", "path", path, "globals", globals.Keys())
	}

	plugin := new(taglang.Plugin)

	if v, ok := globals["name"]; ok {
		str, ok := starlark.AsString(v)
		if !ok {
			return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: name must be a string, got %s", path, v.Type())
		}
		plugin.Name = str
	}

	ns, ok := globals["namespace"]
	if !ok {
		return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: no namespace defined", path)
	}
	plugin.Namespace, err = toEntries(ns, taglang.KindInvalidPlugin, "namespace")
	if err != nil {
		return nil, err
	}

	if v, ok := globals["commands"]; ok {
		dict, ok := v.(*starlark.Dict)
		if !ok {
			return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: commands must be a dict, got %s", path, v.Type())
		}
		plugin.Commands = make(map[string]taglang.Command, dict.Len())
		for _, item := range dict.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: command names must be strings", path)
			}
			fn, ok := item[1].(starlark.Callable)
			if !ok {
				return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: command '%s' is not callable", path, key)
			}
			plugin.Commands[key] = s.command(path, key, fn)
		}
	}

	return plugin, nil
}

func (s StarlarkLoader) command(path string, name string, fn starlark.Callable) taglang.Command {
	return func(ctx context.Context, call *taglang.Call) (map[string]taglang.Entry, error) {
		thread, stop := s.thread(ctx, path+":"+name)
		defer stop()
		arg := starlarkstruct.FromStringDict(callConstructor, starlark.StringDict{
			"args":      toStarlarkValue(call.Args),
			"location":  toStarlarkValue(call.Location),
			"namespace": &namespaceMapping{snapshot: call.Namespace},
		})
		result, err := starlark.Call(thread, fn, starlark.Tuple{arg}, nil)
		if err != nil {
			return nil, starlarkError(taglang.KindCommandFailed, err)
		}
		return toEntries(result, taglang.KindInvalidCallResult, "result")
	}
}

func starlarkError(kind taglang.ErrorKind, err error) error {
	var e *taglang.Error
	if errors.As(err, &e) {
		return err
	}
	msg := err.Error()
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		msg = evalErr.Backtrace()
	}
	ret := taglang.Errorf(kind, "%s", msg)
	ret.Err = err
	return ret
}

// namespaceMapping exposes a call's namespace snapshot to Starlark lazily.
// Tags read as bools and variables as lists of expanded strings.
type namespaceMapping struct {
	snapshot taglang.Snapshot
}

var (
	_ starlark.Mapping  = new(namespaceMapping)
	_ starlark.Iterable = new(namespaceMapping)
	_ starlark.Sequence = new(namespaceMapping)
)

func (n *namespaceMapping) String() string {
	return fmt.Sprintf("<namespace of %d entries>", len(n.snapshot))
}

func (n *namespaceMapping) Type() string {
	return "namespace"
}

func (n *namespaceMapping) Freeze() {}

func (n *namespaceMapping) Truth() starlark.Bool {
	return len(n.snapshot) > 0
}

func (n *namespaceMapping) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: namespace")
}

func (n *namespaceMapping) Len() int {
	return len(n.snapshot)
}

func (n *namespaceMapping) Get(key starlark.Value) (starlark.Value, bool, error) {
	name, ok := starlark.AsString(key)
	if !ok {
		return nil, false, fmt.Errorf("namespace keys must be strings, got %s", key.Type())
	}
	entry, ok := n.snapshot[name]
	if !ok {
		return nil, false, nil
	}
	switch entry := entry.(type) {
	case taglang.Tag:
		return starlark.Bool(entry.Enabled), true, nil
	case taglang.Variable:
		values, err := taglang.ExpandArgs(n.snapshot, entry.Value)
		if err != nil {
			return nil, false, err
		}
		return toStarlarkValue(values), true, nil
	}
	return starlark.None, true, nil
}

func (n *namespaceMapping) Iterate() starlark.Iterator {
	keys := make([]string, 0, len(n.snapshot))
	for key := range n.snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &keyIterator{keys: keys}
}

type keyIterator struct {
	keys []string
}

func (k *keyIterator) Next(p *starlark.Value) bool {
	if len(k.keys) == 0 {
		return false
	}
	*p = starlark.String(k.keys[0])
	k.keys = k.keys[1:]
	return true
}

func (k *keyIterator) Done() {}
