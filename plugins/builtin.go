package plugins

import (
	"context"
	"slices"
	"strings"

	"github.com/Qix-/tag/paths"
	"github.com/Qix-/tag/taglang"
)

// Native modules live under a virtual root so that TAGPATH can order them
// against files on disk.
const (
	BuiltinRoot = "@builtin/"
	BuiltinExt  = ".go"
)

type Builtin func(ctx context.Context) (*taglang.Plugin, error)

type Builtins map[string]Builtin

var (
	_ paths.Prober   = Builtins(nil)
	_ taglang.Loader = Builtins(nil)
)

func (b Builtins) lookup(path string) (Builtin, bool) {
	rest, ok := strings.CutPrefix(path, BuiltinRoot)
	if !ok {
		return nil, false
	}
	name, ok := strings.CutSuffix(rest, BuiltinExt)
	if !ok {
		return nil, false
	}
	builtin, ok := b[name]
	return builtin, ok && builtin != nil
}

func (b Builtins) Probe(ctx context.Context, path string) (bool, error) {
	_, ok := b.lookup(path)
	return ok, nil
}

func (b Builtins) Load(ctx context.Context, name string, path string) (*taglang.Plugin, error) {
	builtin, ok := b.lookup(path)
	if !ok {
		return nil, taglang.Errorf(taglang.KindUnsupportedModuleFormat,
			"resolved a 'USE %s' statement to '%s' but it's not a supported format", name, path)
	}
	return builtin(ctx)
}

// Prober answers for paths under BuiltinRoot and defers the rest to fallback.
func (b Builtins) Prober(fallback paths.Prober) paths.Prober {
	return paths.Prefixed{
		Prefix:   BuiltinRoot,
		Prober:   b,
		Fallback: fallback,
	}
}

func (b Builtins) Names() []string {
	var ret []string
	for name := range b {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}
