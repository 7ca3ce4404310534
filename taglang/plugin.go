package taglang

import "context"

// Plugin is what a loaded module contributes.
type Plugin struct {
	// key for Commands; defaults to the name given to USE
	Name      string
	Namespace map[string]Entry
	Commands  map[string]Command
}

// Loader loads the module at a resolved path. name is the name given to USE.
type Loader interface {
	Load(ctx context.Context, name string, path string) (*Plugin, error)
}

type LoaderFunc func(ctx context.Context, name string, path string) (*Plugin, error)

var _ Loader = LoaderFunc(nil)

func (f LoaderFunc) Load(ctx context.Context, name string, path string) (*Plugin, error) {
	return f(ctx, name, path)
}
