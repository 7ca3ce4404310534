package taglang

import (
	"context"
	"slices"
)

// Call is the record handed to a command.
type Call struct {
	Location  Location
	Namespace Snapshot
	Args      []Located
}

// Command implements one namespaced method. Returned entries are merged
// into the namespace.
type Command func(ctx context.Context, call *Call) (map[string]Entry, error)

type Registry struct {
	namespaces map[string]map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{
		namespaces: make(map[string]map[string]Command),
	}
}

func (r *Registry) Register(namespace string, commands map[string]Command) error {
	if _, ok := r.namespaces[namespace]; ok {
		return newError(KindNamespaceConflict, Location{}, "attempting to overwrite existing namespace '%s'", namespace)
	}
	table := make(map[string]Command, len(commands))
	for name, cmd := range commands {
		table[name] = cmd
	}
	r.namespaces[namespace] = table
	return nil
}

func (r *Registry) Lookup(namespace string, method string) (Command, error) {
	table, ok := r.namespaces[namespace]
	if !ok {
		return nil, newError(KindUnknownNamespace, Location{}, "unknown namespace: %s", namespace)
	}
	cmd, ok := table[method]
	if !ok || cmd == nil {
		return nil, newError(KindUnknownCommand, Location{}, "unknown command for namespace '%s': %s", namespace, method)
	}
	return cmd, nil
}

func (r *Registry) Namespaces() []string {
	var ret []string
	for name := range r.namespaces {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}
