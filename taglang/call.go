package taglang

import (
	"context"
	"slices"
	"strings"
)

// Call dispatches namespace:method and merges the returned entries.
func (c *Context) Call(ctx context.Context, namespace string, method string, args []Located, loc Location) error {
	cmd, err := c.registry.Lookup(namespace, method)
	if err != nil {
		return WithLocation(err, loc)
	}

	c.logger.DebugContext(ctx, "call",
		"namespace", namespace,
		"method", method,
		"args", texts(args),
	)
	results, err := cmd(ctx, &Call{
		Location:  loc,
		Namespace: c.ns.Snapshot(),
		Args:      args,
	})
	if err != nil {
		return WithLocation(err, loc)
	}

	return c.merge(results, loc, func(key string) *Error {
		return newError(KindInvalidCallResult, loc,
			"bad CALL to '%s:%s': result '%s' is not a valid namespace element",
			namespace, method, key)
	})
}

func (c *Context) merge(entries map[string]Entry, loc Location, invalid func(key string) *Error) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		entry := entries[key]
		if entry == nil {
			return invalid(key)
		}
		switch entry.(type) {
		case Tag, Variable:
		default:
			return invalid(key)
		}
		if err := c.ns.Set(key, entry, loc); err != nil {
			return err
		}
	}
	return nil
}

// splitMethod splits on the final colon.
func splitMethod(target string) (namespace string, method string) {
	i := strings.LastIndexByte(target, ':')
	if i < 0 {
		return "", target
	}
	return target[:i], target[i+1:]
}
