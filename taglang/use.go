package taglang

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/Qix-/tag/paths"
)

// Use resolves name against TAGPATH and loads the module found.
func (c *Context) Use(ctx context.Context, name string, loc Location) error {
	entry, ok := c.ns.Get(TagpathName)
	tagpath, isVar := entry.(Variable)
	if !ok || !isVar {
		return newError(KindTagpathMissing, loc, "%s is not set or is not a variable; cannot USE anything!", TagpathName)
	}

	list, err := ExpandFullText(c.ns, tagpath.Value)
	if err != nil {
		return WithLocation(err, loc)
	}
	list = strings.TrimSpace(list)
	if list == "" {
		return newError(KindTagpathEmpty, loc, "%s is set but empty; cannot USE anything!", TagpathName)
	}

	resolution, err := paths.Resolve(ctx, name, list, c.prober, c.concurrency)
	if err != nil {
		return WithLocation(err, loc)
	}
	if resolution.Path == "" {
		e := newError(KindModuleNotFound, loc, "could not USE '%s' - could not be resolved", name)
		e.Tried = resolution.Tried
		return e
	}
	resolved := resolution.Path
	c.logger.DebugContext(ctx, "resolve", "name", name, "path", resolved)

	ext := filepath.Ext(resolved)
	if ext == TagfileExt {
		return c.include(ctx, resolved, loc)
	}

	loader, ok := c.loaders[ext]
	if !ok {
		return newError(KindUnsupportedModuleFormat, loc,
			"resolved a 'USE %s' statement to '%s' but it's not a supported format", name, resolved)
	}

	plugin, err := loader.Load(ctx, name, resolved)
	if err != nil {
		return WithLocation(err, loc)
	}
	if plugin == nil {
		return newError(KindInvalidPlugin, loc, "invalid plugin: nothing loaded from %s", resolved)
	}

	if err := c.merge(plugin.Namespace, loc, func(key string) *Error {
		return newError(KindInvalidPlugin, loc, "plugin namespace entry '%s' is not a valid namespace element: %s", key, resolved)
	}); err != nil {
		return err
	}

	if len(plugin.Commands) > 0 {
		key := plugin.Name
		if key == "" {
			key = name
		}
		if err := c.registry.Register(key, plugin.Commands); err != nil {
			return WithLocation(err, loc)
		}
		c.logger.DebugContext(ctx, "register", "namespace", key, "path", resolved)
	}

	return nil
}

func (c *Context) include(ctx context.Context, path string, loc Location) error {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	if c.including[key] {
		return newError(KindUsageError, loc, "recursive USE of %s", path)
	}
	c.including[key] = true
	defer delete(c.including, key)

	content, err := os.ReadFile(path)
	if err != nil {
		return WithLocation(err, loc)
	}

	restore := c.ns.Nest()
	defer restore()
	return c.RunSource(ctx, path, string(content))
}
