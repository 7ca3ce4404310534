package taglang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Qix-/tag/paths"
)

const (
	TagpathName = "TAGPATH"
	TagfileExt  = ".tag"
)

type Options struct {
	Namespace *Namespace
	// keyed by file extension including the dot
	Loaders     map[string]Loader
	Prober      paths.Prober
	Concurrency int
	Output      io.Writer
	Logger      *slog.Logger
}

// Context owns the namespace and command registry of one interpreter run.
type Context struct {
	ns          *Namespace
	registry    *Registry
	loaders     map[string]Loader
	prober      paths.Prober
	concurrency int
	output      io.Writer
	logger      *slog.Logger
	including   map[string]bool
}

func NewContext(opts Options) (*Context, error) {
	c := &Context{
		ns:          opts.Namespace,
		registry:    NewRegistry(),
		loaders:     make(map[string]Loader),
		prober:      opts.Prober,
		concurrency: opts.Concurrency,
		output:      opts.Output,
		logger:      opts.Logger,
		including:   make(map[string]bool),
	}
	if c.ns == nil {
		c.ns = NewNamespace()
	}
	for ext, loader := range opts.Loaders {
		c.loaders[ext] = loader
	}
	if c.prober == nil {
		c.prober = paths.Stat
	}
	if c.output == nil {
		c.output = os.Stderr
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}

	if err := c.registry.Register("tag", map[string]Command{
		"echo":  c.echo,
		"error": raise,
	}); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Context) Namespace() *Namespace {
	return c.ns
}

func (c *Context) Registry() *Registry {
	return c.registry
}

func (c *Context) echo(ctx context.Context, call *Call) (map[string]Entry, error) {
	message := strings.Join(texts(call.Args), " ")
	c.logger.DebugContext(ctx, "echo", "message", message, "location", call.Location.String())
	if _, err := fmt.Fprintln(c.output, message); err != nil {
		return nil, err
	}
	return nil, nil
}

func raise(ctx context.Context, call *Call) (map[string]Entry, error) {
	return nil, newError(KindUserError, call.Location, "%s", strings.Join(texts(call.Args), " "))
}
