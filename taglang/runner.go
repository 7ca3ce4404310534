package taglang

import (
	"context"
	"os"
)

type blockState uint8

const (
	blockNone blockState = iota
	// preceding unindented statement was a conditional whose guard passed
	blockOpen
	// ... whose guard failed
	blockSkipped
)

// runner carries the per-file scoping state; nested runs get their own.
type runner struct {
	c       *Context
	block   blockState
	entered bool
}

func (c *Context) RunFile(ctx context.Context, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.RunSource(ctx, path, string(content))
}

// RunSource parses and executes source. Errors are annotated with filename and source.
func (c *Context) RunSource(ctx context.Context, filename string, source string) error {
	statements, err := Parse(source)
	if err != nil {
		return annotate(err, filename, source)
	}
	stamp(statements, &Source{
		Name:    filename,
		Content: source,
	})
	c.logger.DebugContext(ctx, "parsed", "file", filename, "statements", len(statements))
	if err := c.Execute(ctx, statements); err != nil {
		return annotate(err, filename, source)
	}
	return nil
}

func (c *Context) Execute(ctx context.Context, statements []*Statement) error {
	r := &runner{
		c: c,
	}
	defer r.leave()
	for _, st := range statements {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.statement(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) leave() {
	if r.entered {
		r.c.ns.ExitScope()
		r.entered = false
	}
}

func (r *runner) statement(ctx context.Context, st *Statement) error {
	r.c.logger.DebugContext(ctx, "statement",
		"keyword", st.Target().Keyword,
		"location", st.Location.String(),
		"indent", st.Indent,
	)

	if !st.Indent {
		r.leave()
		r.block = blockNone
		if st.IsConditional() {
			passed, err := r.c.conditional(ctx, st)
			if err != nil {
				return err
			}
			if passed {
				r.block = blockOpen
			} else {
				r.block = blockSkipped
			}
			return nil
		}
		return r.c.exec(ctx, st)
	}

	switch r.block {
	case blockOpen:
		if !r.entered {
			r.entered = r.c.ns.EnterScope()
		}
	case blockSkipped:
		return r.c.checkKeyword(st.Target())
	default:
		return newError(KindIndentationNotAllowed, st.Location, "indentation is not allowed here")
	}

	if st.IsConditional() {
		_, err := r.c.conditional(ctx, st)
		return err
	}
	return r.c.exec(ctx, st)
}

// conditional runs the inner statement if the guards hold, reporting whether they did.
func (c *Context) conditional(ctx context.Context, st *Statement) (bool, error) {
	inner := st.Target()
	if err := c.checkKeyword(inner); err != nil {
		return false, err
	}
	passed, err := EvalGuards(c.ns, st.Guards)
	if err != nil {
		return false, err
	}
	if !passed {
		return false, nil
	}
	return true, c.exec(ctx, inner)
}

func (c *Context) checkKeyword(st *Statement) error {
	if _, ok := keywords[st.Keyword]; ok {
		return nil
	}
	e := newError(KindUnknownKeyword, st.Location, "invalid keyword: %s", st.Keyword)
	e.Suggestion = suggest(st.Keyword, Keywords())
	return e
}

func (c *Context) exec(ctx context.Context, st *Statement) error {
	h, ok := keywords[st.Keyword]
	if !ok {
		return c.checkKeyword(st)
	}
	if err := h(c, ctx, st); err != nil {
		return WithLocation(err, st.Location)
	}
	return nil
}
