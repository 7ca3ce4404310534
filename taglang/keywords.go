package taglang

import (
	"context"
	"slices"
	"strings"
)

type handler func(c *Context, ctx context.Context, st *Statement) error

var keywords map[string]handler

func init() {
	keywords = map[string]handler{
		"ECHO":  (*Context).keywordEcho,
		"ERROR": (*Context).keywordError,
		"ON":    (*Context).keywordOn,
		"OFF":   (*Context).keywordOff,
		"SET":   (*Context).keywordSet,
		"UNSET": (*Context).keywordUnset,
		"CALL":  (*Context).keywordCall,
		"USE":   (*Context).keywordUse,
	}
}

func Keywords() []string {
	var ret []string
	for name := range keywords {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

func (c *Context) keywordEcho(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: ECHO <args...>")
	}
	return c.Call(ctx, "tag", "echo", []Located{{
		Text:     strings.Join(texts(args), " "),
		Location: span(args[0].Location, args[len(args)-1].Location),
	}}, st.Location)
}

func (c *Context) keywordError(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: ERROR <args...>")
	}
	return c.Call(ctx, "tag", "error", args, st.Location)
}

func (c *Context) keywordOn(ctx context.Context, st *Statement) error {
	return c.setTags(st, "ON", true)
}

func (c *Context) keywordOff(ctx context.Context, st *Statement) error {
	return c.setTags(st, "OFF", false)
}

func (c *Context) setTags(st *Statement, keyword string, enabled bool) error {
	tags, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: %s <tags...>", keyword)
	}
	for _, tag := range tags {
		if err := c.ns.Set(tag.Text, Tag{Enabled: enabled}, tag.Location); err != nil {
			return err
		}
	}
	return nil
}

func (c *Context) keywordSet(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: SET <variable_name> [args...]")
	}
	name, values := args[0], args[1:]
	value := make([]Arg, 0, len(values))
	for _, v := range values {
		value = append(value, Literal{
			Text:     v.Text,
			Location: v.Location,
		})
	}
	return c.ns.Set(name.Text, Variable{Value: value}, name.Location)
}

func (c *Context) keywordUnset(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: UNSET <args...>")
	}
	for _, arg := range args {
		c.ns.Unset(arg.Text)
	}
	return nil
}

func (c *Context) keywordCall(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return newError(KindEmptyArguments, st.Location, "incorrect usage: CALL <namespace:method_name> [args...]")
	}
	target := args[0]
	if !ValidMethod(target.Text) {
		return newError(KindInvalidCallTarget, target.Location,
			"invalid CALL method format (expects `namespace:method_name`): %s", target.Text)
	}
	namespace, method := splitMethod(target.Text)
	return c.Call(ctx, namespace, method, args[1:], st.Location)
}

func (c *Context) keywordUse(ctx context.Context, st *Statement) error {
	args, err := ExpandArgs(c.ns, st.Args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return newError(KindUsageError, st.Location, "incorrect usage: USE <name>")
	}
	return c.Use(ctx, args[0].Text, st.Location)
}
