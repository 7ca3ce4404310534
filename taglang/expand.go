package taglang

import "strings"

const maxExpandDepth = 64

type expander struct {
	ns    Getter
	depth int
}

// ExpandFullText flattens args into one string without argument boundaries.
func ExpandFullText(ns Getter, args []Arg) (string, error) {
	e := &expander{ns: ns}
	var sb strings.Builder
	if err := e.fullText(args, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ExpandArgs expands args into discrete located arguments.
func ExpandArgs(ns Getter, args []Arg) ([]Located, error) {
	e := &expander{ns: ns}
	return e.args(args, nil)
}

func (e *expander) fullText(args []Arg, sb *strings.Builder) error {
	for _, arg := range args {
		switch arg := arg.(type) {

		case Literal:
			sb.WriteString(arg.Text)

		case Skip:
			if err := e.fullText([]Arg{arg.Inner}, sb); err != nil {
				return err
			}

		case Append:
			if err := e.fullText([]Arg{arg.Inner}, sb); err != nil {
				return err
			}

		case Substitution:
			variable, ok, err := e.lookup(arg)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := e.enter(arg); err != nil {
				return err
			}
			err = e.fullText(variable.Value, sb)
			e.depth--
			if err != nil {
				return err
			}

		default:
			return newError(KindInternal, arg.Loc(), "unknown argument token: %v", arg)
		}
	}
	return nil
}

func (e *expander) args(args []Arg, results []Located) ([]Located, error) {
	for _, arg := range args {
		switch arg := arg.(type) {

		case Literal:
			results = append(results, Located{
				Text:     arg.Text,
				Location: arg.Location,
			})

		case Skip:
			continue

		case Append:
			if len(results) == 0 {
				return nil, newError(KindInvalidAppend, arg.Location, "nothing to append to")
			}
			var sb strings.Builder
			if err := e.fullText([]Arg{arg.Inner}, &sb); err != nil {
				return nil, err
			}
			results[len(results)-1].Text += sb.String()

		case Substitution:
			variable, ok, err := e.lookup(arg)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if err := e.enter(arg); err != nil {
				return nil, err
			}
			results, err = e.args(variable.Value, results)
			e.depth--
			if err != nil {
				return nil, err
			}

		default:
			return nil, newError(KindInternal, arg.Loc(), "unknown argument token: %v", arg)
		}
	}
	return results, nil
}

// lookup resolves a substitution; ok is false for an absent optional one.
func (e *expander) lookup(sub Substitution) (variable Variable, ok bool, err error) {
	var sb strings.Builder
	if err := e.fullText(sub.Name, &sb); err != nil {
		return variable, false, err
	}
	name := sb.String()

	entry, found := e.ns.Get(name)
	if !found {
		if sub.Optional {
			return variable, false, nil
		}
		return variable, false, newError(KindUnknownVariable, sub.Location, "unknown variable: %s", name)
	}

	variable, isVar := entry.(Variable)
	if !isVar {
		return variable, false, newError(KindNotAVariable, sub.Location, "attempt to reference non-variable value: %s", name)
	}
	return variable, true, nil
}

func (e *expander) enter(sub Substitution) error {
	if e.depth >= maxExpandDepth {
		return newError(KindExpansionTooDeep, sub.Location, "variable expansion nested too deeply")
	}
	e.depth++
	return nil
}
