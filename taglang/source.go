package taglang

// Source is a parsed file. Locations point back to it so that values
// carried across files keep reporting against the right text.
type Source struct {
	Name    string
	Content string
}

// stamp points every location in statements at src.
func stamp(statements []*Statement, src *Source) {
	for _, st := range statements {
		stampStatement(st, src)
	}
}

func stampStatement(st *Statement, src *Source) {
	st.Location.Source = src
	for i := range st.Guards {
		st.Guards[i].Location.Source = src
	}
	st.Args = stampArgs(st.Args, src)
	if st.Inner != nil {
		stampStatement(st.Inner, src)
	}
}

func stampArgs(args []Arg, src *Source) []Arg {
	for i, arg := range args {
		args[i] = stampArg(arg, src)
	}
	return args
}

func stampArg(arg Arg, src *Source) Arg {
	switch arg := arg.(type) {
	case Literal:
		arg.Location.Source = src
		return arg
	case Substitution:
		arg.Name = stampArgs(arg.Name, src)
		arg.Location.Source = src
		return arg
	case Skip:
		arg.Inner = stampArg(arg.Inner, src)
		arg.Location.Source = src
		return arg
	case Append:
		arg.Inner = stampArg(arg.Inner, src)
		arg.Location.Source = src
		return arg
	}
	return arg
}
