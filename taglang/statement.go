package taglang

type Guard struct {
	Name     string
	Negative bool
	Location Location
}

// Statement is either a keyword with arguments or, when Guards is
// non-empty, a conditional wrapper around Inner.
type Statement struct {
	Keyword  string
	Args     []Arg
	Guards   []Guard
	Inner    *Statement
	Indent   bool
	Location Location
}

func (s *Statement) IsConditional() bool {
	return s.Inner != nil
}

// Target returns the statement that carries the keyword.
func (s *Statement) Target() *Statement {
	for s.Inner != nil {
		s = s.Inner
	}
	return s
}
