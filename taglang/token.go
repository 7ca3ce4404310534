package taglang

import (
	"fmt"
	"strings"
)

// Arg is one argument token of a statement or of a variable value.
type Arg interface {
	Loc() Location
	fmt.Stringer
	sealedArg()
}

type Literal struct {
	Text     string
	Location Location
}

// Substitution dereferences the variable whose name is the full text of Name.
type Substitution struct {
	Name     []Arg
	Optional bool
	Location Location
}

// Skip contributes to full text only.
type Skip struct {
	Inner    Arg
	Location Location
}

// Append concatenates onto the previously produced argument.
type Append struct {
	Inner    Arg
	Location Location
}

var (
	_ Arg = Literal{}
	_ Arg = Substitution{}
	_ Arg = Skip{}
	_ Arg = Append{}
)

func (l Literal) Loc() Location      { return l.Location }
func (s Substitution) Loc() Location { return s.Location }
func (s Skip) Loc() Location         { return s.Location }
func (a Append) Loc() Location       { return a.Location }

func (Literal) sealedArg()      {}
func (Substitution) sealedArg() {}
func (Skip) sealedArg()         {}
func (Append) sealedArg()       {}

func (l Literal) String() string {
	return fmt.Sprintf("literal(%q)", l.Text)
}

func (s Substitution) String() string {
	var sb strings.Builder
	sb.WriteString("substitution(")
	if s.Optional {
		sb.WriteString("?")
	}
	sb.WriteString(argsString(s.Name))
	sb.WriteString(")")
	return sb.String()
}

func (s Skip) String() string {
	return "skip(" + s.Inner.String() + ")"
}

func (a Append) String() string {
	return "append(" + a.Inner.String() + ")"
}

func argsString(args []Arg) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.String())
	}
	return strings.Join(parts, " ")
}

// Literals builds a variable value out of plain strings.
func Literals(values ...string) []Arg {
	ret := make([]Arg, 0, len(values))
	for _, v := range values {
		ret = append(ret, Literal{Text: v})
	}
	return ret
}
