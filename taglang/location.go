package taglang

import "fmt"

type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Location is an inclusive range: End points at the last character.
type Location struct {
	Start Pos
	End   Pos
	// nil until the statement is executed by RunSource
	Source *Source
}

func (l Location) IsZero() bool {
	return l.Start.Line == 0
}

func (l Location) String() string {
	if l.Start == l.End {
		return l.Start.String()
	}
	return l.Start.String() + "-" + l.End.String()
}

func span(from, to Location) Location {
	if from.IsZero() {
		return to
	}
	if to.IsZero() || from.Source != to.Source {
		return from
	}
	return Location{
		Start:  from.Start,
		End:    to.End,
		Source: from.Source,
	}
}

type Located struct {
	Text     string
	Location Location
}

func (l Located) String() string {
	return l.Text
}

func texts(values []Located) []string {
	ret := make([]string, 0, len(values))
	for _, v := range values {
		ret = append(ret, v.Text)
	}
	return ret
}
