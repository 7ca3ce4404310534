package taglang

type EntryKind uint8

const (
	EntryVariable EntryKind = iota + 1
	EntryTag
)

func (k EntryKind) String() string {
	switch k {
	case EntryVariable:
		return "variable"
	case EntryTag:
		return "tag"
	}
	return "unknown"
}

type Entry interface {
	Kind() EntryKind
}

type Variable struct {
	Value []Arg
}

type Tag struct {
	Enabled bool
}

var (
	_ Entry = Variable{}
	_ Entry = Tag{}
)

func (Variable) Kind() EntryKind { return EntryVariable }

func (Tag) Kind() EntryKind { return EntryTag }

func kindOf(entry Entry) string {
	if entry == nil {
		return "nil"
	}
	return entry.Kind().String()
}
