package taglang

import (
	"fmt"
	"testing"
)

func testNamespace(t *testing.T, source string) *Namespace {
	t.Helper()
	ns := NewNamespace()
	statements, err := Parse(source)
	if err != nil {
		t.Fatal(err)
	}
	for _, st := range statements {
		if st.Keyword != "SET" {
			t.Fatalf("got %s", st.Keyword)
		}
		args, err := ExpandArgs(ns, st.Args)
		if err != nil {
			t.Fatal(err)
		}
		if err := ns.Set(args[0].Text, Variable{Value: st.Args[2:]}, args[0].Location); err != nil {
			t.Fatal(err)
		}
	}
	return ns
}

func expandLine(t *testing.T, ns Getter, line string) ([]Located, string, error) {
	t.Helper()
	st := parseOne(t, line)
	args, err := ExpandArgs(ns, st.Args)
	if err != nil {
		return nil, "", err
	}
	text, err := ExpandFullText(ns, st.Args)
	return args, text, err
}

func TestExpandArgs(t *testing.T) {
	ns := testNamespace(t, "SET LIST a b\nSET NAME B\nSET LIST_B x\n")

	args, text, err := expandLine(t, ns, "ECHO pre$LIST ${LIST_$NAME}  post")
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%q", texts(args)); str != `["prea b" "x" "post"]` {
		t.Fatalf("got %s", str)
	}
	if text != "prea b x  post" {
		t.Fatalf("got %q", text)
	}

	args, _, err = expandLine(t, ns, "ECHO $LIST end")
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%q", texts(args)); str != `["a" "b" "end"]` {
		t.Fatalf("got %s", str)
	}
	if str := args[2].Location.String(); str != "1:12-1:14" {
		t.Fatalf("got %s", str)
	}
}

func TestExpandOptional(t *testing.T) {
	ns := NewNamespace()
	args, text, err := expandLine(t, ns, "ECHO a $?MISSING b")
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%q", texts(args)); str != `["a" "b"]` {
		t.Fatalf("got %s", str)
	}
	if text != "a  b" {
		t.Fatalf("got %q", text)
	}
}

func TestExpandErrors(t *testing.T) {
	ns := NewNamespace()
	if err := ns.Set("tag", Tag{Enabled: true}, Location{}); err != nil {
		t.Fatal(err)
	}

	_, _, err := expandLine(t, ns, "ECHO $MISSING")
	if !IsKind(err, KindUnknownVariable) {
		t.Fatalf("got %v", err)
	}
	if str := err.Error(); str != "unknown variable: MISSING" {
		t.Fatalf("got %s", str)
	}
	if str := err.(*Error).Location.String(); str != "1:6-1:13" {
		t.Fatalf("got %s", str)
	}

	_, _, err = expandLine(t, ns, "ECHO $tag")
	if !IsKind(err, KindNotAVariable) {
		t.Fatalf("got %v", err)
	}

	_, err = ExpandArgs(ns, []Arg{Append{Inner: Literal{Text: "x"}}})
	if !IsKind(err, KindInvalidAppend) {
		t.Fatalf("got %v", err)
	}
}

func TestExpandTooDeep(t *testing.T) {
	ns := NewNamespace()
	if err := ns.Set("SELF", Variable{
		Value: []Arg{Substitution{Name: Literals("SELF")}},
	}, Location{}); err != nil {
		t.Fatal(err)
	}
	_, err := ExpandArgs(ns, []Arg{Substitution{Name: Literals("SELF")}})
	if !IsKind(err, KindExpansionTooDeep) {
		t.Fatalf("got %v", err)
	}
	_, err = ExpandFullText(ns, []Arg{Substitution{Name: Literals("SELF")}})
	if !IsKind(err, KindExpansionTooDeep) {
		t.Fatalf("got %v", err)
	}
}

func TestEvalGuards(t *testing.T) {
	ns := NewNamespace()
	if err := ns.Set("on", Tag{Enabled: true}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("off", Tag{Enabled: false}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("VAR", Variable{}, Location{}); err != nil {
		t.Fatal(err)
	}

	for _, c := range []struct {
		guards   []Guard
		expected bool
	}{
		{nil, true},
		{[]Guard{{Name: "on"}}, true},
		{[]Guard{{Name: "on", Negative: true}}, false},
		{[]Guard{{Name: "off"}}, false},
		{[]Guard{{Name: "off", Negative: true}}, true},
		{[]Guard{{Name: "missing"}}, false},
		{[]Guard{{Name: "missing", Negative: true}}, true},
		{[]Guard{{Name: "VAR"}}, true},
		{[]Guard{{Name: "VAR", Negative: true}}, false},
		{[]Guard{{Name: "on"}, {Name: "off", Negative: true}}, true},
		{[]Guard{{Name: "on"}, {Name: "off"}}, false},
	} {
		passed, err := EvalGuards(ns, c.guards)
		if err != nil {
			t.Fatal(err)
		}
		if passed != c.expected {
			t.Fatalf("got %v for %+v", passed, c.guards)
		}
	}
}
