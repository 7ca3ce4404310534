package taglang

import (
	"fmt"
	"testing"
)

func TestNamespaceSet(t *testing.T) {
	ns := NewNamespace()
	if err := ns.Set("foo", Tag{Enabled: true}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("foo", Tag{Enabled: false}, Location{}); err != nil {
		t.Fatal(err)
	}
	entry, ok := ns.Get("foo")
	if !ok || entry != (Tag{Enabled: false}) {
		t.Fatalf("got %v", entry)
	}

	err := ns.Set("foo", Variable{}, Location{})
	if !IsKind(err, KindTypeConflict) {
		t.Fatalf("got %v", err)
	}
	if str := err.Error(); str != "attempt to overwrite value of type 'tag' with new value of type 'variable': foo" {
		t.Fatalf("got %s", str)
	}

	if err := ns.Set("+foo", Tag{}, Location{}); !IsKind(err, KindInvalidIdentifier) {
		t.Fatalf("got %v", err)
	}
	if err := ns.Set("+foo", Variable{}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("1foo", Variable{}, Location{}); !IsKind(err, KindInvalidIdentifier) {
		t.Fatalf("got %v", err)
	}
	if err := ns.Set("foo", nil, Location{}); !IsKind(err, KindInternal) {
		t.Fatalf("got %v", err)
	}
}

func TestNamespaceScope(t *testing.T) {
	ns := NewNamespace()
	if err := ns.Set("A", Variable{Value: Literals("base")}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("B", Variable{Value: Literals("b")}, Location{}); err != nil {
		t.Fatal(err)
	}

	if !ns.EnterScope() {
		t.Fatal()
	}
	if ns.EnterScope() {
		t.Fatal("should reuse the active overlay")
	}
	if !ns.InScope() {
		t.Fatal()
	}

	if err := ns.Set("A", Variable{Value: Literals("local")}, Location{}); err != nil {
		t.Fatal(err)
	}
	if err := ns.Set("C", Tag{Enabled: true}, Location{}); err != nil {
		t.Fatal(err)
	}
	ns.Unset("B")

	text, err := ExpandFullText(ns, []Arg{Substitution{Name: Literals("A")}})
	if err != nil {
		t.Fatal(err)
	}
	if text != "local" {
		t.Fatalf("got %s", text)
	}
	if _, ok := ns.Get("B"); ok {
		t.Fatal("should be hidden")
	}
	if str := fmt.Sprintf("%v", ns.Names()); str != "[A C]" {
		t.Fatalf("got %s", str)
	}
	snapshot := ns.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("got %v", snapshot)
	}

	ns.ExitScope()
	text, err = ExpandFullText(ns, []Arg{Substitution{Name: Literals("A")}})
	if err != nil {
		t.Fatal(err)
	}
	if text != "base" {
		t.Fatalf("got %s", text)
	}
	if _, ok := ns.Get("B"); !ok {
		t.Fatal("should be visible again")
	}
	if _, ok := ns.Get("C"); ok {
		t.Fatal("should be discarded")
	}
}

func TestNamespaceUnset(t *testing.T) {
	ns := NewNamespace()
	ns.Unset("nothing")
	if err := ns.Set("A", Tag{}, Location{}); err != nil {
		t.Fatal(err)
	}
	ns.Unset("A")
	if _, ok := ns.Get("A"); ok {
		t.Fatal()
	}
	if err := ns.Set("A", Variable{}, Location{}); err != nil {
		t.Fatal(err)
	}
}

func TestNamespaceNest(t *testing.T) {
	ns := NewNamespace()
	ns.EnterScope()
	if err := ns.Set("A", Variable{Value: Literals("block")}, Location{}); err != nil {
		t.Fatal(err)
	}

	restore := ns.Nest()
	if ns.InScope() {
		t.Fatal("nested file starts without a scope")
	}
	if _, ok := ns.Get("A"); !ok {
		t.Fatal("enclosing block should stay visible")
	}

	if !ns.EnterScope() {
		t.Fatal()
	}
	if err := ns.Set("B", Variable{}, Location{}); err != nil {
		t.Fatal(err)
	}
	ns.Unset("A")
	if _, ok := ns.Get("A"); ok {
		t.Fatal("should be hidden")
	}
	if str := fmt.Sprintf("%v", ns.Names()); str != "[B]" {
		t.Fatalf("got %s", str)
	}
	ns.ExitScope()

	if _, ok := ns.Get("B"); ok {
		t.Fatal("should be discarded")
	}
	if _, ok := ns.Get("A"); !ok {
		t.Fatal("should be visible again")
	}
	if err := ns.Set("C", Tag{Enabled: true}, Location{}); err != nil {
		t.Fatal(err)
	}

	restore()
	if !ns.InScope() {
		t.Fatal("enclosing scope should be back")
	}
	if _, ok := ns.Get("C"); !ok {
		t.Fatal("top level writes of the nested file belong to the enclosing block")
	}
	ns.ExitScope()
	if len(ns.Snapshot()) != 0 {
		t.Fatalf("got %v", ns.Snapshot())
	}
}
