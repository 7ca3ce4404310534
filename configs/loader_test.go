package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

var testSchema = `
str?: string
list?: [...int]
`

func writeConfigs(t *testing.T, contents ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var ret []string
	for i, content := range contents {
		path := filepath.Join(dir, fmt.Sprintf("test%d.cue", i))
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		ret = append(ret, path)
	}
	return ret
}

func TestLoaderAssignFirst(t *testing.T) {
	paths := writeConfigs(t, `
str: "bar"
list: [1, 2, 3]
`)
	loader := NewLoader(paths, testSchema)

	var str string
	err := loader.AssignFirst("str", &str)
	if err != nil {
		t.Fatal(err)
	}
	if str != "bar" {
		t.Fatalf("got %q", str)
	}

	var list []int
	err = loader.AssignFirst("list", &list)
	if err != nil {
		t.Fatal(err)
	}
	if str := fmt.Sprintf("%v", list); str != "[1 2 3]" {
		t.Fatalf("got %s", str)
	}

	err = loader.AssignFirst("not", &list)
	if !errors.Is(err, ErrValueNotFound) {
		t.Fatalf("got %v", err)
	}

}

func TestLoaderIterCueValues(t *testing.T) {
	paths := writeConfigs(t,
		`str: "bar"`,
		`list: [1]`,
		`str: "foo"`,
	)
	loader := NewLoader(paths, testSchema)

	var strs []string
	for value, err := range loader.IterCueValues("str") {
		if err != nil {
			t.Fatal(err)
		}
		var s string
		if err := value.Decode(&s); err != nil {
			t.Fatal(err)
		}
		strs = append(strs, s)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

	strs = strs[:0]
	for str := range All[string](loader, "str") {
		strs = append(strs, str)
	}
	if str := fmt.Sprintf("%v", strs); str != "[bar foo]" {
		t.Fatalf("got %q", str)
	}

}

func TestLoaderMissingFiles(t *testing.T) {
	paths := writeConfigs(t, `str: "found"`)
	loader := NewLoader([]string{
		filepath.Join(t.TempDir(), "missing.cue"),
		paths[0],
	}, testSchema)

	loaded, err := loader.Paths()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0] != paths[0] {
		t.Fatalf("got %v", loaded)
	}
	if str := First[string](loader, "str"); str != "found" {
		t.Fatalf("got %s", str)
	}

	empty := NewLoader(nil, testSchema)
	if str := First[string](empty, "str"); str != "" {
		t.Fatalf("got %s", str)
	}
}

func TestUnknownField(t *testing.T) {
	paths := writeConfigs(t, `unknown_field: "x"`)
	loader := NewLoader(paths, testSchema)
	var str string
	err := loader.AssignFirst("unknown_field", &str)
	if err == nil {
		t.Fatal("should error")
	}
	t.Logf("%v", err)
}

func TestBadType(t *testing.T) {
	paths := writeConfigs(t, `str: 42`)
	loader := NewLoader(paths, testSchema)
	var str string
	if err := loader.AssignFirst("str", &str); err == nil {
		t.Fatal("should error")
	}
}
