package plugins

import (
	"testing"

	"github.com/Qix-/tag/taglang"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

func TestToStarlarkValue(t *testing.T) {
	testCases := []struct {
		name     string
		input    any
		expected starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"bool", true, starlark.True},
		{"string", "hello", starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"int8", int8(42), starlark.MakeInt(42)},
		{"uint16", uint16(42), starlark.MakeInt(42)},
		{"float64", 3.14, starlark.Float(3.14)},
		{"strings", []string{"a", "b"}, starlark.NewList([]starlark.Value{starlark.String("a"), starlark.String("b")})},
		{"located", []taglang.Located{{Text: "x"}}, starlark.NewList([]starlark.Value{starlark.String("x")})},
		{"location", taglang.Location{
			Start: taglang.Pos{Line: 1, Column: 2},
			End:   taglang.Pos{Line: 1, Column: 5},
		}, starlark.String("1:2-1:5")},
		{"map", map[string]any{"a": 1}, func() starlark.Value {
			d := starlark.NewDict(1)
			d.SetKey(starlark.String("a"), starlark.MakeInt(1))
			return d
		}()},
		{"nil pointer", (*int)(nil), starlark.None},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := toStarlarkValue(tc.input)
			equal, err := starlark.Equal(actual, tc.expected)
			if err != nil {
				t.Fatalf("comparison failed: %v", err)
			}
			if !equal {
				t.Errorf("toStarlarkValue(%#v) = %v, want %v", tc.input, actual, tc.expected)
			}
		})
	}

	t.Run("panic on unsupported type", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("toStarlarkValue did not panic on unsupported type")
			}
		}()
		toStarlarkValue(make(chan bool))
	})
}

func TestToEntry(t *testing.T) {
	entry, err := toEntry(starlarkstruct.FromStringDict(tagConstructor, starlark.StringDict{
		"enabled": starlark.False,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if entry != (taglang.Tag{Enabled: false}) {
		t.Fatalf("got %v", entry)
	}

	entry, err = toEntry(starlark.Tuple{starlark.String("a"), starlark.String("b")})
	if err != nil {
		t.Fatal(err)
	}
	text, err := taglang.ExpandFullText(taglang.Snapshot{}, entry.(taglang.Variable).Value)
	if err != nil {
		t.Fatal(err)
	}
	if text != "ab" {
		t.Fatalf("got %s", text)
	}

	if _, err := toEntry(starlark.MakeInt(1)); err == nil {
		t.Fatal("should error")
	}
	if _, err := toEntry(starlark.NewList([]starlark.Value{starlark.MakeInt(1)})); err == nil {
		t.Fatal("should error")
	}
	if _, err := toEntry(starlarkstruct.FromStringDict(callConstructor, nil)); err == nil {
		t.Fatal("should error")
	}
}
