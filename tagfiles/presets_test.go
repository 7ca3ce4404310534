package tagfiles

import (
	"testing"
)

func TestParsePresets(t *testing.T) {
	presets, err := ParsePresets([]string{
		"@debug", "NAME=value", "EMPTY=", "a:b=c=d", "build", "test",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(presets.Tags) != 1 || presets.Tags[0] != "debug" {
		t.Fatalf("got %v", presets.Tags)
	}
	if len(presets.Variables) != 3 {
		t.Fatalf("got %v", presets.Variables)
	}
	if v := presets.Variables[0]; v.Name != "NAME" || v.Value != "value" {
		t.Fatalf("got %v", v)
	}
	if v := presets.Variables[1]; v.Name != "EMPTY" || v.Value != "" {
		t.Fatalf("got %v", v)
	}
	if v := presets.Variables[2]; v.Name != "a:b" || v.Value != "c=d" {
		t.Fatalf("got %v", v)
	}
	if len(presets.Tasks) != 2 || presets.Tasks[1] != "test" {
		t.Fatalf("got %v", presets.Tasks)
	}
}

func TestParsePresetsErrors(t *testing.T) {
	for _, c := range []struct {
		word     string
		expected string
	}{
		{"@+bad", "invalid tag format: +bad"},
		{"@", "invalid tag format: "},
		{"-unknown", "task name is invalid: -unknown"},
		{"1task", "task name is invalid: 1task"},
	} {
		_, err := ParsePresets([]string{c.word})
		if err == nil || err.Error() != c.expected {
			t.Fatalf("%s: got %v", c.word, err)
		}
	}
}
