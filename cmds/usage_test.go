package cmds

import (
	"bytes"
	"strings"
	"testing"
)

func TestUsage(t *testing.T) {
	executor := NewExecutor()
	buf := new(bytes.Buffer)
	executor.Output = buf
	executor.Define("foo", Sub(map[string]*Command{
		"bar": Func(func() {
		}).Desc("BAR"),
		"baz": Sub(map[string]*Command{
			"qux": Func(func() {}).Desc("QUX"),
		}).Desc("BAZ"),
	}).Desc("FOO"))
	executor.Define("-F", Func(func(string) {}).Alias("--file").Desc("FILE"))
	executor.PrintUsage()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "-F, --file") || !strings.HasSuffix(lines[0], "FILE") {
		t.Fatalf("got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "-h, help, -help, --help") {
		t.Fatalf("got %q", lines[1])
	}
	if !strings.HasPrefix(lines[5], "    qux") {
		t.Fatalf("got %q", lines[5])
	}
}
