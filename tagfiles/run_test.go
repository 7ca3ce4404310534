package tagfiles

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/Qix-/tag/modes"
	"github.com/Qix-/tag/taglang"
	"github.com/reusee/dscope"
)

type testEnv struct {
	dir    string
	output *bytes.Buffer
	scope  dscope.Scope
}

// newTestEnv writes tagfile into a temp dir and points the config at it.
// config holds extra CUE fields.
func newTestEnv(t *testing.T, tagfile string, config string, presets Presets) *testEnv {
	t.Helper()
	dir := t.TempDir()
	tagfilePath := filepath.Join(dir, "Tagfile")
	if err := os.WriteFile(tagfilePath, []byte(tagfile), 0644); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "tag.cue")
	content := "tagfile: " + strconv.Quote(tagfilePath) + "\n" + config
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	buf := new(bytes.Buffer)
	return &testEnv{
		dir:    dir,
		output: buf,
		scope: dscope.New(new(Module), modes.ForTest(t)).Fork(
			func() ConfigPaths {
				return ConfigPaths{configPath}
			},
			func() Presets {
				return presets
			},
			func() Output {
				return buf
			},
		),
	}
}

func (e *testEnv) run() (err error) {
	e.scope.Call(func(
		run Run,
	) {
		err = run(context.Background())
	})
	return
}

func (e *testEnv) mustRun(t *testing.T) string {
	t.Helper()
	if err := e.run(); err != nil {
		t.Fatalf("got %v", err)
	}
	return e.output.String()
}

func TestRunPresets(t *testing.T) {
	env := newTestEnv(t, `
ECHO $TASKS
+debug ECHO debug on
!debug ECHO debug off
ECHO $GREETING [$?EMPTY]
`, "", Presets{
		Tags: []string{"debug"},
		Variables: []Assignment{
			{Name: "GREETING", Value: "hi"},
			{Name: "EMPTY"},
		},
		Tasks: []string{"build", "test"},
	})
	if str := env.mustRun(t); str != "build test\ndebug on\nhi []\n" {
		t.Fatalf("got %q", str)
	}
}

func TestRunDefaults(t *testing.T) {
	env := newTestEnv(t, "ECHO $TASKS $TAGPATH\n", "", Presets{})
	expected := "all " + strings.Join(DefaultTagpath, ":") + "\n"
	if str := env.mustRun(t); str != expected {
		t.Fatalf("got %q", str)
	}
}

func TestRunConfig(t *testing.T) {
	env := newTestEnv(t, `
+ci ECHO ci
+local ECHO local
!local ECHO not local
ECHO $NAME $LIST
`, `
tags: {
	ci: true
	local: false
}
variables: {
	NAME: "x"
	LIST: ["a", "b"]
}
`, Presets{
		Variables: []Assignment{
			{Name: "NAME", Value: "from flag"},
		},
	})
	if str := env.mustRun(t); str != "ci\nnot local\nfrom flag a b\n" {
		t.Fatalf("got %q", str)
	}
}

func TestRunPresetTypeConflict(t *testing.T) {
	env := newTestEnv(t, "ECHO unreachable\n", `
tags: X: true
`, Presets{
		Variables: []Assignment{
			{Name: "X", Value: "1"},
		},
	})
	err := env.run()
	if !taglang.IsKind(err, taglang.KindTypeConflict) {
		t.Fatalf("got %v", err)
	}
	if env.output.Len() != 0 {
		t.Fatalf("got %q", env.output.String())
	}
}

func TestRunBadConfig(t *testing.T) {
	env := newTestEnv(t, "ECHO x\n", "unknown_field: 1\n", Presets{})
	if err := env.run(); err == nil {
		t.Fatal("should fail")
	}
}

func TestRunUseBuiltin(t *testing.T) {
	env := newTestEnv(t, `
USE os
ECHO $OS_PLATFORM
`, "", Presets{})
	if str := env.mustRun(t); str != runtime.GOOS+"\n" {
		t.Fatalf("got %q", str)
	}
}

func TestRunUseTagfile(t *testing.T) {
	env := newTestEnv(t, `
USE helper
ECHO $FROM_HELPER
`, "", Presets{})
	if err := os.WriteFile(
		filepath.Join(env.dir, "helper.tag"),
		[]byte("SET FROM_HELPER yes\n"),
		0644,
	); err != nil {
		t.Fatal(err)
	}
	env.scope = env.scope.Fork(
		func() GetSettings {
			return func() (Settings, error) {
				return Settings{
					Tagfile:          filepath.Join(env.dir, "Tagfile"),
					Tagpath:          []string{filepath.Join(env.dir, "missing", "%.tag"), filepath.Join(env.dir, "%.tag")},
					ProbeConcurrency: 2,
				}, nil
			}
		},
	)
	if str := env.mustRun(t); str != "yes\n" {
		t.Fatalf("got %q", str)
	}
}

func TestRunMissingTagfile(t *testing.T) {
	env := newTestEnv(t, "", "", Presets{})
	if err := os.Remove(filepath.Join(env.dir, "Tagfile")); err != nil {
		t.Fatal(err)
	}
	err := env.run()
	if !os.IsNotExist(err) {
		t.Fatalf("got %v", err)
	}
}

func TestSettingsFromConfig(t *testing.T) {
	env := newTestEnv(t, "", `
tagpath: ["a/%", "b/%"]
probe_concurrency: 3
`, Presets{})
	env.scope.Call(func(
		getSettings GetSettings,
	) {
		settings, err := getSettings()
		if err != nil {
			t.Fatal(err)
		}
		if settings.TagpathValue() != "a/%:b/%" {
			t.Fatalf("got %v", settings.Tagpath)
		}
		if settings.ProbeConcurrency != 3 {
			t.Fatalf("got %v", settings.ProbeConcurrency)
		}
		if filepath.Base(settings.Tagfile) != "Tagfile" {
			t.Fatalf("got %v", settings.Tagfile)
		}
	})
}

func TestConfigPathsByMode(t *testing.T) {
	var module Module
	dev := module.ConfigPaths(modes.ModeDevelopment)
	prod := module.ConfigPaths(modes.ModeProduction)
	if len(prod) <= len(dev) {
		t.Fatalf("got %v %v", dev, prod)
	}
	for _, path := range dev {
		if strings.HasPrefix(path, "/etc") {
			t.Fatalf("got %v", dev)
		}
	}
}

func TestSettingsMergeConfigFiles(t *testing.T) {
	env := newTestEnv(t, "", `
tags: a: true
variables: X: "first"
`, Presets{})
	second := filepath.Join(env.dir, ".tag.cue")
	if err := os.WriteFile(second, []byte(`
tagfile: "ignored"
tags: {
	a: false
	b: true
}
variables: {
	X: "second"
	Y: ["1", "2"]
}
`), 0644); err != nil {
		t.Fatal(err)
	}
	env.scope = env.scope.Fork(
		func() ConfigPaths {
			return ConfigPaths{
				filepath.Join(env.dir, "tag.cue"),
				second,
			}
		},
	)
	env.scope.Call(func(
		getSettings GetSettings,
	) {
		settings, err := getSettings()
		if err != nil {
			t.Fatal(err)
		}
		if !settings.Tags["a"] || !settings.Tags["b"] {
			t.Fatalf("got %v", settings.Tags)
		}
		if x := settings.Variables["X"]; len(x) != 1 || x[0] != "first" {
			t.Fatalf("got %v", x)
		}
		if y := settings.Variables["Y"]; len(y) != 2 || y[1] != "2" {
			t.Fatalf("got %v", y)
		}
		if filepath.Base(settings.Tagfile) != "Tagfile" {
			t.Fatalf("got %v", settings.Tagfile)
		}
	})
}
