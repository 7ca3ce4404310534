package tagfiles

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/Qix-/tag/logs"
	"github.com/Qix-/tag/paths"
	"github.com/Qix-/tag/plugins"
	"github.com/Qix-/tag/taglang"
)

const (
	TasksName   = "TASKS"
	DefaultTask = "all"
)

// Run reads the configured Tagfile and executes it.
type Run func(ctx context.Context) error

// NewNamespace builds the initial namespace: TAGPATH, then configured
// entries, then command line presets, then TASKS.
type NewNamespace func() (*taglang.Namespace, error)

func (Module) NewNamespace(
	getSettings GetSettings,
	presets Presets,
) NewNamespace {
	return func() (*taglang.Namespace, error) {
		settings, err := getSettings()
		if err != nil {
			return nil, err
		}

		ns := taglang.NewNamespace()
		set := func(name string, entry taglang.Entry) error {
			return ns.Set(name, entry, taglang.Location{})
		}

		if err := set(taglang.TagpathName, taglang.Variable{
			Value: taglang.Literals(settings.TagpathValue()),
		}); err != nil {
			return nil, err
		}

		// config
		for _, name := range slices.Sorted(maps.Keys(settings.Tags)) {
			if err := set(name, taglang.Tag{
				Enabled: settings.Tags[name],
			}); err != nil {
				return nil, err
			}
		}
		for _, name := range slices.Sorted(maps.Keys(settings.Variables)) {
			if err := set(name, taglang.Variable{
				Value: taglang.Literals(settings.Variables[name]...),
			}); err != nil {
				return nil, err
			}
		}

		// command line
		for _, name := range presets.Tags {
			if err := set(name, taglang.Tag{
				Enabled: true,
			}); err != nil {
				return nil, err
			}
		}
		for _, assignment := range presets.Variables {
			var values []string
			if assignment.Value != "" {
				values = append(values, assignment.Value)
			}
			if err := set(assignment.Name, taglang.Variable{
				Value: taglang.Literals(values...),
			}); err != nil {
				return nil, err
			}
		}

		tasks := presets.Tasks
		if len(tasks) == 0 {
			tasks = []string{DefaultTask}
		}
		if err := set(TasksName, taglang.Variable{
			Value: taglang.Literals(tasks...),
		}); err != nil {
			return nil, err
		}

		return ns, nil
	}
}

func (Module) Run(
	getSettings GetSettings,
	newNamespace NewNamespace,
	output Output,
	logger logs.Logger,
) Run {
	return func(ctx context.Context) error {
		settings, err := getSettings()
		if err != nil {
			return err
		}

		ns, err := newNamespace()
		if err != nil {
			return err
		}

		builtins := plugins.NewBuiltins(output, logger)
		tagContext, err := taglang.NewContext(taglang.Options{
			Namespace:   ns,
			Loaders:     plugins.NewLoaders(builtins, output, logger),
			Prober:      builtins.Prober(paths.Stat),
			Concurrency: settings.ProbeConcurrency,
			Output:      output,
			Logger:      logger,
		})
		if err != nil {
			return err
		}

		source, err := os.ReadFile(settings.Tagfile)
		if err != nil {
			return err
		}
		logger.DebugContext(ctx, "tagfile",
			"path", settings.Tagfile,
			"bytes", len(source),
		)

		return tagContext.RunSource(ctx, settings.Tagfile, string(source))
	}
}
