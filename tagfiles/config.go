package tagfiles

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Qix-/tag/cmds"
	"github.com/Qix-/tag/configs"
	"github.com/Qix-/tag/logs"
	"github.com/Qix-/tag/modes"
	"github.com/Qix-/tag/vars"
)

//go:embed schema.cue
var schema string

const DefaultTagfile = "./Tagfile"

var DefaultTagpath = []string{
	"@builtin/%.go",
	"./%.tag",
	"./%.star",
	"./%.cue",
	"./%",
	"./.tag/%.tag",
	"./.tag/%.star",
	"./.tag/%.cue",
}

const defaultProbeConcurrency = 8

var (
	tagfileFlag          string
	probeConcurrencyFlag = cmds.Var[int]("-probe-concurrency")
)

func init() {
	cmds.Define("-F", cmds.Func(func(path string) {
		tagfileFlag = path
	}).Alias("--tagfile").Arg("FILE").Desc("path to the Tagfile (default ./Tagfile)"))
}

type ConfigPaths []string

func (Module) ConfigPaths(
	mode modes.Mode,
) (paths ConfigPaths) {
	filenames := []string{
		"tag.cue",
		".tag.cue",
	}

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		for _, filename := range filenames {
			paths = append(paths, filepath.Join(workingDir, filename))
		}
	}

	if !mode.ReadsSystemConfig() {
		return
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		for _, filename := range filenames {
			paths = append(paths, filepath.Join(configDir, "tag", filename))
		}
	}

	// system wide dir
	for _, filename := range filenames {
		paths = append(paths, filepath.Join("/etc", filename))
	}

	return
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	loader := configs.NewLoader(paths, schema)
	if found, err := loader.Paths(); err == nil && len(found) > 0 {
		logger.Info("config file",
			"paths", found,
		)
	}
	return loader
}

type Settings struct {
	Tagfile          string
	Tagpath          []string
	ProbeConcurrency int
	Tags             map[string]bool
	Variables        map[string][]string
}

type GetSettings func() (Settings, error)

func (Module) GetSettings(
	loader configs.Loader,
) GetSettings {
	return sync.OnceValues(func() (ret Settings, err error) {
		// surface load and validation errors before reading values
		if _, err := loader.Paths(); err != nil {
			return ret, err
		}

		ret.Tagfile = vars.FirstNonZero(
			tagfileFlag,
			configs.First[string](loader, "tagfile"),
			DefaultTagfile,
		)

		ret.Tagpath = configs.First[[]string](loader, "tagpath")
		if len(ret.Tagpath) == 0 {
			ret.Tagpath = slices.Clone(DefaultTagpath)
		}

		ret.ProbeConcurrency = vars.FirstNonZero(
			max(*probeConcurrencyFlag, 0),
			configs.First[int](loader, "probe_concurrency"),
			defaultProbeConcurrency,
		)

		// earlier files take priority per name
		ret.Tags = make(map[string]bool)
		for tags := range configs.All[map[string]bool](loader, "tags") {
			for name, enabled := range tags {
				if _, ok := ret.Tags[name]; !ok {
					ret.Tags[name] = enabled
				}
			}
		}

		ret.Variables = make(map[string][]string)
		for variables := range configs.All[map[string]any](loader, "variables") {
			for name, value := range variables {
				if _, ok := ret.Variables[name]; ok {
					continue
				}
				values, err := variableValues(value)
				if err != nil {
					return ret, fmt.Errorf("variables.%s: %w", name, err)
				}
				ret.Variables[name] = values
			}
		}

		return ret, nil
	})
}

func variableValues(value any) ([]string, error) {
	switch value := value.(type) {
	case string:
		return []string{value}, nil
	case []any:
		ret := make([]string, 0, len(value))
		for _, v := range value {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("expecting string, got %T", v)
			}
			ret = append(ret, s)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("expecting string or list of strings, got %T", value)
}

// TagpathValue joins the patterns into the TAGPATH variable format.
func (s Settings) TagpathValue() string {
	return strings.Join(s.Tagpath, ":")
}
