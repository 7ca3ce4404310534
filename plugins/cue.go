package plugins

import (
	"context"
	"errors"
	"fmt"

	"github.com/Qix-/tag/configs"
	"github.com/Qix-/tag/taglang"
)

const CueExt = ".cue"

const cueModuleSchema = `
name?: string
namespace: [string]: {
	type:     "tag"
	enabled?: bool
} | {
	type:  "variable"
	value: string | [...string]
}
`

// CueLoader loads declarative modules that only contribute namespace entries.
type CueLoader struct{}

var _ taglang.Loader = CueLoader{}

type cueEntry struct {
	Type    string `json:"type"`
	Enabled *bool  `json:"enabled"`
	Value   any    `json:"value"`
}

func (c CueLoader) Load(ctx context.Context, name string, path string) (*taglang.Plugin, error) {
	loader := configs.NewLoader([]string{path}, cueModuleSchema)

	plugin := new(taglang.Plugin)
	if err := loader.AssignFirst("name", &plugin.Name); err != nil && !errors.Is(err, configs.ErrValueNotFound) {
		return nil, invalidCueModule(path, err)
	}

	var entries map[string]cueEntry
	if err := loader.AssignFirst("namespace", &entries); err != nil {
		if errors.Is(err, configs.ErrValueNotFound) {
			return nil, taglang.Errorf(taglang.KindInvalidPlugin, "%s: no namespace defined", path)
		}
		return nil, invalidCueModule(path, err)
	}

	plugin.Namespace = make(map[string]taglang.Entry, len(entries))
	for key, entry := range entries {
		converted, err := entry.toEntry()
		if err != nil {
			return nil, taglang.Errorf(taglang.KindInvalidPlugin,
				"plugin namespace entry '%s' is not a valid namespace element: %v", key, err)
		}
		plugin.Namespace[key] = converted
	}

	return plugin, nil
}

func invalidCueModule(path string, err error) error {
	e := taglang.Errorf(taglang.KindInvalidPlugin, "%s: %v", path, err)
	e.Err = err
	return e
}

func (c cueEntry) toEntry() (taglang.Entry, error) {
	switch c.Type {

	case "tag":
		enabled := true
		if c.Enabled != nil {
			enabled = *c.Enabled
		}
		return taglang.Tag{Enabled: enabled}, nil

	case "variable":
		switch value := c.Value.(type) {
		case string:
			return taglang.Variable{Value: taglang.Literals(value)}, nil
		case []any:
			values := make([]string, 0, len(value))
			for _, v := range value {
				s, ok := v.(string)
				if !ok {
					return nil, fmt.Errorf("variable values must be strings, got %T", v)
				}
				values = append(values, s)
			}
			return taglang.Variable{Value: taglang.Literals(values...)}, nil
		}
		return nil, fmt.Errorf("bad variable value: %v", c.Value)

	}
	return nil, fmt.Errorf("unknown entry type: %s", c.Type)
}
