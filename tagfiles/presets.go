package tagfiles

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Qix-/tag/cmds"
	"github.com/Qix-/tag/taglang"
)

var assignmentPattern = regexp.MustCompile(`(?i)^([a-z_+][a-z0-9_+:]*)=(.+)?$`)

type Assignment struct {
	Name  string
	Value string
}

// Presets are the namespace entries and tasks given on the command line.
type Presets struct {
	Tags      []string
	Variables []Assignment
	Tasks     []string
}

// Add classifies one positional word: "@name" enables a tag, "NAME=value"
// sets a variable, anything else names a task.
func (p *Presets) Add(word string) error {
	if name, ok := strings.CutPrefix(word, "@"); ok {
		if !taglang.ValidTagName(name) {
			return fmt.Errorf("invalid tag format: %s", name)
		}
		p.Tags = append(p.Tags, name)
		return nil
	}

	if match := assignmentPattern.FindStringSubmatch(word); match != nil {
		p.Variables = append(p.Variables, Assignment{
			Name:  match[1],
			Value: match[2],
		})
		return nil
	}

	if !taglang.ValidTaskName(word) {
		return fmt.Errorf("task name is invalid: %s", word)
	}
	p.Tasks = append(p.Tasks, word)
	return nil
}

func ParsePresets(words []string) (ret Presets, err error) {
	for _, word := range words {
		if err := ret.Add(word); err != nil {
			return ret, err
		}
	}
	return
}

var commandLinePresets Presets

func init() {
	cmds.Fallback(commandLinePresets.Add)
}

func (Module) Presets() Presets {
	return commandLinePresets
}
