package tagfiles

import (
	"io"
	"os"
)

// Output receives ECHO lines and the output of spawned processes.
type Output io.Writer

func (Module) Output() Output {
	return os.Stderr
}
