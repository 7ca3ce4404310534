package plugins

import (
	"io"
	"log/slog"

	"github.com/Qix-/tag/taglang"
)

// NewBuiltins returns the native modules shipped with the interpreter.
func NewBuiltins(output io.Writer, logger *slog.Logger) Builtins {
	return Builtins{
		"os": OS,
		"exec": Exec{
			Output: output,
			Logger: logger,
		}.Plugin,
	}
}

// NewLoaders maps module file extensions to their loaders.
func NewLoaders(builtins Builtins, output io.Writer, logger *slog.Logger) map[string]taglang.Loader {
	return map[string]taglang.Loader{
		BuiltinExt: builtins,
		StarlarkExt: StarlarkLoader{
			Output: output,
			Logger: logger,
		},
		CueExt: CueLoader{},
	}
}
