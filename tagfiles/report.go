package tagfiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/Qix-/tag/logs"
	"github.com/Qix-/tag/taglang"
)

const (
	ExitFailure  = 1
	ExitInternal = 10
)

// Report prints err to the output and returns the process exit status.
type Report func(ctx context.Context, err error) int

func (Module) Report(
	output Output,
	logger logs.Logger,
) Report {
	return func(ctx context.Context, err error) int {
		if err == nil {
			return 0
		}

		var tagErr *taglang.Error
		if errors.As(err, &tagErr) && tagErr.Kind != taglang.KindInternal {
			logger.DebugContext(ctx, "tagfile error",
				"kind", tagErr.Kind.String(),
				"location", tagErr.Location.String(),
				"file", tagErr.Filename,
			)
			fmt.Fprint(output, tagErr.Excerpt())
			return ExitFailure
		}

		err = logs.WrapSpan(ctx, err)
		if tagErr != nil {
			fmt.Fprintln(output, "internal error:", err)
			return ExitInternal
		}
		fmt.Fprintln(output, "error:", err)
		return ExitFailure
	}
}
