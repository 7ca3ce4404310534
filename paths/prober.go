package paths

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"syscall"
)

type Prober interface {
	Probe(ctx context.Context, path string) (bool, error)
}

type ProbeFunc func(ctx context.Context, path string) (bool, error)

var _ Prober = ProbeFunc(nil)

func (p ProbeFunc) Probe(ctx context.Context, path string) (bool, error) {
	return p(ctx, path)
}

// Stat reports whether path exists as a regular file.
var Stat = ProbeFunc(func(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
})

// Prefixed routes paths under Prefix to Prober and everything else to Fallback.
type Prefixed struct {
	Prefix   string
	Prober   Prober
	Fallback Prober
}

var _ Prober = Prefixed{}

func (p Prefixed) Probe(ctx context.Context, path string) (bool, error) {
	if strings.HasPrefix(path, p.Prefix) {
		return p.Prober.Probe(ctx, path)
	}
	return p.Fallback.Probe(ctx, path)
}
