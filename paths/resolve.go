package paths

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

type Resolution struct {
	// empty when nothing matched
	Path  string
	Tried []string
}

type probeResult struct {
	found bool
	err   error
}

// Resolve probes every candidate concurrently and returns the earliest
// positioned one that exists. A probe error at a position before the winner
// is returned as is.
func Resolve(ctx context.Context, name string, list string, prober Prober, concurrency int) (ret Resolution, err error) {
	candidates := Candidates(name, list)
	ret.Tried = candidates
	if len(candidates) == 0 {
		return ret, nil
	}

	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]probeResult, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)
	for i, candidate := range candidates {
		group.Go(func() error {
			found, err := prober.Probe(groupCtx, candidate)
			results[i] = probeResult{
				found: found,
				err:   err,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return ret, err
	}

	for i, result := range results {
		if result.err != nil {
			return ret, result.err
		}
		if result.found {
			ret.Path = candidates[i]
			return ret, nil
		}
	}
	return ret, nil
}
