package labeltree

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParseLabelPaths parses many label-paths concurrently, preserving input
// order. The codec is pure, so calls are fully independent; workers
// bounds the parallelism (<= 0 means GOMAXPROCS). The first failure
// cancels the remaining work and is returned wrapped with the input's
// index.
func ParseLabelPaths(ctx context.Context, inputs []string, workers int) ([]*LabelPath, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tracer().Debugf("parsing %d label-paths with %d workers", len(inputs), workers)

	out := make([]*LabelPath, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := ParseLabelPath(in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			out[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseLabelPatterns is the pattern counterpart of ParseLabelPaths.
func ParseLabelPatterns(ctx context.Context, inputs []string, workers int) ([]*LabelPattern, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	tracer().Debugf("parsing %d label-patterns with %d workers", len(inputs), workers)

	out := make([]*LabelPattern, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			q, err := ParseLabelPattern(in)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			out[i] = q
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
