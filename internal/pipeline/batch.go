package pipeline

import (
	"context"
	"sync"
)

type batchOptions struct {
	workers int
}

type BatchOption func(*batchOptions)

// WithWorkers processes batch entries on a bounded pool of n workers
// instead of sequentially. Outcome order still matches input order.
func WithWorkers(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// BatchProcess runs ProcessDocument over every path, one outcome per
// input in input order. A failing entry is recorded and never aborts the
// rest of the batch. The default is strictly sequential processing; pass
// WithWorkers to opt into bounded concurrency.
func (p *Pipeline) BatchProcess(ctx context.Context, paths []string, analyze bool, kind AnalysisKind, opts ...BatchOption) []Outcome {
	options := batchOptions{workers: 1}
	for _, opt := range opts {
		opt(&options)
	}

	outcomes := make([]Outcome, len(paths))

	if options.workers <= 1 {
		for i, path := range paths {
			outcomes[i] = p.processOne(ctx, path, analyze, kind)
		}
		return outcomes
	}

	sem := make(chan struct{}, options.workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = p.processOne(ctx, path, analyze, kind)
		}(i, path)
	}
	wg.Wait()

	return outcomes
}

func (p *Pipeline) processOne(ctx context.Context, path string, analyze bool, kind AnalysisKind) Outcome {
	result, err := p.ProcessDocument(ctx, path, analyze, kind)
	if err != nil {
		return Outcome{Source: path, Err: err}
	}
	return Outcome{Source: path, Result: &result}
}
