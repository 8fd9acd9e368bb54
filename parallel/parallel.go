package parallel

import (
	"context"
	"errors"
	"github.com/hashicorp/go-multierror"
	"sync"
)

var ErrInvalidParallelism = errors.New("degree of parallelism must be > 0")

type Processor func(ctx context.Context, idx int) error

// ForEach processes total items with at most n running at once.
// process is called with the index of the item being processed.
//
// Errors from every item are coalesced into a single *multierror.Error,
// in index order. Items that have not started when ctx is done
// are not processed, and report ctx.Err() instead.
//
// If callers need process to return actual data,
// they should allocate a slice of the data they need,
// and assign to the slice index while processing.
func ForEach(ctx context.Context, total int, n int, process Processor) error {
	if n <= 0 {
		return ErrInvalidParallelism
	}

	semaphore := make(chan struct{}, n)
	errs := make([]error, total)

	wg := sync.WaitGroup{}
	wg.Add(total)
	for i := 0; i < total; i++ {
		go func(i int) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			defer func() { <-semaphore }()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return
			}
			errs[i] = process(ctx, i)
		}(i)
	}
	wg.Wait()
	return multierror.Append(nil, errs...).ErrorOrNil()
}
