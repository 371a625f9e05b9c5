package evmauth

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// AuthorizeBatch evaluates every spend independently and in parallel.
// decisions[i] belongs to spends[i]. The only error is ctx cancellation, in
// which case the decisions gathered so far are discarded.
func (a *Authorizer) AuthorizeBatch(ctx context.Context, spends []Spend) ([]Decision, error) {
	decisions := make([]Decision, len(spends))
	if len(spends) == 0 {
		return decisions, nil
	}

	numWorkers := a.batch.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	var accepted, rejected int64
	logger := a.batch.Logger

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	for i, spend := range spends {
		select {
		case <-gctx.Done():
			_ = g.Wait()
			return nil, gctx.Err()
		default:
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := a.AuthorizeSpend(spend)
			decisions[i] = d
			if d.Accepted() {
				atomic.AddInt64(&accepted, 1)
				return nil
			}
			atomic.AddInt64(&rejected, 1)
			logger.Debug().
				Int("input", i).
				Str("reason", d.Reason.String()).
				Str("recovered", d.Recovered.Hex()).
				AnErr("cause", d.Err).
				Msg("input rejected")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("inputs", len(spends)).
		Int64("accepted", atomic.LoadInt64(&accepted)).
		Int64("rejected", atomic.LoadInt64(&rejected)).
		Msg("batch evaluated")
	return decisions, nil
}

// AllAccepted reports whether every decision accepts its spend. An empty
// batch is not accepted.
func AllAccepted(decisions []Decision) bool {
	for _, d := range decisions {
		if !d.Accepted() {
			return false
		}
	}
	return len(decisions) > 0
}
