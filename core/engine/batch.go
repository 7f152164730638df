package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mileage/core/types"
)

// DefaultBatchConcurrency bounds ComputeBatch when no limit is given
const DefaultBatchConcurrency = 8

// BatchItem is the outcome of one trip in a batch
type BatchItem struct {
	Index  int
	Input  types.TripInput
	Result *types.Result
	Err    error
}

// ComputeBatch computes every trip against profile with at most limit
// trips in flight. Items keep input order. A rejected trip only fails its
// own item; the returned error is set when ctx is cancelled.
func (e *Engine) ComputeBatch(ctx context.Context, inputs []types.TripInput, profile types.Profile, limit int) ([]BatchItem, error) {
	if limit <= 0 {
		limit = DefaultBatchConcurrency
	}

	items := make([]BatchItem, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := e.Compute(in, profile)
			items[i] = BatchItem{Index: i, Input: in, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Summary aggregates the successful items of a batch
type Summary struct {
	Trips     int
	Rejected  int
	Best      *BatchItem
	Worst     *BatchItem
	TierCount map[types.Tier]int
}

// Summarize reports counts and the best and worst rated trips. Ties keep
// the earliest trip.
func Summarize(items []BatchItem) Summary {
	s := Summary{TierCount: make(map[types.Tier]int)}
	for i := range items {
		it := &items[i]
		if it.Err != nil {
			s.Rejected++
			continue
		}
		s.Trips++
		tier := it.Result.Rating.Tier
		s.TierCount[tier]++
		if s.Best == nil || tier > s.Best.Result.Rating.Tier {
			s.Best = it
		}
		if s.Worst == nil || tier < s.Worst.Result.Rating.Tier {
			s.Worst = it
		}
	}
	return s
}
