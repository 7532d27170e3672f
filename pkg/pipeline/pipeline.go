// Package pipeline runs the road extraction over a whole feature collection.
package pipeline

import (
	"context"

	"github.com/natevvv/osm-road-export/pkg/road"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// Workers is the number of goroutines extracting features. Values below
	// two run sequentially.
	Workers int
}

// Stats counts the features of a run by outcome.
type Stats struct {
	Features int
	outcomes [road.OutcomeCount]int
}

func (s *Stats) add(o road.Outcome) {
	s.Features++
	s.outcomes[o]++
}

func (s Stats) Count(o road.Outcome) int { return s.outcomes[o] }
func (s Stats) Accepted() int            { return s.outcomes[road.Accepted] }
func (s Stats) Rejected() int            { return s.Features - s.Accepted() }

type Result struct {
	Records []road.Record
	Stats   Stats
}

// Count is the number of accepted records.
func (r Result) Count() int {
	return len(r.Records)
}

// Run extracts every feature and collects the accepted records in input
// order. The only error returned is the context's.
func Run(ctx context.Context, features []road.Feature, options Options) (Result, error) {
	if options.Workers < 2 || len(features) < 2 {
		return runSequential(ctx, features)
	}
	return runParallel(ctx, features, options.Workers)
}

func runSequential(ctx context.Context, features []road.Feature) (Result, error) {
	result := Result{Records: make([]road.Record, 0)}
	for i, f := range features {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		record, outcome := road.Extract(f)
		result.Stats.add(outcome)
		if outcome == road.Accepted {
			result.Records = append(result.Records, record)
		}
	}
	return result, nil
}

type extraction struct {
	record  road.Record
	outcome road.Outcome
}

func runParallel(ctx context.Context, features []road.Feature, workers int) (Result, error) {
	extracted := make([]extraction, len(features))
	chunk := (len(features) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(features); start += chunk {
		start, end := start, min(start+chunk, len(features))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				record, outcome := road.Extract(features[i])
				extracted[i] = extraction{record: record, outcome: outcome}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	// merge in input order
	result := Result{Records: make([]road.Record, 0)}
	for _, e := range extracted {
		result.Stats.add(e.outcome)
		if e.outcome == road.Accepted {
			result.Records = append(result.Records, e.record)
		}
	}
	return result, nil
}
