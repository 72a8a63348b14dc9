package bench

import (
	"context"
	"fmt"
	"sort"
)

// SweepResult holds metrics for one confidence floor.
type SweepResult struct {
	MinConfidence float32
	Metrics       Metrics
}

// Factory builds a segmenter whose detector reports predictions below
// minConfidence as unknown. Sweep closes what it builds.
type Factory func(ctx context.Context, minConfidence float32) (SegmentCloser, error)

// SegmentCloser is a Segmenter holding resources.
type SegmentCloser interface {
	Segmenter
	Close() error
}

// SweepThresholds generates threshold values from min to max with given step.
func SweepThresholds(min, max, step float32) []float32 {
	if step <= 0 {
		return nil
	}
	var thresholds []float32
	for t := min; t < max; t += step {
		thresholds = append(thresholds, t)
	}
	return thresholds
}

// EvaluateCorpus scores every case of docs with seg.
func EvaluateCorpus(ctx context.Context, seg Segmenter, docs []*Document, cfg Config) (Metrics, error) {
	var results []Metrics
	for _, doc := range docs {
		for _, c := range doc.Cases {
			m, err := EvaluateCase(ctx, seg, c, cfg)
			if err != nil {
				return Metrics{}, fmt.Errorf("%s line %d: %w", doc.ID, c.Line, err)
			}
			results = append(results, m)
		}
	}
	return Aggregate(results, cfg), nil
}

// Sweep evaluates multiple confidence floors and returns results sorted by
// weighted boundary score, then character accuracy, best first.
func Sweep(ctx context.Context, docs []*Document, factory Factory, cfg Config, thresholds []float32) ([]SweepResult, error) {
	results := make([]SweepResult, 0, len(thresholds))

	for _, threshold := range thresholds {
		seg, err := factory(ctx, threshold)
		if err != nil {
			return nil, err
		}

		cfg.MinConfidence = threshold
		m, err := EvaluateCorpus(ctx, seg, docs, cfg)
		_ = seg.Close()
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			MinConfidence: threshold,
			Metrics:       m,
		})
	}

	// Character accuracy breaks ties; remaining ties keep input order.
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i].Metrics, results[j].Metrics
		if a.WeightedScore != b.WeightedScore {
			return a.WeightedScore > b.WeightedScore
		}
		return a.CharAccuracy > b.CharAccuracy
	})

	return results, nil
}
