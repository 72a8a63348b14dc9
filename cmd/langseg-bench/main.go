package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jamesainslie/go-langseg"
	"github.com/jamesainslie/go-langseg/internal/app"
	"github.com/jamesainslie/go-langseg/internal/bench"
	"github.com/jamesainslie/go-langseg/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		configPath    = flag.String("config", "", "Path to YAML config file")
		corpusDir     = flag.String("corpus", "testdata/corpus", "Directory containing annotated corpus files")
		tolerance     = flag.Int("tolerance", 1, "Rune tolerance for boundary matching")
		wp            = flag.Float64("wp", 1.0, "Precision weight")
		wr            = flag.Float64("wr", 1.0, "Recall weight")
		minConfidence = flag.Float64("min-confidence", -1, "Override the model confidence floor (negative: use config)")
		verbose       = flag.Bool("v", false, "Print every case that is not segmented perfectly")
		sweep         = flag.Bool("sweep", false, "Run a confidence floor sweep")
		sweepMin      = flag.Float64("sweep-min", 0.0, "Sweep minimum confidence floor")
		sweepMax      = flag.Float64("sweep-max", 1.0, "Sweep maximum confidence floor")
		sweepStep     = flag.Float64("sweep-step", 0.1, "Sweep step size")
		showVersion   = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("langseg-bench %s (%s, %s)\n", version, commit, date)
		return
	}

	appCfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(appCfg.Log, os.Stderr)
	if *minConfidence >= 0 {
		appCfg.Model.MinConfidence = float32(*minConfidence)
	}

	docs, err := bench.LoadCorpus(*corpusDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading corpus: %v\n", err)
		os.Exit(1)
	}
	cases := 0
	for _, d := range docs {
		cases += len(d.Cases)
	}
	fmt.Printf("Loaded %d cases from %d files in %s\n\n", cases, len(docs), *corpusDir)

	cfg := bench.Config{
		MinConfidence:   appCfg.Model.MinConfidence,
		Tolerance:       *tolerance,
		PrecisionWeight: *wp,
		RecallWeight:    *wr,
	}

	ctx := context.Background()

	if *sweep {
		if appCfg.Model.Path == "" {
			fmt.Fprintln(os.Stderr, "error: -sweep needs a model (model.path or LANGSEG_MODEL_PATH)")
			os.Exit(1)
		}
		factory := func(ctx context.Context, floor float32) (bench.SegmentCloser, error) {
			seg, err := app.NewSegmenter(ctx, appCfg, logger, langseg.WithMinConfidence(floor))
			if err != nil {
				return nil, err
			}
			return seg, nil
		}
		runSweep(ctx, docs, factory, cfg, float32(*sweepMin), float32(*sweepMax), float32(*sweepStep))
		return
	}

	seg, err := app.NewSegmenter(ctx, appCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating segmenter: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = seg.Close() }()

	runSingle(ctx, seg, docs, cfg, *verbose)
}

func runSingle(ctx context.Context, seg *langseg.Segmenter, docs []*bench.Document, cfg bench.Config, verbose bool) {
	var results []bench.Metrics
	for _, doc := range docs {
		for _, c := range doc.Cases {
			m, err := bench.EvaluateCase(ctx, seg, c, cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error evaluating %s line %d: %v\n", doc.ID, c.Line, err)
				os.Exit(1)
			}
			results = append(results, m)

			if verbose && m.CorrectChars != m.Chars {
				spans, _ := seg.Segment(ctx, c.Text)
				fmt.Printf("%s:%d\n  want %s\n  got  %s\n", doc.ID, c.Line,
					bench.FormatAnnotated(c.Gold), bench.FormatAnnotated(spans))
			}
		}
	}

	printMetrics(bench.Aggregate(results, cfg))
}

func runSweep(ctx context.Context, docs []*bench.Document, factory bench.Factory, cfg bench.Config, min, max, step float32) {
	thresholds := bench.SweepThresholds(min, max, step)

	fmt.Printf("Confidence Sweep Results (wp=%.1f, wr=%.1f)\n", cfg.PrecisionWeight, cfg.RecallWeight)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("%-8s %-8s %-8s %-8s %-8s %-8s\n", "Floor", "Prec", "Rec", "F1", "Weighted", "CharAcc")

	results, err := bench.Sweep(ctx, docs, factory, cfg, thresholds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error during sweep: %v\n", err)
		os.Exit(1)
	}

	// Print sorted by floor for readability
	for _, t := range thresholds {
		for _, r := range results {
			if r.MinConfidence == t {
				m := r.Metrics
				fmt.Printf("%-8.3f %-8.2f %-8.2f %-8.2f %-8.2f %-8.2f\n",
					r.MinConfidence, m.Precision, m.Recall, m.F1, m.WeightedScore, m.CharAccuracy)
				break
			}
		}
	}

	fmt.Println(strings.Repeat("-", 60))
	if len(results) > 0 {
		best := results[0]
		fmt.Printf("Optimal: %.3f (Weighted: %.2f, CharAcc: %.2f)\n",
			best.MinConfidence, best.Metrics.WeightedScore, best.Metrics.CharAccuracy)
	}
}

func printMetrics(m bench.Metrics) {
	fmt.Printf("Precision: %.2f  Recall: %.2f  F1: %.2f  Weighted: %.2f\n",
		m.Precision, m.Recall, m.F1, m.WeightedScore)
	fmt.Printf("(TP: %d, FP: %d, FN: %d)\n", m.TruePositives, m.FalsePositives, m.FalseNegatives)
	fmt.Printf("Char accuracy: %.2f (%d/%d)\n", m.CharAccuracy, m.CorrectChars, m.Chars)
}
