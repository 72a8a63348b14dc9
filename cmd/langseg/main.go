package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/jamesainslie/go-langseg"
	"github.com/jamesainslie/go-langseg/internal/app"
	"github.com/jamesainslie/go-langseg/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default: $CONFIG_PATH or ./langseg.yaml)")
	jsonOut := flag.Bool("json", false, "Print one JSON array of spans per input line")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: langseg [OPTIONS] [TEXT...]")
		fmt.Fprintln(os.Stderr, "Segments TEXT, or each line of stdin when no TEXT is given.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("langseg %s (%s, %s)\n", version, commit, date)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	seg, err := app.NewSegmenter(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating segmenter: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = seg.Close() }() // Cleanup error ignored in CLI

	var lines []string
	if flag.NArg() > 0 {
		lines = []string{strings.Join(flag.Args(), " ")}
	}

	if err := run(ctx, seg, lines, os.Stdin, os.Stdout, *jsonOut); err != nil {
		_ = seg.Close() // os.Exit skips deferred calls
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run segments lines, or every line of in when lines is empty. Output is
// buffered; a failed final flush is returned like any write error.
func run(ctx context.Context, seg *langseg.Segmenter, lines []string, in io.Reader, out io.Writer, jsonOut bool) error {
	w := bufio.NewWriter(out)
	if err := segmentLines(ctx, seg, lines, in, w, jsonOut); err != nil {
		return errors.Join(err, w.Flush())
	}
	return w.Flush()
}

func segmentLines(ctx context.Context, seg *langseg.Segmenter, lines []string, in io.Reader, w io.Writer, jsonOut bool) error {
	emit := func(text string) error {
		spans, err := seg.Segment(ctx, text)
		if err != nil {
			return err
		}
		if jsonOut {
			if spans == nil {
				spans = []langseg.Span{}
			}
			data, err := json.Marshal(spans)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(w, "%s\n", data)
			return err
		}
		for _, s := range spans {
			if _, err := fmt.Fprintf(w, "%s\t%q\n", s.Lang, s.Text); err != nil {
				return err
			}
		}
		return nil
	}

	if len(lines) > 0 {
		for _, line := range lines {
			if err := emit(line); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := emit(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}
