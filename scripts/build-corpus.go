//go:build ignore

// Convert `langseg -json` output into annotated corpus format for review.
// Each input line is a JSON array of spans; each output line is the same
// spans as "[lang]text...". Hand-correct the tags before using the file as
// gold data.
// Usage: langseg -json < lines.txt | go run ./scripts/build-corpus.go -source URL > testdata/corpus/NAME.txt
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jamesainslie/go-langseg"
	"github.com/jamesainslie/go-langseg/internal/bench"
)

func main() {
	source := flag.String("source", "", "Value of the # Source: header (required)")
	title := flag.String("title", "", "Value of the # Title: header")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "Error: -source is required")
		os.Exit(1)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	fmt.Fprintf(w, "# Source: %s\n", *source)
	if *title != "" {
		fmt.Fprintf(w, "# Title: %s\n", *title)
	}
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum, written := 0, 0
	for scanner.Scan() {
		lineNum++
		var spans []langseg.Span
		if err := json.Unmarshal(scanner.Bytes(), &spans); err != nil {
			fmt.Fprintf(os.Stderr, "Error on line %d: %v\n", lineNum, err)
			os.Exit(1)
		}
		if len(spans) == 0 {
			continue
		}
		fmt.Fprintln(w, bench.FormatAnnotated(spans))
		written++
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Wrote %d cases from %d lines\n", written, lineNum)
}
