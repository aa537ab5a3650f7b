package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/deckfuzz/pkg/buildinfo"
	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/pipeline"
)

// Report is the JSON document written by --report.
type Report struct {
	Version     string             `json:"version"`
	GeneratedAt time.Time          `json:"generated_at"`
	Runs        []*pipeline.Result `json:"runs"`
	Totals      pipeline.Stats     `json:"totals"`
}

// NewReport collects results and sums their statistics.
func NewReport(results []*pipeline.Result) Report {
	r := Report{
		Version:     buildinfo.Version,
		GeneratedAt: time.Now().UTC(),
		Runs:        results,
	}
	if r.Runs == nil {
		r.Runs = []*pipeline.Result{}
	}
	for _, res := range results {
		r.Totals.Add(res.Stats)
	}
	return r
}

// WriteReport encodes a report as indented JSON.
func WriteReport(r Report, w io.Writer) error {
	return writeJSON(r, w)
}

// ExportReport writes a report to a JSON file at path.
// This is a convenience wrapper around [WriteReport] for file-based output.
func ExportReport(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(r, f)
}

// WriteSummary encodes a deck summary as indented JSON.
func WriteSummary(s deck.Summary, w io.Writer) error {
	return writeJSON(s, w)
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
