// Package io provides JSON export for run reports and deck summaries.
//
// # Reports
//
// A run report records every variant produced by one CLI invocation: its
// run ID, seed, output path, per-operator counts and timing, plus the
// totals across variants:
//
//	{
//	  "version": "v0.3.0",
//	  "runs": [
//	    {"run_id": "9b1d...", "seed": 42, "output": "out.pptx",
//	     "stats": {"deleted_elements": 3, "moved_elements": 8, ...}}
//	  ],
//	  "totals": {"deleted_elements": 3, ...}
//	}
//
// Use [ExportReport] to write a report to a file, or [WriteReport] to write
// to any io.Writer.
//
// # Summaries
//
// [WriteSummary] encodes a [deck.Summary], the per-slide shape listing used
// by the inspect command, so two decks can be compared with ordinary JSON
// tooling.
//
// [deck.Summary]: github.com/matzehuels/deckfuzz/pkg/deck.Summary
package io
