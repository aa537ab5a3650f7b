// Package pkg provides the core libraries for deckfuzz slide-deck perturbation.
//
// # Overview
//
// deckfuzz takes a presentation and produces degraded copies of it: shapes
// removed, piled on top of each other, shifted, resized, or given new font
// sizes. The pkg directory is organized into these areas:
//
//  1. [deck] - The document model as capability interfaces, with a PPTX
//     adapter ([deck/pptx]) and an in-memory one ([deck/mem])
//  2. [perturb] - The five operators, candidate selection and sampling
//  3. [pipeline] - Run configuration, profiles and file-level execution
//  4. [io] - JSON run reports and deck summaries
//  5. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The data flow of one run:
//
//	.pptx file
//	     ↓
//	[deck/pptx] Open (slide parts parsed, everything else kept as bytes)
//	     ↓
//	[pipeline] ApplyAll: delete → overlap → position → resize → font_size
//	     ↓
//	[deck/pptx] Save (atomic rename)
//	     ↓
//	[pipeline] Stats → [io] report
//
// # Quick Start
//
//	pres, err := pptx.Open("talk.pptx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats, err := pipeline.ApplyAll(ctx, pres, pipeline.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pres.Save("talk-broken.pptx"); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.Map())
//
// Every operator draws from one seeded source, so the same input, options
// and seed always produce the same output.
//
// [deck]: github.com/matzehuels/deckfuzz/pkg/deck
// [deck/pptx]: github.com/matzehuels/deckfuzz/pkg/deck/pptx
// [deck/mem]: github.com/matzehuels/deckfuzz/pkg/deck/mem
// [perturb]: github.com/matzehuels/deckfuzz/pkg/perturb
// [pipeline]: github.com/matzehuels/deckfuzz/pkg/pipeline
// [io]: github.com/matzehuels/deckfuzz/pkg/io
// [errors]: github.com/matzehuels/deckfuzz/pkg/errors
// [observability]: github.com/matzehuels/deckfuzz/pkg/observability
// [buildinfo]: github.com/matzehuels/deckfuzz/pkg/buildinfo
package pkg
