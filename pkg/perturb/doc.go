// Package perturb implements the randomized degradation operators applied to
// slide decks.
//
// # Overview
//
// An [Engine] owns a single random source and applies five independent
// operators to a [deck.Document]. Each operator rebuilds its own candidate
// set, samples from it and mutates the chosen shapes in place:
//
//   - [Engine.Delete]: detach a ratio of shapes, optionally sparing titles
//   - [Engine.InduceOverlap]: pile shapes of the same slide onto an anchor
//   - [Engine.RandomizePositions]: shift shapes, keeping half of each on canvas
//   - [Engine.Resize]: scale the width and/or height of text containers
//   - [Engine.RandomizeFontSizes]: nudge run font sizes within [6, 72] pt
//
// Operators never return errors. A failure on one shape (missing geometry, a
// detached element, a rejected write) is logged, reported to
// [Engine.OnFailure], and excluded from the returned count.
//
// # Reproducibility
//
// All randomness comes from the *rand.Rand passed to [NewEngine]. Two engines
// built from [NewRand] with the same seed, applied to identical decks in the
// same order, produce identical results:
//
//	e := perturb.NewEngine(perturb.NewRand(42), logger)
//	deleted := e.Delete(doc, 0.2, true)
//	moved := e.RandomizePositions(doc, 0.4, 0.3)
//
// # Candidate Sets
//
// [Select] returns non-owning handles into the live document. A selection is
// only valid until the next mutation of the deck; operators never share one.
package perturb
