// Package deck defines the slide-deck object model consumed by the
// perturbation engine.
//
// # Overview
//
// A [Document] is an ordered list of [Slide] values with a fixed canvas size in
// EMU (English Metric Units, 914400 per inch). Each slide exposes its shapes
// in document order. Shapes are deliberately minimal: everything beyond a name
// is an optional capability discovered with a type assertion:
//
//   - [Geometric]: position and size that can be read and written
//   - [Placeholder]: layout-defined role such as a title or body
//   - [TextFrame]: paragraphs of runs with per-run font sizes
//
// This mirrors how real presentation files behave. A connector has geometry
// but no text, and a table frame has geometry but no text frame. A placeholder
// positioned by its slide layout reports the layout's geometry; when no
// layout or master defines it, [Geometric.Bounds] returns [ErrNoGeometry].
//
// # Adapters
//
// Two implementations ship with deckfuzz:
//
//   - [github.com/matzehuels/deckfuzz/pkg/deck/pptx]: loads and saves .pptx files
//   - [github.com/matzehuels/deckfuzz/pkg/deck/mem]: in-memory decks for tests
//     and programmatic construction
//
// # Ownership
//
// A shape belongs to exactly one slide. [Slide.RemoveShape] detaches it
// permanently; there is no tombstone and no undo. Values returned by
// [Slide.Shapes] are live handles into the tree and must not be cached across
// mutations of that slide.
package deck
