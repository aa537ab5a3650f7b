package perturb

import (
	"strings"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// Font size bounds, in points.
const (
	DefaultFontSize = 18.0
	MinFontSize     = 6.0
	MaxFontSize     = 72.0
)

// DeltaRange bounds the integer point delta drawn by
// [Engine.RandomizeFontSizes]. Both ends are inclusive.
type DeltaRange struct {
	Min int
	Max int
}

// RandomizeFontSizes changes run font sizes slide by slide.
//
// On every slide, max(1, floor(k*ratio)) of its k text-bearing shapes are
// drawn. Every non-blank run of a drawn shape gets a delta from deltas added
// to its size (18pt when unset), clamped to [6, 72]. A zero delta leaves the
// run untouched. It returns the number of shapes and runs changed; a ratio of
// zero disables the operator.
func (e *Engine) RandomizeFontSizes(doc deck.Document, ratio float64, deltas DeltaRange) (shapes, runs int) {
	if !(ratio > 0) {
		return 0, 0
	}
	sel := Select(doc, false).TextBearing()
	for _, group := range sel.BySlide {
		if len(group) == 0 {
			continue
		}
		k := min(max(1, SampleSize(len(group), ratio)), len(group))
		for _, c := range Sample(e.Rand, group, k) {
			changed, err := e.perturbRuns(c, deltas)
			runs += changed
			if err != nil {
				e.fail(OpFontSize, c, err, false)
				continue
			}
			if changed > 0 {
				shapes++
			}
		}
	}
	return shapes, runs
}

// perturbRuns returns the number of runs rewritten before any error.
func (e *Engine) perturbRuns(c Candidate, deltas DeltaRange) (int, error) {
	tf, ok := c.Shape.(deck.TextFrame)
	if !ok {
		return 0, nil
	}
	changed := 0
	for _, p := range tf.Paragraphs() {
		for _, r := range p.Runs() {
			if strings.TrimSpace(r.Text()) == "" {
				continue
			}
			size, ok := r.FontSize()
			if !ok {
				size = DefaultFontSize
			}
			d := intBetween(e.Rand, int64(deltas.Min), int64(deltas.Max))
			if d == 0 {
				continue
			}
			if err := r.SetFontSize(ClampFontSize(size + float64(d))); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}

// ClampFontSize clamps pt to [MinFontSize, MaxFontSize].
func ClampFontSize(pt float64) float64 {
	return max(MinFontSize, min(pt, MaxFontSize))
}
