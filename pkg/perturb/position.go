package perturb

import (
	"math"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// RandomizePositions shifts floor(n*ratio) non-title shapes by up to
// maxShiftRatio of the canvas size on each axis.
//
// The new position is clamped so that at most half of the shape leaves the
// canvas on any edge: left stays within [-w/2, W-w/2] and top within
// [-h/2, H-h/2].
func (e *Engine) RandomizePositions(doc deck.Document, ratio, maxShiftRatio float64) int {
	cands := Select(doc, true).Geometric().All
	picked := Sample(e.Rand, cands, SampleSize(len(cands), ratio))
	if len(picked) == 0 {
		return 0
	}

	maxX := shiftLimit(doc.Width(), maxShiftRatio)
	maxY := shiftLimit(doc.Height(), maxShiftRatio)

	return e.each(OpPosition, picked, true, func(c Candidate) error {
		g, r, err := geometry(c)
		if err != nil {
			return err
		}
		left := r.Left + intBetween(e.Rand, -maxX, maxX)
		top := r.Top + intBetween(e.Rand, -maxY, maxY)
		left = clampHalfVisible(left, r.Width, doc.Width())
		top = clampHalfVisible(top, r.Height, doc.Height())
		return g.SetPosition(left, top)
	})
}

func shiftLimit(extent int64, ratio float64) int64 {
	if !(ratio > 0) {
		return 0
	}
	return int64(math.Floor(float64(extent) * ratio))
}

// clampHalfVisible clamps an offset so that at least half of a span of the
// given size stays within [0, canvas]. Odd sizes round the bounds inward.
func clampHalfVisible(v, size, canvas int64) int64 {
	lo := -(size / 2)
	hi := canvas - (size+1)/2
	return max(lo, min(v, hi))
}
