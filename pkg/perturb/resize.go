package perturb

import (
	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// Bounds applied by [Engine.Resize].
const (
	// MinScaleOfOriginal is the smallest fraction of its original size a
	// dimension may shrink to.
	MinScaleOfOriginal = 0.3
	// MaxScaleOfCanvas is the largest fraction of the canvas a dimension may
	// grow to.
	MaxScaleOfCanvas = 0.8
)

// ScaleRange bounds the scale factor drawn by [Engine.Resize].
type ScaleRange struct {
	Min float64
	Max float64
}

// Dimensions selects which sides of a shape are resized.
type Dimensions int

const (
	WidthOnly Dimensions = iota
	HeightOnly
	BothDimensions
)

func (d Dimensions) width() bool  { return d != HeightOnly }
func (d Dimensions) height() bool { return d != WidthOnly }

// Resize scales floor(n*ratio) text-bearing shapes, titles included.
//
// Each shape draws one factor from scale and, with equal probability, has its
// width, its height or both multiplied by it. A new dimension never drops
// below 30% of its original value and, unless that floor is larger, never
// exceeds 80% of the matching canvas dimension.
func (e *Engine) Resize(doc deck.Document, ratio float64, scale ScaleRange) int {
	cands := Select(doc, false).TextBearing().All
	picked := Sample(e.Rand, cands, SampleSize(len(cands), ratio))
	return e.each(OpResize, picked, false, func(c Candidate) error {
		factor := scale.Min + e.Rand.Float64()*(scale.Max-scale.Min)
		dims := Dimensions(e.Rand.IntN(3))
		return resizeShape(c, factor, dims, doc.Width(), doc.Height())
	})
}

func resizeShape(c Candidate, factor float64, dims Dimensions, canvasW, canvasH int64) error {
	g, r, err := geometry(c)
	if err != nil {
		return err
	}
	w, h := r.Width, r.Height
	if dims.width() {
		w = scaleDimension(r.Width, factor, canvasW)
	}
	if dims.height() {
		h = scaleDimension(r.Height, factor, canvasH)
	}
	return g.SetSize(w, h)
}

// scaleDimension returns orig*factor clamped to
// [orig*MinScaleOfOriginal, canvas*MaxScaleOfCanvas]; the lower bound wins
// when the two cross.
func scaleDimension(orig int64, factor float64, canvas int64) int64 {
	v := int64(float64(orig) * factor)
	lo := int64(float64(orig) * MinScaleOfOriginal)
	hi := int64(float64(canvas) * MaxScaleOfCanvas)
	return max(lo, min(v, hi))
}
