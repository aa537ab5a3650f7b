package perturb

import (
	"errors"
	"math"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

var errNegativeExtent = errors.New("shape has negative extent")

// InduceOverlap moves shapes onto other shapes of the same slide.
//
// Titles are never moved. The target count is max(2, floor(n*ratio)) over the
// n movable shapes. Slides holding at least two movable shapes are visited in
// order until the target is met; on each, max(2, min(k, floor(k*intensity)+1))
// of its k shapes are drawn, the first becomes the anchor and every other one
// is placed at the anchor's position plus a random offset of at most half its
// smaller side on each axis.
//
// When no slide has two movable shapes, up to target shapes are drawn from
// the whole deck and only those sharing the first one's slide are moved.
// A ratio of zero disables the operator.
func (e *Engine) InduceOverlap(doc deck.Document, ratio, intensity float64) int {
	if !(ratio > 0) {
		return 0
	}
	sel := Select(doc, true).Geometric()
	total := len(sel.All)
	if total < 2 {
		return 0
	}
	target := max(2, SampleSize(total, ratio))

	groups := sel.Groups(2)
	if len(groups) == 0 {
		return e.overlapAcrossDeck(sel.All, target)
	}

	count := 0
	for _, group := range groups {
		if count >= target {
			break
		}
		n := len(group)
		moves := max(2, min(n, int(math.Floor(float64(n)*intensity))+1))
		picked := Sample(e.Rand, group, moves)
		count += e.pileOnto(picked[0], picked[1:])
	}
	return count
}

func (e *Engine) overlapAcrossDeck(all []Candidate, target int) int {
	picked := Sample(e.Rand, all, min(target, len(all)))
	if len(picked) < 2 {
		return 0
	}
	anchor := picked[0]
	var sameSlide []Candidate
	for _, c := range picked[1:] {
		if c.Slide == anchor.Slide {
			sameSlide = append(sameSlide, c)
		}
	}
	return e.pileOnto(anchor, sameSlide)
}

// pileOnto moves others next to anchor and returns how many were moved.
func (e *Engine) pileOnto(anchor Candidate, others []Candidate) int {
	if len(others) == 0 {
		return 0
	}
	_, target, err := geometry(anchor)
	if err != nil {
		e.fail(OpOverlap, anchor, err, true)
		return 0
	}
	return e.each(OpOverlap, others, true, func(c Candidate) error {
		g, r, err := geometry(c)
		if err != nil {
			return err
		}
		reach := min(r.Width, r.Height) / 2
		if reach < 0 {
			return errNegativeExtent
		}
		dx := intBetween(e.Rand, -reach, reach)
		dy := intBetween(e.Rand, -reach, reach)
		return g.SetPosition(target.Left+dx, target.Top+dy)
	})
}
