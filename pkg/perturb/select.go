package perturb

import "github.com/matzehuels/deckfuzz/pkg/deck"

// Candidate is a non-owning handle to a shape and the slide holding it.
type Candidate struct {
	Slide int // index of the owning slide
	Owner deck.Slide
	Shape deck.Shape
}

// Selection holds candidate shapes both flattened in document order and
// grouped by owning slide. BySlide always has one entry per slide, possibly
// empty.
type Selection struct {
	All     []Candidate
	BySlide [][]Candidate
}

// Select walks every slide of doc in order. When preserveTitle is set, title
// and centered-title placeholders are left out.
func Select(doc deck.Document, preserveTitle bool) Selection {
	slides := doc.Slides()
	sel := Selection{BySlide: make([][]Candidate, len(slides))}
	for i, slide := range slides {
		for _, shape := range slide.Shapes() {
			if preserveTitle && IsTitle(shape) {
				continue
			}
			c := Candidate{Slide: i, Owner: slide, Shape: shape}
			sel.All = append(sel.All, c)
			sel.BySlide[i] = append(sel.BySlide[i], c)
		}
	}
	return sel
}

// IsTitle reports whether s is a title or centered-title placeholder.
// A placeholder whose type cannot be read is not a title.
func IsTitle(s deck.Shape) bool {
	p, ok := s.(deck.Placeholder)
	if !ok || !p.IsPlaceholder() {
		return false
	}
	t, err := p.PlaceholderType()
	if err != nil {
		return false
	}
	return t.IsTitle()
}

// Filter returns the candidates for which keep returns true, preserving
// order and slide grouping.
func (s Selection) Filter(keep func(deck.Shape) bool) Selection {
	out := Selection{BySlide: make([][]Candidate, len(s.BySlide))}
	for _, c := range s.All {
		if !keep(c.Shape) {
			continue
		}
		out.All = append(out.All, c)
		out.BySlide[c.Slide] = append(out.BySlide[c.Slide], c)
	}
	return out
}

// Geometric keeps shapes exposing position and size.
func (s Selection) Geometric() Selection {
	return s.Filter(func(sh deck.Shape) bool {
		_, ok := sh.(deck.Geometric)
		return ok
	})
}

// TextBearing keeps shapes with a text frame holding non-blank text.
func (s Selection) TextBearing() Selection {
	return s.Filter(deck.HasText)
}

// Groups returns the per-slide groups holding at least size candidates, in
// slide order.
func (s Selection) Groups(size int) [][]Candidate {
	var out [][]Candidate
	for _, g := range s.BySlide {
		if len(g) >= size {
			out = append(out, g)
		}
	}
	return out
}
