package perturb

import (
	"fmt"
	"reflect"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/deck/mem"
)

const (
	canvasW = 9144000
	canvasH = 6858000
)

func rect(left, top, width, height int64) deck.Rect {
	return deck.Rect{Left: left, Top: top, Width: width, Height: height}
}

// testEngine returns a seeded engine and the list its failures are recorded in.
func testEngine(seed uint64) (*Engine, *[]Failure) {
	var failures []Failure
	e := NewEngine(NewRand(seed), nil)
	e.OnFailure = func(f Failure) { failures = append(failures, f) }
	return e, &failures
}

// gridDeck builds a deck of slides, each with a title placeholder followed by
// perSlide text boxes laid out on a grid.
func gridDeck(slides, perSlide int) *mem.Document {
	doc := mem.New(canvasW, canvasH)
	for s := 0; s < slides; s++ {
		slide := doc.AddSlide()
		slide.Add(mem.NewShape(fmt.Sprintf("Title %d", s), rect(457200, 274638, 8229600, 1143000)).
			WithPlaceholder(deck.PlaceholderTitle).
			WithText(fmt.Sprintf("Slide %d", s)))
		for i := 0; i < perSlide; i++ {
			col, row := int64(i%3), int64(i/3)
			slide.Add(mem.NewShape(fmt.Sprintf("Box %d.%d", s, i), rect(457200+col*2743200, 1600200+row*1371600, 2514600, 1143000)).
				WithRuns(mem.NewSizedRun(fmt.Sprintf("item %d", i), 24), mem.NewRun(" detail")))
		}
	}
	return doc
}

func shapesOf(doc *mem.Document) []*mem.Shape {
	var out []*mem.Shape
	for _, sl := range doc.Slides() {
		for _, sh := range sl.Shapes() {
			if m, ok := sh.(*mem.Shape); ok {
				out = append(out, m)
			}
		}
	}
	return out
}

func equalSummaries(a, b deck.Summary) bool {
	return reflect.DeepEqual(a, b)
}
