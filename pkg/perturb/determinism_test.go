package perturb

import (
	"testing"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

func runAll(seed uint64) (deck.Summary, [6]int) {
	doc := gridDeck(4, 7)
	e, _ := testEngine(seed)
	var counts [6]int
	counts[0] = e.Delete(doc, 0.2, true)
	counts[1] = e.InduceOverlap(doc, 0.3, 0.5)
	counts[2] = e.RandomizePositions(doc, 0.4, 0.3)
	counts[3] = e.Resize(doc, 0.3, ScaleRange{Min: 0.4, Max: 2.5})
	counts[4], counts[5] = e.RandomizeFontSizes(doc, 0.3, DeltaRange{Min: -6, Max: 8})
	return deck.Summarize(doc), counts
}

func TestSameSeedSameResult(t *testing.T) {
	for _, seed := range []uint64{1, 42, 9001} {
		a, ca := runAll(seed)
		b, cb := runAll(seed)
		if ca != cb {
			t.Errorf("seed %d: counts %v != %v", seed, ca, cb)
		}
		if !equalSummaries(a, b) {
			t.Errorf("seed %d: documents differ between runs", seed)
		}
	}
}

func TestZeroRatiosLeaveDocumentUnchanged(t *testing.T) {
	doc := gridDeck(3, 5)
	before := deck.Summarize(doc)

	e, failures := testEngine(3)
	total := e.Delete(doc, 0, true) +
		e.InduceOverlap(doc, 0, 0.5) +
		e.RandomizePositions(doc, 0, 0.3) +
		e.Resize(doc, 0, ScaleRange{Min: 0.4, Max: 2.5})
	shapes, runs := e.RandomizeFontSizes(doc, 0, DeltaRange{Min: -6, Max: 8})
	total += shapes + runs

	if total != 0 {
		t.Errorf("zero ratios affected %d elements", total)
	}
	if len(*failures) != 0 {
		t.Errorf("unexpected failures: %v", *failures)
	}
	if !equalSummaries(before, deck.Summarize(doc)) {
		t.Error("document changed with every ratio at zero")
	}
}
