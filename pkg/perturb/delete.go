package perturb

import "github.com/matzehuels/deckfuzz/pkg/deck"

// Delete detaches floor(n*ratio) shapes sampled from the whole document,
// where n counts every shape (minus titles when preserveTitle is set).
// Sampling is global, so a crowded slide may lose more than its share.
// It returns the number of shapes actually detached.
func (e *Engine) Delete(doc deck.Document, ratio float64, preserveTitle bool) int {
	cands := Select(doc, preserveTitle).All
	picked := Sample(e.Rand, cands, SampleSize(len(cands), ratio))
	return e.each(OpDelete, picked, false, func(c Candidate) error {
		return c.Owner.RemoveShape(c.Shape)
	})
}
