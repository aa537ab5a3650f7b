package perturb

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// Operator names, used in failures, logs and statistics.
const (
	OpDelete   = "delete"
	OpOverlap  = "overlap"
	OpPosition = "position"
	OpResize   = "resize"
	OpFontSize = "font_size"
)

// Engine applies perturbation operators using one shared random source.
// It is not safe for concurrent use.
type Engine struct {
	Rand   *rand.Rand
	Logger *log.Logger

	// OnFailure, if set, is called for every shape an operator had to skip.
	OnFailure func(Failure)
}

// NewRand returns a PCG-backed random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewEngine creates an engine drawing from rng.
// A nil logger discards output.
func NewEngine(rng *rand.Rand, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Engine{Rand: rng, Logger: logger}
}

// Failure describes a shape that an operator skipped.
type Failure struct {
	Operator string
	Slide    int
	Shape    string
	Err      error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: slide %d shape %q: %v", f.Operator, f.Slide+1, f.Shape, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// each applies fn to every candidate and returns the number of successes.
// Failures are reported and never stop the loop.
func (e *Engine) each(op string, cands []Candidate, quiet bool, fn func(Candidate) error) int {
	n := 0
	for _, c := range cands {
		if err := fn(c); err != nil {
			e.fail(op, c, err, quiet)
			continue
		}
		n++
	}
	return n
}

func (e *Engine) fail(op string, c Candidate, err error, quiet bool) {
	f := Failure{Operator: op, Slide: c.Slide, Shape: c.Shape.Name(), Err: err}
	if quiet {
		e.Logger.Debug("skipped shape", "op", op, "slide", c.Slide+1, "shape", f.Shape, "err", err)
	} else {
		e.Logger.Warn("skipped shape", "op", op, "slide", c.Slide+1, "shape", f.Shape, "err", err)
	}
	if e.OnFailure != nil {
		e.OnFailure(f)
	}
}

// intBetween draws a uniform integer in [lo, hi]. It returns lo when the
// interval is empty.
func intBetween(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int64N(hi-lo+1)
}

// geometry resolves a candidate's geometric capability and current bounds.
func geometry(c Candidate) (deck.Geometric, deck.Rect, error) {
	g, ok := c.Shape.(deck.Geometric)
	if !ok {
		return nil, deck.Rect{}, deck.ErrNoGeometry
	}
	r, err := g.Bounds()
	if err != nil {
		return nil, deck.Rect{}, err
	}
	return g, r, nil
}
