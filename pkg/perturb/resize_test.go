package perturb

import (
	"testing"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/deck/mem"
)

func TestScaleDimension(t *testing.T) {
	tests := []struct {
		orig   int64
		factor float64
		canvas int64
		want   int64
	}{
		{1000, 3, 10000, 3000},
		{1000, 0.1, 10000, 300},
		{5000, 3, 10000, 8000},
		{1000, 1, 10000, 1000},
		{10000, 0.1, 1000, 3000}, // floor beats ceiling
	}

	for _, tt := range tests {
		if got := scaleDimension(tt.orig, tt.factor, tt.canvas); got != tt.want {
			t.Errorf("scaleDimension(%d, %g, %d) = %d, want %d", tt.orig, tt.factor, tt.canvas, got, tt.want)
		}
	}
}

func TestResizeShapeDimensions(t *testing.T) {
	tests := []struct {
		dims  Dimensions
		wantW int64
		wantH int64
	}{
		{BothDimensions, 3000, 3000},
		{WidthOnly, 3000, 1000},
		{HeightOnly, 1000, 3000},
	}

	for _, tt := range tests {
		doc := mem.New(10000, 10000)
		sh := doc.AddSlide().Add(mem.NewShape("text", rect(0, 0, 1000, 1000)).WithText("hello"))
		c := Candidate{Slide: 0, Owner: doc.Slide(0), Shape: sh}

		if err := resizeShape(c, 3, tt.dims, doc.Width(), doc.Height()); err != nil {
			t.Fatalf("resizeShape(%v) error: %v", tt.dims, err)
		}
		if r := sh.Rect(); r.Width != tt.wantW || r.Height != tt.wantH {
			t.Errorf("resizeShape(%v) = %dx%d, want %dx%d", tt.dims, r.Width, r.Height, tt.wantW, tt.wantH)
		}
	}
}

func TestResizeBounds(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		doc := gridDeck(2, 6)
		before := map[*mem.Shape]deck.Rect{}
		for _, sh := range shapesOf(doc) {
			before[sh] = sh.Rect()
		}

		e, _ := testEngine(seed)
		got := e.Resize(doc, 1, ScaleRange{Min: 0.05, Max: 6})
		if got != 14 {
			t.Fatalf("seed %d: Resize = %d, want 14 (titles included)", seed, got)
		}
		for sh, orig := range before {
			r := sh.Rect()
			if r.Width != orig.Width {
				checkDimension(t, "width", r.Width, orig.Width, doc.Width())
			}
			if r.Height != orig.Height {
				checkDimension(t, "height", r.Height, orig.Height, doc.Height())
			}
			if r.Left != orig.Left || r.Top != orig.Top {
				t.Errorf("Resize moved %q", sh.Name())
			}
		}
	}
}

func checkDimension(t *testing.T, what string, got, orig, canvas int64) {
	t.Helper()
	lo := int64(float64(orig) * MinScaleOfOriginal)
	hi := int64(float64(canvas) * MaxScaleOfCanvas)
	if got < lo || got > max(lo, hi) {
		t.Errorf("%s %d outside [%d, %d] (original %d)", what, got, lo, hi, orig)
	}
}

func TestResizeOnlyTextBearing(t *testing.T) {
	doc := mem.New(canvasW, canvasH)
	s := doc.AddSlide()
	pic := s.Add(mem.NewShape("picture", rect(0, 0, 1000, 1000)))
	blank := s.Add(mem.NewShape("blank", rect(0, 0, 1000, 1000)).WithText("  "))
	s.AddBare("ole")

	e, _ := testEngine(1)
	if got := e.Resize(doc, 1, ScaleRange{Min: 2, Max: 2}); got != 0 {
		t.Errorf("Resize = %d, want 0", got)
	}
	if pic.Rect().Width != 1000 || blank.Rect().Width != 1000 {
		t.Error("Resize touched shapes without text")
	}
}

func TestResizeFailureNotCounted(t *testing.T) {
	doc := mem.New(canvasW, canvasH)
	s := doc.AddSlide()
	s.Add(mem.NewShape("ok", rect(0, 0, 1000, 1000)).WithText("a"))
	locked := s.Add(mem.NewShape("locked", rect(0, 0, 1000, 1000)).WithText("b"))
	locked.WriteErr = errNegativeExtent

	e, failures := testEngine(1)
	if got := e.Resize(doc, 1, ScaleRange{Min: 2, Max: 2}); got != 1 {
		t.Errorf("Resize = %d, want 1", got)
	}
	if len(*failures) != 1 || (*failures)[0].Shape != "locked" {
		t.Errorf("failures = %v, want the locked shape", *failures)
	}
}
