// Package mem provides an in-memory implementation of the deck object model.
//
// It is used by tests throughout deckfuzz and by callers that build decks
// programmatically. Every capability can be made to fail on demand, which is
// how the engine's fault tolerance is exercised:
//
//	doc := mem.New(9144000, 6858000)
//	slide := doc.AddSlide()
//	title := slide.Add(mem.NewShape("Title 1", deck.Rect{Left: 0, Top: 0, Width: 100, Height: 50}).
//	    WithPlaceholder(deck.PlaceholderTitle).
//	    WithText("Quarterly results"))
//	broken := slide.Add(mem.NewShape("Inherited", deck.Rect{}))
//	broken.NoGeometry = true
package mem

import (
	"fmt"
	"strings"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// Document is an in-memory deck.
type Document struct {
	width  int64
	height int64
	slides []*Slide
}

// New creates an empty document with the given canvas size in EMU.
func New(width, height int64) *Document {
	return &Document{width: width, height: height}
}

// AddSlide appends an empty slide and returns it.
func (d *Document) AddSlide() *Slide {
	s := &Slide{}
	d.slides = append(d.slides, s)
	return s
}

// Slide returns the i-th slide.
func (d *Document) Slide(i int) *Slide { return d.slides[i] }

func (d *Document) Slides() []deck.Slide {
	out := make([]deck.Slide, len(d.slides))
	for i, s := range d.slides {
		out[i] = s
	}
	return out
}

func (d *Document) Width() int64  { return d.width }
func (d *Document) Height() int64 { return d.height }

// Slide is an ordered list of shapes.
type Slide struct {
	shapes []deck.Shape

	// RemoveErr, when set, is returned by every RemoveShape call.
	RemoveErr error
}

// Add appends sh to the slide and returns it.
func (s *Slide) Add(sh *Shape) *Shape {
	s.shapes = append(s.shapes, sh)
	return sh
}

// AddBare appends a shape that exposes no capabilities beyond its name.
func (s *Slide) AddBare(name string) deck.Shape {
	b := &bare{name: name}
	s.shapes = append(s.shapes, b)
	return b
}

// Len returns the number of shapes on the slide.
func (s *Slide) Len() int { return len(s.shapes) }

// Contains reports whether sh is still attached to the slide.
func (s *Slide) Contains(sh deck.Shape) bool {
	for _, x := range s.shapes {
		if x == sh {
			return true
		}
	}
	return false
}

func (s *Slide) Shapes() []deck.Shape {
	return append([]deck.Shape(nil), s.shapes...)
}

func (s *Slide) RemoveShape(target deck.Shape) error {
	if s.RemoveErr != nil {
		return s.RemoveErr
	}
	for i, x := range s.shapes {
		if x == target {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %q: %w", target.Name(), deck.ErrDetached)
}

// bare is a shape with a name and nothing else.
type bare struct{ name string }

func (b *bare) Name() string { return b.name }

// Shape is an in-memory shape supporting every deck capability.
type Shape struct {
	name string
	rect deck.Rect

	placeholder    bool
	phType         deck.PlaceholderType
	PlaceholderErr error

	textFrame  bool
	paragraphs []*Paragraph

	// NoGeometry makes Bounds and the setters fail with deck.ErrNoGeometry.
	NoGeometry bool
	// WriteErr, when set, is returned by SetPosition and SetSize.
	WriteErr error
}

// NewShape creates a shape with the given name and bounds.
func NewShape(name string, r deck.Rect) *Shape {
	return &Shape{name: name, rect: r}
}

// WithPlaceholder marks the shape as a placeholder of type t.
func (s *Shape) WithPlaceholder(t deck.PlaceholderType) *Shape {
	s.placeholder = true
	s.phType = t
	return s
}

// WithText gives the shape a text frame with one single-run paragraph per
// argument. Runs have no explicit font size.
func (s *Shape) WithText(paragraphs ...string) *Shape {
	s.textFrame = true
	for _, p := range paragraphs {
		s.paragraphs = append(s.paragraphs, &Paragraph{runs: []*Run{{text: p}}})
	}
	return s
}

// WithRuns gives the shape a text frame containing a single paragraph made of
// the given runs.
func (s *Shape) WithRuns(runs ...*Run) *Shape {
	s.textFrame = true
	s.paragraphs = append(s.paragraphs, &Paragraph{runs: runs})
	return s
}

// Rect returns the stored bounds regardless of NoGeometry.
func (s *Shape) Rect() deck.Rect { return s.rect }

// AllRuns returns every run in document order.
func (s *Shape) AllRuns() []*Run {
	var out []*Run
	for _, p := range s.paragraphs {
		out = append(out, p.runs...)
	}
	return out
}

func (s *Shape) Name() string { return s.name }

func (s *Shape) Bounds() (deck.Rect, error) {
	if s.NoGeometry {
		return deck.Rect{}, deck.ErrNoGeometry
	}
	return s.rect, nil
}

func (s *Shape) SetPosition(left, top int64) error {
	if s.NoGeometry {
		return deck.ErrNoGeometry
	}
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.rect.Left, s.rect.Top = left, top
	return nil
}

func (s *Shape) SetSize(width, height int64) error {
	if s.NoGeometry {
		return deck.ErrNoGeometry
	}
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.rect.Width, s.rect.Height = width, height
	return nil
}

func (s *Shape) IsPlaceholder() bool { return s.placeholder }

func (s *Shape) PlaceholderType() (deck.PlaceholderType, error) {
	if s.PlaceholderErr != nil {
		return 0, s.PlaceholderErr
	}
	return s.phType, nil
}

func (s *Shape) HasTextFrame() bool { return s.textFrame }

func (s *Shape) Text() string {
	lines := make([]string, len(s.paragraphs))
	for i, p := range s.paragraphs {
		var b strings.Builder
		for _, r := range p.runs {
			b.WriteString(r.text)
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (s *Shape) Paragraphs() []deck.Paragraph {
	out := make([]deck.Paragraph, len(s.paragraphs))
	for i, p := range s.paragraphs {
		out[i] = p
	}
	return out
}

// Paragraph is a list of runs.
type Paragraph struct {
	runs []*Run
}

func (p *Paragraph) Runs() []deck.Run {
	out := make([]deck.Run, len(p.runs))
	for i, r := range p.runs {
		out[i] = r
	}
	return out
}

// Run is a text run with an optional explicit size.
type Run struct {
	text    string
	size    float64
	hasSize bool

	// WriteErr, when set, is returned by SetFontSize.
	WriteErr error
}

// NewRun creates a run without an explicit font size.
func NewRun(text string) *Run {
	return &Run{text: text}
}

// NewSizedRun creates a run with an explicit font size in points.
func NewSizedRun(text string, pt float64) *Run {
	return &Run{text: text, size: pt, hasSize: true}
}

func (r *Run) Text() string { return r.text }

func (r *Run) FontSize() (float64, bool) { return r.size, r.hasSize }

func (r *Run) SetFontSize(pt float64) error {
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.size, r.hasSize = pt, true
	return nil
}

var (
	_ deck.Document    = (*Document)(nil)
	_ deck.Slide       = (*Slide)(nil)
	_ deck.Geometric   = (*Shape)(nil)
	_ deck.Placeholder = (*Shape)(nil)
	_ deck.TextFrame   = (*Shape)(nil)
	_ deck.Run         = (*Run)(nil)
)
