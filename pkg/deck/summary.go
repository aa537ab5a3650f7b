package deck

// Summary is a serializable view of a document, used to compare a deck before
// and after perturbation.
type Summary struct {
	Width  int64          `json:"width"`
	Height int64          `json:"height"`
	Slides []SlideSummary `json:"slides"`
}

// SlideSummary describes one slide.
type SlideSummary struct {
	Index  int            `json:"index"`
	Shapes []ShapeSummary `json:"shapes"`
}

// ShapeSummary describes one shape. Fields that the shape cannot report are
// left empty.
type ShapeSummary struct {
	Name        string    `json:"name"`
	Bounds      *Rect     `json:"bounds,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Text        string    `json:"text,omitempty"`
	FontSizes   []float64 `json:"font_sizes,omitempty"`
}

// Summarize walks d and records every shape's observable state.
// Runs without an explicit size are omitted from FontSizes.
func Summarize(d Document) Summary {
	sum := Summary{
		Width:  d.Width(),
		Height: d.Height(),
		Slides: make([]SlideSummary, 0, len(d.Slides())),
	}
	for i, slide := range d.Slides() {
		ss := SlideSummary{Index: i}
		for _, shape := range slide.Shapes() {
			ss.Shapes = append(ss.Shapes, summarizeShape(shape))
		}
		sum.Slides = append(sum.Slides, ss)
	}
	return sum
}

func summarizeShape(s Shape) ShapeSummary {
	out := ShapeSummary{Name: s.Name()}
	if g, ok := s.(Geometric); ok {
		if r, err := g.Bounds(); err == nil {
			out.Bounds = &r
		}
	}
	if p, ok := s.(Placeholder); ok && p.IsPlaceholder() {
		if t, err := p.PlaceholderType(); err == nil {
			out.Placeholder = t.String()
		} else {
			out.Placeholder = "?"
		}
	}
	if tf, ok := s.(TextFrame); ok && tf.HasTextFrame() {
		out.Text = tf.Text()
		for _, p := range tf.Paragraphs() {
			for _, r := range p.Runs() {
				if sz, ok := r.FontSize(); ok {
					out.FontSizes = append(out.FontSizes, sz)
				}
			}
		}
	}
	return out
}

// ShapeCount returns the number of shapes in the summary.
func (s Summary) ShapeCount() int {
	n := 0
	for _, sl := range s.Slides {
		n += len(sl.Shapes)
	}
	return n
}
