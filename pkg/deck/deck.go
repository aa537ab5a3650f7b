package deck

import (
	"errors"
	"fmt"
	"strings"
)

// EMUPerInch is the number of English Metric Units in one inch.
const EMUPerInch = 914400

// EMUPerPoint is the number of English Metric Units in one typographic point.
const EMUPerPoint = 12700

// Sentinel errors returned by adapters.
var (
	// ErrNoGeometry is returned when a shape's position or size is neither
	// set on the shape nor resolvable from its layout or master.
	ErrNoGeometry = errors.New("shape has no geometry")

	// ErrDetached is returned when removing a shape that is no longer part of
	// the slide.
	ErrDetached = errors.New("shape is not attached to slide")

	// ErrUnknownPlaceholder is returned when a placeholder type cannot be
	// classified.
	ErrUnknownPlaceholder = errors.New("unknown placeholder type")
)

// Document is an ordered sequence of slides on a fixed canvas.
type Document interface {
	Slides() []Slide
	// Width and Height are the canvas dimensions in EMU. They never change
	// after the document is loaded.
	Width() int64
	Height() int64
}

// Slide is an ordered sequence of shapes.
type Slide interface {
	Shapes() []Shape
	RemoveShape(s Shape) error
}

// Shape is a visual element on a slide. Capabilities are exposed through
// [Geometric], [Placeholder] and [TextFrame].
type Shape interface {
	Name() string
}

// Rect is a shape's bounding box in EMU.
type Rect struct {
	Left   int64
	Top    int64
	Width  int64
	Height int64
}

// Geometric is implemented by shapes with a position and a size.
type Geometric interface {
	Shape
	Bounds() (Rect, error)
	SetPosition(left, top int64) error
	SetSize(width, height int64) error
}

// Placeholder is implemented by shapes that can be bound to a layout role.
type Placeholder interface {
	Shape
	IsPlaceholder() bool
	PlaceholderType() (PlaceholderType, error)
}

// TextFrame is implemented by shapes that may carry text.
type TextFrame interface {
	Shape
	HasTextFrame() bool
	// Text returns the concatenated text of all paragraphs, separated by
	// newlines.
	Text() string
	Paragraphs() []Paragraph
}

// Paragraph is a sequence of runs.
type Paragraph interface {
	Runs() []Run
}

// Run is the smallest unit of styled text.
type Run interface {
	Text() string
	// FontSize returns the explicit size in points, or false when the run
	// inherits its size.
	FontSize() (float64, bool)
	SetFontSize(pt float64) error
}

// PlaceholderType classifies a placeholder's layout role.
type PlaceholderType int

const (
	PlaceholderObject PlaceholderType = iota
	PlaceholderTitle
	PlaceholderBody
	PlaceholderCenterTitle
	PlaceholderSubtitle
	PlaceholderDate
	PlaceholderSlideNumber
	PlaceholderFooter
	PlaceholderHeader
	PlaceholderChart
	PlaceholderTable
	PlaceholderClipArt
	PlaceholderDiagram
	PlaceholderMedia
	PlaceholderSlideImage
	PlaceholderPicture
)

var placeholderNames = map[PlaceholderType]string{
	PlaceholderObject:      "obj",
	PlaceholderTitle:       "title",
	PlaceholderBody:        "body",
	PlaceholderCenterTitle: "ctrTitle",
	PlaceholderSubtitle:    "subTitle",
	PlaceholderDate:        "dt",
	PlaceholderSlideNumber: "sldNum",
	PlaceholderFooter:      "ftr",
	PlaceholderHeader:      "hdr",
	PlaceholderChart:       "chart",
	PlaceholderTable:       "tbl",
	PlaceholderClipArt:     "clipArt",
	PlaceholderDiagram:     "dgm",
	PlaceholderMedia:       "media",
	PlaceholderSlideImage:  "sldImg",
	PlaceholderPicture:     "pic",
}

// String returns the OOXML token for t (e.g. "ctrTitle").
func (t PlaceholderType) String() string {
	if s, ok := placeholderNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PlaceholderType(%d)", int(t))
}

// IsTitle reports whether t is a title or centered title.
func (t PlaceholderType) IsTitle() bool {
	return t == PlaceholderTitle || t == PlaceholderCenterTitle
}

// ParsePlaceholderType maps an OOXML ST_PlaceholderType token to a
// PlaceholderType. An empty token means "obj", the schema default.
func ParsePlaceholderType(s string) (PlaceholderType, error) {
	if s == "" {
		return PlaceholderObject, nil
	}
	for t, name := range placeholderNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlaceholder, s)
}

// HasText reports whether s is a text frame whose trimmed text is non-empty.
func HasText(s Shape) bool {
	tf, ok := s.(TextFrame)
	if !ok || !tf.HasTextFrame() {
		return false
	}
	return strings.TrimSpace(tf.Text()) != ""
}
