package pptx

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

// Shape is a top-level element of a slide's shape tree.
type Shape struct {
	slide   *Slide
	el      *etree.Element
	removed bool
}

// nvProps returns the non-visual properties container (nvSpPr, nvPicPr, ...).
func (s *Shape) nvProps() *etree.Element {
	for _, c := range s.el.ChildElements() {
		if strings.HasPrefix(c.Tag, "nv") {
			return c
		}
	}
	return nil
}

// Name returns the cNvPr name attribute.
func (s *Shape) Name() string {
	return attr(child(s.nvProps(), "cNvPr"), "name")
}

// IsPlaceholder reports whether the shape carries a p:ph marker.
func (s *Shape) IsPlaceholder() bool {
	return s.ph() != nil
}

// PlaceholderType returns the declared placeholder type. An absent type
// attribute means an object placeholder.
func (s *Shape) PlaceholderType() (deck.PlaceholderType, error) {
	ph := s.ph()
	if ph == nil {
		return 0, fmt.Errorf("%s: not a placeholder", s.Name())
	}
	return deck.ParsePlaceholderType(ph.SelectAttrValue("type", ""))
}

func (s *Shape) ph() *etree.Element {
	return child(child(s.nvProps(), "nvPr"), "ph")
}

// xfrm locates the transform element for the shape's kind.
func (s *Shape) xfrm() *etree.Element {
	switch s.el.Tag {
	case "graphicFrame":
		return child(s.el, "xfrm")
	case "grpSp":
		return child(child(s.el, "grpSpPr"), "xfrm")
	default:
		return child(child(s.el, "spPr"), "xfrm")
	}
}

// Bounds reads the shape's offset and extent. Placeholders without a
// transform of their own report the geometry of their layout or master.
func (s *Shape) Bounds() (deck.Rect, error) {
	if s.removed {
		return deck.Rect{}, deck.ErrDetached
	}
	r, err := s.localBounds()
	if errors.Is(err, deck.ErrNoGeometry) {
		return s.inheritedBounds()
	}
	return r, err
}

func (s *Shape) localBounds() (deck.Rect, error) {
	x := s.xfrm()
	off, ext := child(x, "off"), child(x, "ext")
	if off == nil || ext == nil {
		return deck.Rect{}, deck.ErrNoGeometry
	}

	var r deck.Rect
	var err error
	if r.Left, err = int64Attr(off, "x"); err != nil {
		return deck.Rect{}, err
	}
	if r.Top, err = int64Attr(off, "y"); err != nil {
		return deck.Rect{}, err
	}
	if r.Width, err = int64Attr(ext, "cx"); err != nil {
		return deck.Rect{}, err
	}
	if r.Height, err = int64Attr(ext, "cy"); err != nil {
		return deck.Rect{}, err
	}
	return r, nil
}

// SetPosition moves the shape's top-left corner.
func (s *Shape) SetPosition(left, top int64) error {
	off, err := s.xfrmChild("off")
	if err != nil {
		return err
	}
	off.CreateAttr("x", strconv.FormatInt(left, 10))
	off.CreateAttr("y", strconv.FormatInt(top, 10))
	return nil
}

// SetSize changes the shape's extent.
func (s *Shape) SetSize(width, height int64) error {
	ext, err := s.xfrmChild("ext")
	if err != nil {
		return err
	}
	ext.CreateAttr("cx", strconv.FormatInt(width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(height, 10))
	return nil
}

// xfrmChild returns the off or ext element, first copying inherited
// geometry into a local transform when the shape has none.
func (s *Shape) xfrmChild(tag string) (*etree.Element, error) {
	if s.removed {
		return nil, deck.ErrDetached
	}
	x := s.xfrm()
	if child(x, "off") == nil || child(x, "ext") == nil {
		r, err := s.inheritedBounds()
		if err != nil {
			return nil, err
		}
		x = s.materializeXfrm(r)
	}
	return child(x, tag), nil
}

// HasTextFrame reports whether the shape has a txBody.
func (s *Shape) HasTextFrame() bool {
	return s.txBody() != nil
}

func (s *Shape) txBody() *etree.Element {
	return child(s.el, "txBody")
}

// Text joins paragraph texts with newlines.
func (s *Shape) Text() string {
	paras := s.Paragraphs()
	lines := make([]string, len(paras))
	for i, p := range paras {
		lines[i] = p.(*Paragraph).Text()
	}
	return strings.Join(lines, "\n")
}

// Paragraphs returns the a:p children of the text body.
func (s *Shape) Paragraphs() []deck.Paragraph {
	var out []deck.Paragraph
	for _, p := range children(s.txBody(), "p") {
		out = append(out, &Paragraph{el: p, shape: s})
	}
	return out
}

// Paragraph is an a:p element.
type Paragraph struct {
	el    *etree.Element
	shape *Shape
}

// Text concatenates the paragraph's run texts.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs() {
		b.WriteString(r.Text())
	}
	return b.String()
}

// Runs returns text runs and fields in document order.
func (p *Paragraph) Runs() []deck.Run {
	var out []deck.Run
	for _, c := range p.el.ChildElements() {
		if c.Tag == "r" || c.Tag == "fld" {
			out = append(out, &Run{el: c, shape: p.shape})
		}
	}
	return out
}

// Run is an a:r or a:fld element.
type Run struct {
	el    *etree.Element
	shape *Shape
}

// Text returns the run's a:t content.
func (r *Run) Text() string {
	t := child(r.el, "t")
	if t == nil {
		return ""
	}
	return t.Text()
}

// FontSize returns the explicit size in points. ok is false when the run
// inherits its size.
func (r *Run) FontSize() (float64, bool) {
	sz := attr(child(r.el, "rPr"), "sz")
	if sz == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(sz, 64)
	if err != nil {
		return 0, false
	}
	return v / 100, true
}

// SetFontSize writes an explicit size, creating rPr when needed.
func (r *Run) SetFontSize(pt float64) error {
	if r.shape.removed {
		return deck.ErrDetached
	}
	if pt <= 0 || math.IsNaN(pt) || math.IsInf(pt, 0) {
		return fmt.Errorf("invalid font size %v", pt)
	}
	rpr := child(r.el, "rPr")
	if rpr == nil {
		rpr = etree.NewElement("rPr")
		rpr.Space = r.el.Space
		r.el.InsertChildAt(0, rpr)
	}
	rpr.CreateAttr("sz", strconv.Itoa(int(math.Round(pt*100))))
	return nil
}

var (
	_ deck.Shape       = (*Shape)(nil)
	_ deck.Geometric   = (*Shape)(nil)
	_ deck.Placeholder = (*Shape)(nil)
	_ deck.TextFrame   = (*Shape)(nil)
	_ deck.Paragraph   = (*Paragraph)(nil)
	_ deck.Run         = (*Run)(nil)
)
