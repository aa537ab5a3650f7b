package pptx

import (
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

const (
	relTypeLayout = "/slideLayout"
	relTypeMaster = "/slideMaster"
)

// template holds the placeholders of a slide layout or master. A slide
// placeholder without its own transform takes its geometry from here.
type template struct {
	placeholders []*Shape
	master       *template
}

// templates resolves and caches layout and master parts while a package is
// being read. Unreadable layouts are treated as absent.
type templates struct {
	parts  map[string]*part
	parsed map[string]*template
}

func newTemplates(parts map[string]*part) *templates {
	return &templates{parts: parts, parsed: make(map[string]*template)}
}

// layoutFor returns the layout of the named slide part, linked to its master.
func (ts *templates) layoutFor(slide string) *template {
	name := ts.related(slide, relTypeLayout)
	t := ts.load(name)
	if t != nil && t.master == nil {
		t.master = ts.load(ts.related(name, relTypeMaster))
	}
	return t
}

func (ts *templates) load(name string) *template {
	if name == "" {
		return nil
	}
	if t, ok := ts.parsed[name]; ok {
		return t
	}
	t := parseTemplate(ts.parts[name])
	ts.parsed[name] = t
	return t
}

// related returns the first relationship target of the given type from the
// part's _rels entry, resolved against the part's directory.
func (ts *templates) related(name, relType string) string {
	if name == "" {
		return ""
	}
	dir := path.Dir(name)
	rels, ok := ts.parts[path.Join(dir, "_rels", path.Base(name)+".rels")]
	if !ok {
		return ""
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rels.data); err != nil || doc.Root() == nil {
		return ""
	}
	for _, rel := range doc.Root().ChildElements() {
		if attr(rel, "TargetMode") == "External" {
			continue
		}
		if strings.HasSuffix(attr(rel, "Type"), relType) {
			return resolveTarget(dir, attr(rel, "Target"))
		}
	}
	return ""
}

func parseTemplate(pt *part) *template {
	if pt == nil {
		return nil
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return nil
	}
	tree := child(child(doc.Root(), "cSld"), "spTree")
	if tree == nil {
		return nil
	}
	t := &template{}
	for _, el := range tree.ChildElements() {
		sh := &Shape{el: el}
		if shapeTags[el.Tag] && sh.ph() != nil {
			t.placeholders = append(t.placeholders, sh)
		}
	}
	return t
}

// match finds the placeholder with the given idx, then falls back to the
// first one of the same type.
func (t *template) match(idx int, typ string) *Shape {
	for _, sh := range t.placeholders {
		if phIdx(sh.ph()) == idx {
			return sh
		}
	}
	return t.byType(typ)
}

func (t *template) byType(typ string) *Shape {
	for _, sh := range t.placeholders {
		if phType(sh.ph()) == typ {
			return sh
		}
	}
	return nil
}

func phIdx(ph *etree.Element) int {
	n, err := strconv.Atoi(attr(ph, "idx"))
	if err != nil {
		return 0
	}
	return n
}

func phType(ph *etree.Element) string {
	if t := attr(ph, "type"); t != "" {
		return t
	}
	return "obj"
}

// masterType maps a layout placeholder type to the master placeholder it
// inherits from. Masters only carry title, body and the footer trio.
func masterType(typ string) string {
	switch typ {
	case "title", "ctrTitle":
		return "title"
	case "dt", "ftr", "sldNum":
		return typ
	default:
		return "body"
	}
}

// inheritedBounds resolves a placeholder's geometry through the slide's
// layout and then the layout's master.
func (s *Shape) inheritedBounds() (deck.Rect, error) {
	ph := s.ph()
	if ph == nil || s.slide == nil || s.slide.layout == nil {
		return deck.Rect{}, deck.ErrNoGeometry
	}
	layout := s.slide.layout
	typ := phType(ph)
	if base := layout.match(phIdx(ph), typ); base != nil {
		if r, err := base.localBounds(); err == nil {
			return r, nil
		}
		typ = phType(base.ph())
	}
	if layout.master != nil {
		if base := layout.master.byType(masterType(typ)); base != nil {
			return base.localBounds()
		}
	}
	return deck.Rect{}, deck.ErrNoGeometry
}

// materializeXfrm writes r as the shape's own transform so later edits
// override the inherited geometry. Existing transform attributes such as
// rotation are kept.
func (s *Shape) materializeXfrm(r deck.Rect) *etree.Element {
	x := s.xfrm()
	if x == nil {
		x = s.newXfrm()
	}
	off := child(x, "off")
	if off == nil {
		off = etree.NewElement("off")
		off.Space = "a"
		x.InsertChildAt(0, off)
	}
	off.CreateAttr("x", strconv.FormatInt(r.Left, 10))
	off.CreateAttr("y", strconv.FormatInt(r.Top, 10))

	ext := child(x, "ext")
	if ext == nil {
		ext = etree.NewElement("ext")
		ext.Space = "a"
		x.InsertChildAt(off.Index()+1, ext)
	}
	ext.CreateAttr("cx", strconv.FormatInt(r.Width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(r.Height, 10))
	return x
}

// newXfrm creates an empty transform in the position the schema expects:
// first in spPr, or right after the non-visual properties of a frame.
func (s *Shape) newXfrm() *etree.Element {
	x := etree.NewElement("xfrm")
	if s.el.Tag == "graphicFrame" {
		x.Space = s.el.Space
		s.el.InsertChildAt(s.afterNvProps(), x)
		return x
	}

	props := "spPr"
	if s.el.Tag == "grpSp" {
		props = "grpSpPr"
	}
	pr := child(s.el, props)
	if pr == nil {
		pr = etree.NewElement(props)
		pr.Space = s.el.Space
		s.el.InsertChildAt(s.afterNvProps(), pr)
	}
	x.Space = "a"
	pr.InsertChildAt(0, x)
	return x
}

func (s *Shape) afterNvProps() int {
	if nv := s.nvProps(); nv != nil {
		return nv.Index() + 1
	}
	return 0
}
