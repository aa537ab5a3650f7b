package pptx

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

var errNoShapeTree = errors.New("slide has no shape tree")

// shapeTags are the spTree children that become deck shapes.
var shapeTags = map[string]bool{
	"sp":           true,
	"pic":          true,
	"graphicFrame": true,
	"grpSp":        true,
	"cxnSp":        true,
}

// Slide is one slide part of a Presentation.
type Slide struct {
	name   string
	tree   *etree.Element
	shapes []*Shape
	layout *template
}

func parseSlide(pt *part) (*Slide, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(pt.data); err != nil {
		return nil, err
	}
	tree := child(child(doc.Root(), "cSld"), "spTree")
	if tree == nil {
		return nil, errNoShapeTree
	}
	pt.doc = doc

	s := &Slide{name: pt.name, tree: tree}
	for _, el := range tree.ChildElements() {
		if shapeTags[el.Tag] {
			s.shapes = append(s.shapes, &Shape{slide: s, el: el})
		}
	}
	return s, nil
}

// Shapes returns the top-level shapes in z-order.
func (s *Slide) Shapes() []deck.Shape {
	out := make([]deck.Shape, len(s.shapes))
	for i, sh := range s.shapes {
		out[i] = sh
	}
	return out
}

// RemoveShape detaches shape from the slide's shape tree.
func (s *Slide) RemoveShape(shape deck.Shape) error {
	sh, ok := shape.(*Shape)
	if !ok || sh.slide != s || sh.removed {
		return deck.ErrDetached
	}
	if s.tree.RemoveChild(sh.el) == nil {
		return fmt.Errorf("%s: %w", sh.Name(), deck.ErrDetached)
	}
	for i, cur := range s.shapes {
		if cur == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	sh.removed = true
	return nil
}

var _ deck.Slide = (*Slide)(nil)
