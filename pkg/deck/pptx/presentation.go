// Package pptx adapts Office Open XML presentations to the deck interfaces.
//
// A Presentation keeps every part of the package in memory. Slide parts are
// parsed into element trees and edited in place; all other parts are written
// back byte for byte on Save, so themes, media, layouts and relationships
// survive a round trip untouched. Layouts and masters are read only to
// resolve the geometry placeholders inherit from them.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/matzehuels/deckfuzz/pkg/deck"
)

const (
	presentationPart = "ppt/presentation.xml"
	presentationRels = "ppt/_rels/presentation.xml.rels"
	slidePrefix      = "ppt/slides/slide"

	// Default 4:3 canvas used when presentation.xml carries no sldSz.
	defaultWidth  = 9144000
	defaultHeight = 6858000
)

// Presentation is an editable PPTX package.
type Presentation struct {
	parts  []*part
	width  int64
	height int64
	slides []*Slide
}

type part struct {
	name     string
	method   uint16
	modified time.Time
	data     []byte
	doc      *etree.Document // non-nil for parsed slide parts
}

// Open reads the presentation at filename.
func Open(filename string) (*Presentation, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Read(f, info.Size())
}

// Read parses a presentation from a zip archive of the given size.
func Read(r io.ReaderAt, size int64) (*Presentation, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Presentation{width: defaultWidth, height: defaultHeight}
	byName := make(map[string]*part, len(zr.File))
	for _, f := range zr.File {
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.Name, err)
		}
		pt := &part{name: f.Name, method: f.Method, modified: f.Modified, data: data}
		p.parts = append(p.parts, pt)
		byName[f.Name] = pt
	}

	pres, ok := byName[presentationPart]
	if !ok {
		return nil, fmt.Errorf("missing required file: %s", presentationPart)
	}
	presDoc := etree.NewDocument()
	if err := presDoc.ReadFromBytes(pres.data); err != nil {
		return nil, fmt.Errorf("parsing presentation: %w", err)
	}
	if err := p.readSlideSize(presDoc.Root()); err != nil {
		return nil, err
	}

	tpl := newTemplates(byName)
	for _, name := range slideOrder(presDoc.Root(), byName) {
		pt := byName[name]
		s, err := parseSlide(pt)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		s.layout = tpl.layoutFor(name)
		p.slides = append(p.slides, s)
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *Presentation) readSlideSize(root *etree.Element) error {
	sz := child(root, "sldSz")
	if sz == nil {
		return nil
	}
	cx, err := int64Attr(sz, "cx")
	if err != nil {
		return fmt.Errorf("slide size: %w", err)
	}
	cy, err := int64Attr(sz, "cy")
	if err != nil {
		return fmt.Errorf("slide size: %w", err)
	}
	p.width, p.height = cx, cy
	return nil
}

// slideOrder resolves the slide parts in presentation order. It follows
// sldIdLst through the presentation relationships and falls back to the
// numeric order of the slide file names when that chain is incomplete.
func slideOrder(root *etree.Element, parts map[string]*part) []string {
	var files []string
	for name := range parts {
		if isSlidePart(name) {
			files = append(files, name)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return slideNumber(files[i]) < slideNumber(files[j])
	})

	rels, ok := parts[presentationRels]
	list := child(root, "sldIdLst")
	if !ok || list == nil {
		return files
	}
	relDoc := etree.NewDocument()
	if err := relDoc.ReadFromBytes(rels.data); err != nil || relDoc.Root() == nil {
		return files
	}
	targets := make(map[string]string)
	for _, rel := range relDoc.Root().ChildElements() {
		targets[rel.SelectAttrValue("Id", "")] = resolveTarget("ppt", rel.SelectAttrValue("Target", ""))
	}

	var ordered []string
	for _, id := range list.ChildElements() {
		rid := relID(id)
		name, ok := targets[rid]
		if !ok || !isSlidePart(name) {
			return files
		}
		if _, ok := parts[name]; !ok {
			return files
		}
		ordered = append(ordered, name)
	}
	if len(ordered) == 0 {
		return files
	}
	return ordered
}

func relID(el *etree.Element) string {
	for _, a := range el.Attr {
		if a.Key == "id" && a.Space != "" {
			return a.Value
		}
	}
	return ""
}

func resolveTarget(base, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(base, target)
}

func isSlidePart(name string) bool {
	return strings.HasPrefix(name, slidePrefix) && strings.HasSuffix(name, ".xml")
}

func slideNumber(name string) int {
	n, _ := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, slidePrefix), ".xml"))
	return n
}

// Width returns the slide width in EMU.
func (p *Presentation) Width() int64 { return p.width }

// Height returns the slide height in EMU.
func (p *Presentation) Height() int64 { return p.height }

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []deck.Slide {
	out := make([]deck.Slide, len(p.slides))
	for i, s := range p.slides {
		out[i] = s
	}
	return out
}

// WriteTo serializes the package. Parts are written in their original order.
func (p *Presentation) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	for _, pt := range p.parts {
		data := pt.data
		if pt.doc != nil {
			b, err := pt.doc.WriteToBytes()
			if err != nil {
				return cw.n, fmt.Errorf("serializing %s: %w", pt.name, err)
			}
			data = b
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     pt.name,
			Method:   pt.method,
			Modified: pt.modified,
		})
		if err != nil {
			return cw.n, err
		}
		if _, err := io.Copy(fw, bytes.NewReader(data)); err != nil {
			return cw.n, err
		}
	}
	err := zw.Close()
	return cw.n, err
}

// Save writes the presentation to filename. The file is written to a
// temporary sibling first and renamed into place.
func (p *Presentation) Save(filename string) error {
	tmp, err := os.CreateTemp(filepath.Dir(filename), ".deckfuzz-*.pptx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := p.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

var _ deck.Document = (*Presentation)(nil)
