package pipeline

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckfuzz/pkg/errors"
)

// writeDeck writes a presentation with the given number of slides, each
// holding a title and four text boxes.
func writeDeck(t *testing.T, path string, slides int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}

	add("ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`)
	for s := 1; s <= slides; s++ {
		var b strings.Builder
		b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="457200" y="274638"/><a:ext cx="8229600" cy="1143000"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:p><a:r><a:t>Slide %d</a:t></a:r></a:p></p:txBody></p:sp>`, s)
		for i := 0; i < 4; i++ {
			fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Box %d"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="%d" y="2000000"/><a:ext cx="1800000" cy="900000"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:p><a:r><a:rPr sz="2000"/><a:t>Point %d</a:t></a:r></a:p></p:txBody></p:sp>`, i+3, i, 457200+i*2000000, i)
		}
		b.WriteString(`</p:spTree></p:cSld></p:sld>`)
		add(fmt.Sprintf("ppt/slides/slide%d.xml", s), b.String())
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel}))
}

func TestRunnerExecute(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	out := filepath.Join(dir, "nested", "out.pptx")
	writeDeck(t, in, 3)

	res, err := quietRunner().Execute(context.Background(), in, out, DefaultOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
	if res.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", res.Seed, DefaultSeed)
	}
	if res.ShapesBefore != 15 {
		t.Errorf("ShapesBefore = %d, want 15", res.ShapesBefore)
	}
	// 12 boxes, floor(12*0.2) = 2 deleted.
	if res.Stats.Deleted != 2 || res.ShapesAfter != 13 {
		t.Errorf("Deleted = %d, ShapesAfter = %d; want 2, 13", res.Stats.Deleted, res.ShapesAfter)
	}

	pres, err := Load(out)
	if err != nil {
		t.Fatalf("Load(out): %v", err)
	}
	if len(pres.Slides()) != 3 {
		t.Errorf("output has %d slides, want 3", len(pres.Slides()))
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	writeDeck(t, in, 1)
	junk := filepath.Join(dir, "junk.pptx")
	if err := os.WriteFile(junk, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	legacy := filepath.Join(dir, "legacy.ppt")
	if err := os.WriteFile(legacy, append(append([]byte{}, compoundFileMagic...), make([]byte, 504)...), 0o644); err != nil {
		t.Fatal(err)
	}
	bad := DefaultOptions()
	bad.DeleteRatio = 2

	tests := []struct {
		name    string
		in, out string
		opts    Options
		code    errors.Code
	}{
		{"missing input", filepath.Join(dir, "missing.pptx"), filepath.Join(dir, "a.pptx"), DefaultOptions(), errors.ErrCodeFileNotFound},
		{"invalid input", junk, filepath.Join(dir, "b.pptx"), DefaultOptions(), errors.ErrCodeInvalidDocument},
		{"legacy input", legacy, filepath.Join(dir, "d.pptx"), DefaultOptions(), errors.ErrCodeUnsupported},
		{"same path", in, in, DefaultOptions(), errors.ErrCodeInvalidPath},
		{"bad options", in, filepath.Join(dir, "c.pptx"), bad, errors.ErrCodeInvalidRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := quietRunner().Execute(context.Background(), tt.in, tt.out, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRunnerDeterministicOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	writeDeck(t, in, 2)

	r := quietRunner()
	a, err := r.Execute(context.Background(), in, filepath.Join(dir, "a.pptx"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Execute(context.Background(), in, filepath.Join(dir, "b.pptx"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a.Stats != b.Stats {
		t.Errorf("stats differ: %+v vs %+v", a.Stats, b.Stats)
	}
	if a.RunID == b.RunID {
		t.Error("run IDs should be unique")
	}

	pa, _ := Load(a.Output)
	pb, _ := Load(b.Output)
	var sa, sb strings.Builder
	if _, err := pa.WriteTo(&sa); err != nil {
		t.Fatal(err)
	}
	if _, err := pb.WriteTo(&sb); err != nil {
		t.Fatal(err)
	}
	if sa.String() != sb.String() {
		t.Error("outputs differ for the same seed")
	}
}

func TestExecuteVariants(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.pptx")
	writeDeck(t, in, 2)

	results, err := quietRunner().ExecuteVariants(context.Background(), in, filepath.Join(dir, "out.pptx"), 3, DefaultOptions())
	if err != nil {
		t.Fatalf("ExecuteVariants: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, res := range results {
		if res.Seed != DefaultSeed+uint64(i) {
			t.Errorf("variant %d seed = %d", i, res.Seed)
		}
		if _, err := os.Stat(res.Output); err != nil {
			t.Errorf("variant %d output: %v", i, err)
		}
	}

	if _, err := quietRunner().ExecuteVariants(context.Background(), in, filepath.Join(dir, "x.pptx"), 0, DefaultOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero variants error = %v, want INVALID_INPUT", err)
	}
}

func TestVariantPath(t *testing.T) {
	tests := []struct {
		out  string
		i, n int
		want string
	}{
		{"out.pptx", 0, 1, "out.pptx"},
		{"out.pptx", 0, 3, "out-001.pptx"},
		{"dir/deck.pptx", 11, 12, "dir/deck-012.pptx"},
		{"noext", 1, 2, "noext-002"},
	}
	for _, tt := range tests {
		if got := VariantPath(tt.out, tt.i, tt.n); got != tt.want {
			t.Errorf("VariantPath(%q, %d, %d) = %q, want %q", tt.out, tt.i, tt.n, got, tt.want)
		}
	}
}
