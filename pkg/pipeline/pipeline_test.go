package pipeline

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/deck/mem"
	"github.com/matzehuels/deckfuzz/pkg/errors"
)

func testDeck() *mem.Document {
	doc := mem.New(9144000, 6858000)
	for s := 0; s < 3; s++ {
		slide := doc.AddSlide()
		slide.Add(mem.NewShape(fmt.Sprintf("Title %d", s), deck.Rect{Left: 457200, Top: 274638, Width: 8229600, Height: 1143000}).
			WithPlaceholder(deck.PlaceholderTitle).
			WithText("Heading"))
		for i := 0; i < 6; i++ {
			slide.Add(mem.NewShape(fmt.Sprintf("Box %d.%d", s, i), deck.Rect{Left: int64(457200 + i*1000000), Top: 2000000, Width: 900000, Height: 600000}).
				WithRuns(mem.NewSizedRun("point", 20), mem.NewRun(" more")))
		}
	}
	return doc
}

func TestDefaultOptionsValid(t *testing.T) {
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
	if err := DefaultLegacyOptions().Options().Validate(); err != nil {
		t.Errorf("legacy defaults: Validate() = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"negative delete", func(o *Options) { o.DeleteRatio = -0.1 }, errors.ErrCodeInvalidRatio},
		{"overlap above one", func(o *Options) { o.OverlapRatio = 1.5 }, errors.ErrCodeInvalidRatio},
		{"intensity above one", func(o *Options) { o.OverlapIntensity = 2 }, errors.ErrCodeInvalidRatio},
		{"max shift", func(o *Options) { o.MaxShiftRatio = -1 }, errors.ErrCodeInvalidRatio},
		{"inverted scale", func(o *Options) { o.ScaleMin, o.ScaleMax = 2, 1 }, errors.ErrCodeInvalidRange},
		{"zero scale", func(o *Options) { o.ScaleMin = 0 }, errors.ErrCodeInvalidRange},
		{"inverted font", func(o *Options) { o.FontDeltaMin, o.FontDeltaMax = 5, -5 }, errors.ErrCodeInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			err := opts.Validate()
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLegacyDerivation(t *testing.T) {
	l := LegacyOptions{
		Seed:              5,
		PreserveTitle:     true,
		DeleteRatio:       0.1,
		LayoutChangeRatio: 0.5,
		FontChangeRatio:   0.25,
		FontDeltaMin:      -4,
		FontDeltaMax:      4,
	}
	want := Options{
		Seed:             5,
		PreserveTitle:    true,
		DeleteRatio:      0.1,
		OverlapRatio:     0.5,
		OverlapIntensity: 0.5,
		PositionRatio:    0.65,
		MaxShiftRatio:    0.3,
		ResizeRatio:      0.25,
		ScaleMin:         0.4,
		ScaleMax:         2.5,
		FontRatio:        0.25,
		FontDeltaMin:     -4,
		FontDeltaMax:     4,
	}
	got := l.Options()
	got.PositionRatio = float64(int(got.PositionRatio*1000+0.5)) / 1000
	if got != want {
		t.Errorf("Options() = %+v\nwant %+v", got, want)
	}

	l.LayoutChangeRatio = 0.9
	if got := l.Options().PositionRatio; got != 1 {
		t.Errorf("PositionRatio for layout 0.9 = %v, want 1", got)
	}
}

func TestApplyAllDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 11

	a, b := testDeck(), testDeck()
	sa, err := ApplyAll(context.Background(), a, opts)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	sb, err := ApplyAll(context.Background(), b, opts)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if sa != sb {
		t.Errorf("stats differ: %+v vs %+v", sa, sb)
	}
	if !reflect.DeepEqual(deck.Summarize(a), deck.Summarize(b)) {
		t.Error("documents differ for the same seed")
	}
	// 18 non-title boxes, floor(18*0.2) = 3.
	if sa.Deleted != 3 {
		t.Errorf("Deleted = %d, want 3", sa.Deleted)
	}
	if sa.FontRuns < sa.FontShapes {
		t.Errorf("FontRuns = %d < FontShapes = %d", sa.FontRuns, sa.FontShapes)
	}
}

func TestApplyAllZeroRatios(t *testing.T) {
	opts := DefaultOptions()
	opts.DeleteRatio, opts.OverlapRatio, opts.PositionRatio, opts.ResizeRatio, opts.FontRatio = 0, 0, 0, 0, 0

	doc := testDeck()
	before := deck.Summarize(doc)
	stats, err := ApplyAll(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
	if !reflect.DeepEqual(before, deck.Summarize(doc)) {
		t.Error("document changed with every ratio at zero")
	}
}

func TestApplyAllInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.FontRatio = 3
	doc := testDeck()
	before := deck.Summarize(doc)

	if _, err := ApplyAll(context.Background(), doc, opts); !errors.Is(err, errors.ErrCodeInvalidRatio) {
		t.Errorf("ApplyAll error = %v, want INVALID_RATIO", err)
	}
	if !reflect.DeepEqual(before, deck.Summarize(doc)) {
		t.Error("invalid options must not touch the document")
	}
}

func TestApplyAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ApplyAll(ctx, testDeck(), DefaultOptions()); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestApplyAllCountsFailures(t *testing.T) {
	doc := mem.New(1000, 1000)
	slide := doc.AddSlide()
	for i := 0; i < 4; i++ {
		sh := slide.Add(mem.NewShape(fmt.Sprintf("Box %d", i), deck.Rect{Width: 100, Height: 100}))
		sh.WriteErr = fmt.Errorf("locked")
	}

	opts := DefaultOptions()
	opts.DeleteRatio, opts.OverlapRatio, opts.ResizeRatio, opts.FontRatio = 0, 0, 0, 0
	opts.PositionRatio = 1

	stats, err := ApplyAll(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if stats.Moved != 0 || stats.Failures != 4 {
		t.Errorf("Moved = %d, Failures = %d; want 0, 4", stats.Moved, stats.Failures)
	}
}

func TestApplyLegacy(t *testing.T) {
	l := DefaultLegacyOptions()
	l.LayoutChangeRatio = -1
	if _, err := ApplyLegacy(context.Background(), testDeck(), l); !errors.Is(err, errors.ErrCodeInvalidRatio) {
		t.Errorf("ApplyLegacy error = %v, want INVALID_RATIO", err)
	}

	a, b := testDeck(), testDeck()
	sl, err := ApplyLegacy(context.Background(), a, DefaultLegacyOptions())
	if err != nil {
		t.Fatalf("ApplyLegacy: %v", err)
	}
	sf, err := ApplyAll(context.Background(), b, DefaultLegacyOptions().Options())
	if err != nil {
		t.Fatalf("ApplyAll: %v", err)
	}
	if sl != sf {
		t.Errorf("legacy stats %+v differ from derived options %+v", sl, sf)
	}
}

func TestStatsMap(t *testing.T) {
	s := Stats{Deleted: 1, Overlapped: 2, Moved: 3, Resized: 4, FontShapes: 5, FontRuns: 6, Failures: 7}
	want := map[string]int{
		"deleted_elements":    1,
		"overlapped_elements": 2,
		"moved_elements":      3,
		"resized_textboxes":   4,
		"font_changed":        5,
		"font_runs_changed":   6,
	}
	if got := s.Map(); !reflect.DeepEqual(got, want) {
		t.Errorf("Map() = %v, want %v", got, want)
	}

	var total Stats
	total.Add(s)
	total.Add(s)
	if total.Deleted != 2 || total.Failures != 14 {
		t.Errorf("Add: %+v", total)
	}
}
