// Package pipeline composes the perturbation operators into one run.
//
// This package is the single entry point used by the CLI. It owns the run
// configuration, applies the operators in a fixed order against one seeded
// random source, and collects the per-operator counts.
//
// # Order
//
// Operators always run in this order, each seeing the document as left by
// the previous one:
//
//  1. delete
//  2. overlap
//  3. position
//  4. resize
//  5. font_size
//
// # Usage
//
// Apply every operator to an open document:
//
//	opts := pipeline.DefaultOptions()
//	opts.Seed = 7
//	stats, err := pipeline.ApplyAll(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stats.Map())
//
// Or run the whole load, perturb, save cycle on files:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, "in.pptx", "out.pptx", opts)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/errors"
	"github.com/matzehuels/deckfuzz/pkg/observability"
	"github.com/matzehuels/deckfuzz/pkg/perturb"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Profiles
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	DefaultDeleteRatio      = 0.2
	DefaultOverlapRatio     = 0.3
	DefaultOverlapIntensity = 0.5
	DefaultPositionRatio    = 0.4
	DefaultMaxShiftRatio    = 0.3
	DefaultResizeRatio      = 0.3
	DefaultScaleMin         = 0.4
	DefaultScaleMax         = 2.5
	DefaultFontRatio        = 0.3
	DefaultFontDeltaMin     = -6
	DefaultFontDeltaMax     = 8
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures a full perturbation run.
// Ratios are fractions of the candidate pool in [0, 1].
type Options struct {
	Seed          uint64 `json:"seed" toml:"seed"`
	PreserveTitle bool   `json:"preserve_title" toml:"preserve_title"`

	DeleteRatio      float64 `json:"delete_ratio" toml:"delete_ratio"`
	OverlapRatio     float64 `json:"overlap_ratio" toml:"overlap_ratio"`
	OverlapIntensity float64 `json:"overlap_intensity" toml:"overlap_intensity"`
	PositionRatio    float64 `json:"position_ratio" toml:"position_ratio"`
	MaxShiftRatio    float64 `json:"max_shift_ratio" toml:"max_shift_ratio"`
	ResizeRatio      float64 `json:"resize_ratio" toml:"resize_ratio"`
	ScaleMin         float64 `json:"scale_min" toml:"scale_min"`
	ScaleMax         float64 `json:"scale_max" toml:"scale_max"`
	FontRatio        float64 `json:"font_ratio" toml:"font_ratio"`
	FontDeltaMin     int     `json:"font_delta_min" toml:"font_delta_min"`
	FontDeltaMax     int     `json:"font_delta_max" toml:"font_delta_max"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		Seed:             DefaultSeed,
		PreserveTitle:    true,
		DeleteRatio:      DefaultDeleteRatio,
		OverlapRatio:     DefaultOverlapRatio,
		OverlapIntensity: DefaultOverlapIntensity,
		PositionRatio:    DefaultPositionRatio,
		MaxShiftRatio:    DefaultMaxShiftRatio,
		ResizeRatio:      DefaultResizeRatio,
		ScaleMin:         DefaultScaleMin,
		ScaleMax:         DefaultScaleMax,
		FontRatio:        DefaultFontRatio,
		FontDeltaMin:     DefaultFontDeltaMin,
		FontDeltaMax:     DefaultFontDeltaMax,
	}
}

// Validate checks every ratio and range.
func (o Options) Validate() error {
	ratios := []struct {
		name string
		v    float64
	}{
		{"delete_ratio", o.DeleteRatio},
		{"overlap_ratio", o.OverlapRatio},
		{"overlap_intensity", o.OverlapIntensity},
		{"position_ratio", o.PositionRatio},
		{"max_shift_ratio", o.MaxShiftRatio},
		{"resize_ratio", o.ResizeRatio},
		{"font_ratio", o.FontRatio},
	}
	for _, r := range ratios {
		if err := errors.ValidateRatio(r.name, r.v); err != nil {
			return err
		}
	}
	if err := errors.ValidatePositiveRange("scale", o.ScaleMin, o.ScaleMax); err != nil {
		return err
	}
	return errors.ValidateRange("font_delta", float64(o.FontDeltaMin), float64(o.FontDeltaMax))
}

// seed returns the configured seed, treating zero as unset.
func (o Options) seed() uint64 {
	if o.Seed == 0 {
		return DefaultSeed
	}
	return o.Seed
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return o.Logger
}

// =============================================================================
// Legacy Options
// =============================================================================

// LegacyPositionFactor scales the layout ratio into the position ratio.
const LegacyPositionFactor = 1.3

// LegacyOptions is the reduced parameter set of the single-ratio interface.
// Every other parameter is derived by Options.
type LegacyOptions struct {
	Seed              uint64
	PreserveTitle     bool
	DeleteRatio       float64
	LayoutChangeRatio float64
	FontChangeRatio   float64
	FontDeltaMin      int
	FontDeltaMax      int
	Logger            *log.Logger
}

// DefaultLegacyOptions returns the stock legacy configuration.
func DefaultLegacyOptions() LegacyOptions {
	return LegacyOptions{
		Seed:              DefaultSeed,
		PreserveTitle:     true,
		DeleteRatio:       0.2,
		LayoutChangeRatio: 0.3,
		FontChangeRatio:   0.3,
		FontDeltaMin:      -4,
		FontDeltaMax:      4,
	}
}

// Options expands the legacy parameters into a full configuration. The
// layout ratio drives both overlap and position; the font ratio drives both
// resize and font size.
func (l LegacyOptions) Options() Options {
	return Options{
		Seed:             l.Seed,
		PreserveTitle:    l.PreserveTitle,
		DeleteRatio:      l.DeleteRatio,
		OverlapRatio:     l.LayoutChangeRatio,
		OverlapIntensity: DefaultOverlapIntensity,
		PositionRatio:    min(1, l.LayoutChangeRatio*LegacyPositionFactor),
		MaxShiftRatio:    DefaultMaxShiftRatio,
		ResizeRatio:      l.FontChangeRatio,
		ScaleMin:         DefaultScaleMin,
		ScaleMax:         DefaultScaleMax,
		FontRatio:        l.FontChangeRatio,
		FontDeltaMin:     l.FontDeltaMin,
		FontDeltaMax:     l.FontDeltaMax,
		Logger:           l.Logger,
	}
}

// =============================================================================
// Stats
// =============================================================================

// Stats holds the per-operator counts of one run.
type Stats struct {
	Deleted    int `json:"deleted_elements"`
	Overlapped int `json:"overlapped_elements"`
	Moved      int `json:"moved_elements"`
	Resized    int `json:"resized_textboxes"`
	FontShapes int `json:"font_changed"`
	FontRuns   int `json:"font_runs_changed"`

	// Failures counts elements an operator skipped because of an error.
	Failures int `json:"failures"`
}

// Map returns the counts keyed by statistic name.
func (s Stats) Map() map[string]int {
	return map[string]int{
		"deleted_elements":    s.Deleted,
		"overlapped_elements": s.Overlapped,
		"moved_elements":      s.Moved,
		"resized_textboxes":   s.Resized,
		"font_changed":        s.FontShapes,
		"font_runs_changed":   s.FontRuns,
	}
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Deleted += other.Deleted
	s.Overlapped += other.Overlapped
	s.Moved += other.Moved
	s.Resized += other.Resized
	s.FontShapes += other.FontShapes
	s.FontRuns += other.FontRuns
	s.Failures += other.Failures
}

// =============================================================================
// Apply
// =============================================================================

// ApplyAll validates opts and runs every operator against doc in order.
// Element failures are logged and counted; only invalid options or a
// cancelled context return an error.
func ApplyAll(ctx context.Context, doc deck.Document, opts Options) (Stats, error) {
	if err := opts.Validate(); err != nil {
		return Stats{}, err
	}
	logger := opts.logger()
	hooks := observability.Perturb()

	var stats Stats
	e := perturb.NewEngine(perturb.NewRand(opts.seed()), logger)
	e.OnFailure = func(f perturb.Failure) {
		stats.Failures++
		hooks.OnElementFailure(ctx, f.Operator, f)
	}

	steps := []struct {
		op  string
		run func() int
	}{
		{perturb.OpDelete, func() int {
			stats.Deleted = e.Delete(doc, opts.DeleteRatio, opts.PreserveTitle)
			return stats.Deleted
		}},
		{perturb.OpOverlap, func() int {
			stats.Overlapped = e.InduceOverlap(doc, opts.OverlapRatio, opts.OverlapIntensity)
			return stats.Overlapped
		}},
		{perturb.OpPosition, func() int {
			stats.Moved = e.RandomizePositions(doc, opts.PositionRatio, opts.MaxShiftRatio)
			return stats.Moved
		}},
		{perturb.OpResize, func() int {
			stats.Resized = e.Resize(doc, opts.ResizeRatio, perturb.ScaleRange{Min: opts.ScaleMin, Max: opts.ScaleMax})
			return stats.Resized
		}},
		{perturb.OpFontSize, func() int {
			stats.FontShapes, stats.FontRuns = e.RandomizeFontSizes(doc, opts.FontRatio,
				perturb.DeltaRange{Min: opts.FontDeltaMin, Max: opts.FontDeltaMax})
			return stats.FontShapes
		}},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		hooks.OnOperatorStart(ctx, step.op)
		start := time.Now()
		n := step.run()
		elapsed := time.Since(start)
		hooks.OnOperatorComplete(ctx, step.op, n, elapsed)
		logger.Debug("applied operator", "op", step.op, "affected", n, "duration", elapsed)
	}
	return stats, nil
}

// ApplyLegacy runs ApplyAll with the configuration derived from l.
func ApplyLegacy(ctx context.Context, doc deck.Document, l LegacyOptions) (Stats, error) {
	if err := errors.ValidateRatio("layout_change_ratio", l.LayoutChangeRatio); err != nil {
		return Stats{}, err
	}
	return ApplyAll(ctx, doc, l.Options())
}
