package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/deckfuzz/pkg/errors"
	"github.com/matzehuels/deckfuzz/pkg/io"
	"github.com/matzehuels/deckfuzz/pkg/pipeline"
)

// perturbOpts holds the command-line flags for the perturb command.
// Operator flags override the profile only when set explicitly.
type perturbOpts struct {
	output   string // output file path (variants get a numeric suffix)
	config   string // TOML profile path
	report   string // JSON run report path
	variants int    // number of perturbed copies
	legacy   bool   // use the single-ratio legacy parameter set

	seed          uint64
	keepTitles    bool
	deleteRatio   float64
	overlapRatio  float64
	intensity     float64
	positionRatio float64
	maxShift      float64
	resizeRatio   float64
	scaleMin      float64
	scaleMax      float64
	fontRatio     float64
	fontMin       int
	fontMax       int
	layoutRatio   float64 // legacy only
}

// perturbCommand creates the perturb command.
//
// Default settings:
//   - seed: 42
//   - titles are preserved from deletion
//   - one output file
func (c *CLI) perturbCommand() *cobra.Command {
	var opts perturbOpts

	cmd := &cobra.Command{
		Use:   "perturb <input.pptx>",
		Short: "Write perturbed copies of a presentation",
		Example: `  deckfuzz perturb talk.pptx -o broken.pptx
  deckfuzz perturb talk.pptx -o out/talk.pptx --variants 10 --report out/report.json
  deckfuzz perturb talk.pptx -o broken.pptx --config heavy.toml --seed 7
  deckfuzz perturb talk.pptx -o broken.pptx --legacy --layout-ratio 0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPerturb(cmd.Context(), cmd.Flags(), args[0], &opts)
		},
	}

	opts.bind(cmd.Flags())
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagFilename("config", "toml")
	_ = cmd.MarkFlagFilename("output", "pptx")

	return cmd
}

// bind registers the perturb flags on f with their default values.
func (o *perturbOpts) bind(f *pflag.FlagSet) {
	defaults := pipeline.DefaultOptions()
	legacy := pipeline.DefaultLegacyOptions()

	f.StringVarP(&o.output, "output", "o", "", "output file (required)")
	f.StringVarP(&o.config, "config", "c", "", "TOML perturbation profile")
	f.StringVar(&o.report, "report", "", "write a JSON run report to this path")
	f.IntVarP(&o.variants, "variants", "n", 1, "number of perturbed copies (seeds seed..seed+n-1)")
	f.BoolVar(&o.legacy, "legacy", false, "derive all operators from --delete-ratio, --layout-ratio and --font-ratio")

	f.Uint64Var(&o.seed, "seed", defaults.Seed, "random seed")
	f.BoolVar(&o.keepTitles, "keep-titles", defaults.PreserveTitle, "never delete title placeholders")
	f.Float64Var(&o.deleteRatio, "delete-ratio", defaults.DeleteRatio, "fraction of elements to delete")
	f.Float64Var(&o.overlapRatio, "overlap-ratio", defaults.OverlapRatio, "fraction of elements to pile into overlaps")
	f.Float64Var(&o.intensity, "overlap-intensity", defaults.OverlapIntensity, "fraction of a slide's shapes moved per overlap group")
	f.Float64Var(&o.positionRatio, "position-ratio", defaults.PositionRatio, "fraction of elements to shift")
	f.Float64Var(&o.maxShift, "max-shift", defaults.MaxShiftRatio, "largest shift as a fraction of the slide size")
	f.Float64Var(&o.resizeRatio, "resize-ratio", defaults.ResizeRatio, "fraction of text boxes to resize")
	f.Float64Var(&o.scaleMin, "scale-min", defaults.ScaleMin, "smallest resize factor")
	f.Float64Var(&o.scaleMax, "scale-max", defaults.ScaleMax, "largest resize factor")
	f.Float64Var(&o.fontRatio, "font-ratio", defaults.FontRatio, "fraction of text shapes per slide whose fonts change")
	f.IntVar(&o.fontMin, "font-min", defaults.FontDeltaMin, "smallest font size change in points")
	f.IntVar(&o.fontMax, "font-max", defaults.FontDeltaMax, "largest font size change in points")
	f.Float64Var(&o.layoutRatio, "layout-ratio", legacy.LayoutChangeRatio, "layout change ratio (with --legacy)")
}

func (c *CLI) runPerturb(ctx context.Context, flags *pflag.FlagSet, input string, opts *perturbOpts) error {
	resolved, err := resolveOptions(flags, opts)
	if err != nil {
		return err
	}
	resolved.Logger = c.Logger

	prog := newProgress(c.Logger)
	results, err := c.newRunner().ExecuteVariants(ctx, input, opts.output, opts.variants, resolved)
	for _, res := range results {
		printSuccess("%s", res.Output)
		printStatsTable(res.Stats)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d variant(s)", len(results)))

	if opts.report != "" {
		if err := io.ExportReport(io.NewReport(results), opts.report); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "writing report")
		}
		printFile(opts.report)
	}
	return nil
}

// resolveOptions builds the run configuration: defaults, then the profile,
// then explicitly set flags.
func resolveOptions(flags *pflag.FlagSet, opts *perturbOpts) (pipeline.Options, error) {
	if opts.legacy {
		if opts.config != "" {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "--config cannot be combined with --legacy")
		}
		return resolveLegacy(flags, opts)
	}

	resolved := pipeline.DefaultOptions()
	if opts.config != "" {
		loaded, err := pipeline.LoadOptions(opts.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		resolved = loaded
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("seed", func() { resolved.Seed = opts.seed })
	set("keep-titles", func() { resolved.PreserveTitle = opts.keepTitles })
	set("delete-ratio", func() { resolved.DeleteRatio = opts.deleteRatio })
	set("overlap-ratio", func() { resolved.OverlapRatio = opts.overlapRatio })
	set("overlap-intensity", func() { resolved.OverlapIntensity = opts.intensity })
	set("position-ratio", func() { resolved.PositionRatio = opts.positionRatio })
	set("max-shift", func() { resolved.MaxShiftRatio = opts.maxShift })
	set("resize-ratio", func() { resolved.ResizeRatio = opts.resizeRatio })
	set("scale-min", func() { resolved.ScaleMin = opts.scaleMin })
	set("scale-max", func() { resolved.ScaleMax = opts.scaleMax })
	set("font-ratio", func() { resolved.FontRatio = opts.fontRatio })
	set("font-min", func() { resolved.FontDeltaMin = opts.fontMin })
	set("font-max", func() { resolved.FontDeltaMax = opts.fontMax })

	if err := resolved.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return resolved, nil
}

func resolveLegacy(flags *pflag.FlagSet, opts *perturbOpts) (pipeline.Options, error) {
	for _, name := range []string{"overlap-ratio", "overlap-intensity", "position-ratio", "max-shift", "resize-ratio", "scale-min", "scale-max"} {
		if flags.Changed(name) {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "--%s is derived in --legacy mode", name)
		}
	}

	l := pipeline.DefaultLegacyOptions()
	l.Seed = opts.seed
	l.PreserveTitle = opts.keepTitles
	if flags.Changed("delete-ratio") {
		l.DeleteRatio = opts.deleteRatio
	}
	l.LayoutChangeRatio = opts.layoutRatio
	if flags.Changed("font-ratio") {
		l.FontChangeRatio = opts.fontRatio
	}
	if flags.Changed("font-min") {
		l.FontDeltaMin = opts.fontMin
	}
	if flags.Changed("font-max") {
		l.FontDeltaMax = opts.fontMax
	}

	if err := errors.ValidateRatio("layout_change_ratio", l.LayoutChangeRatio); err != nil {
		return pipeline.Options{}, err
	}
	resolved := l.Options()
	if err := resolved.Validate(); err != nil {
		return pipeline.Options{}, err
	}
	return resolved, nil
}
