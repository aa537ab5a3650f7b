package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/deck/pptx"
	"github.com/matzehuels/deckfuzz/pkg/errors"
)

// Runner executes perturbation runs against files on disk.
//
// The Runner is stateless except for the logger. Multiple goroutines can
// safely use the same Runner with different inputs.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Result describes one completed run.
type Result struct {
	RunID        string        `json:"run_id"`
	Input        string        `json:"input"`
	Output       string        `json:"output"`
	Seed         uint64        `json:"seed"`
	Stats        Stats         `json:"stats"`
	ShapesBefore int           `json:"shapes_before"`
	ShapesAfter  int           `json:"shapes_after"`
	StartedAt    time.Time     `json:"started_at"`
	Duration     time.Duration `json:"duration_ns"`
}

// Execute loads input, applies every operator and saves the result to output.
func (r *Runner) Execute(ctx context.Context, input, output string, opts Options) (*Result, error) {
	if err := errors.ValidateOutputPath(output, input); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Input:     input,
		Output:    output,
		Seed:      opts.seed(),
		StartedAt: time.Now(),
	}

	pres, err := Load(input)
	if err != nil {
		return nil, err
	}
	result.ShapesBefore = deck.Summarize(pres).ShapeCount()

	stats, err := ApplyAll(ctx, pres, opts)
	if err != nil {
		return nil, err
	}
	result.Stats = stats
	result.ShapesAfter = deck.Summarize(pres).ShapeCount()

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "creating output directory")
		}
	}
	if err := pres.Save(output); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "saving %s", output)
	}
	result.Duration = time.Since(result.StartedAt)

	r.Logger.Info("perturbed presentation",
		"output", output,
		"seed", result.Seed,
		"deleted", stats.Deleted,
		"overlapped", stats.Overlapped,
		"moved", stats.Moved,
		"resized", stats.Resized,
		"fonts", stats.FontShapes,
		"duration", result.Duration)
	if stats.Failures > 0 {
		r.Logger.Warn("some elements were skipped", "count", stats.Failures)
	}
	return result, nil
}

// ExecuteVariants produces n perturbed copies of input. Variant i uses seed
// opts.Seed+i and is written to VariantPath(output, i, n).
func (r *Runner) ExecuteVariants(ctx context.Context, input, output string, n int, opts Options) ([]*Result, error) {
	if n < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "variants must be at least 1, got %d", n)
	}
	base := opts.seed()
	results := make([]*Result, 0, n)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		v := opts
		v.Seed = base + uint64(i)
		res, err := r.Execute(ctx, input, VariantPath(output, i, n), v)
		if err != nil {
			return results, fmt.Errorf("variant %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// VariantPath returns the output path of variant i out of n. A single
// variant keeps the path unchanged; otherwise a 1-based suffix is inserted
// before the extension ("out.pptx" -> "out-002.pptx").
func VariantPath(output string, i, n int) string {
	if n <= 1 {
		return output
	}
	ext := filepath.Ext(output)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(output, ext), i+1, ext)
}

// Load opens a presentation and maps failures to error codes. Legacy .ppt
// files and password-protected decks are OLE compound files rather than zip
// packages and are reported as unsupported.
func Load(path string) (*pptx.Presentation, error) {
	pres, err := pptx.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "presentation %s not found", path)
		}
		if isCompoundFile(path) {
			return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s is a legacy or encrypted presentation; save it as an unprotected .pptx", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "reading %s", path)
	}
	return pres, nil
}

var compoundFileMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func isCompoundFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(compoundFileMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, compoundFileMagic)
}
