package cli

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/deckfuzz/pkg/errors"
)

// Exit statuses returned by the deckfuzz binary.
const (
	ExitOK          = 0
	ExitFailure     = 1   // internal or unclassified errors
	ExitUsage       = 2   // bad flags, ratios, ranges, paths or profiles
	ExitDocument    = 3   // input is not a readable presentation
	ExitNotFound    = 4   // input or profile does not exist
	ExitUnsupported = 5   // legacy or encrypted presentations
	ExitInterrupted = 130 // SIGINT, following the shell convention
)

// ExitCode maps an error returned by the root command to a process status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRatio, errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidConfig:
		return ExitUsage
	case errors.ErrCodeInvalidDocument:
		return ExitDocument
	case errors.ErrCodeFileNotFound:
		return ExitNotFound
	case errors.ErrCodeUnsupported:
		return ExitUnsupported
	default:
		return ExitFailure
	}
}

// ErrorMessage renders err for the terminal, without error codes.
func ErrorMessage(err error) string {
	return errors.UserMessage(err)
}
