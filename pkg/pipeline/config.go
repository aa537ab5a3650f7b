package pipeline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deckfuzz/pkg/errors"
)

// LoadOptions reads a TOML profile. Keys missing from the file keep their
// default values; unknown keys are rejected.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s not found", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading profile %s", path)
	}
	return ParseOptions(string(data))
}

// ParseOptions decodes a TOML profile over DefaultOptions.
func ParseOptions(data string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.Decode(data, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing profile")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Options{}, errors.New(errors.ErrCodeInvalidConfig, "unknown profile keys: %s", strings.Join(keys, ", "))
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// WriteOptions encodes opts as a TOML profile.
func WriteOptions(w io.Writer, opts Options) error {
	if _, err := fmt.Fprintln(w, "# deckfuzz perturbation profile"); err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(opts)
}
