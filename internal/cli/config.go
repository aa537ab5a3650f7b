package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckfuzz/pkg/errors"
	"github.com/matzehuels/deckfuzz/pkg/pipeline"
)

// configCommand groups profile management subcommands.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage perturbation profiles",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configCheckCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default profile as TOML (stdout when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return pipeline.WriteOptions(cmd.OutOrStdout(), pipeline.DefaultOptions())
			}
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "creating %s", path)
			}
			defer f.Close()
			if err := pipeline.WriteOptions(f, pipeline.DefaultOptions()); err != nil {
				return err
			}
			printSuccess("Wrote profile")
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Validate a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := pipeline.LoadOptions(args[0]); err != nil {
				if errors.Is(err, errors.ErrCodeFileNotFound) {
					printDetail("create one with: %s config init %s", appName, args[0])
				}
				return err
			}
			printSuccess("%s is valid", args[0])
			return nil
		},
	}
}
