package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/deckfuzz/pkg/deck"
	"github.com/matzehuels/deckfuzz/pkg/io"
	"github.com/matzehuels/deckfuzz/pkg/pipeline"
)

// inspectCommand creates the inspect command, which lists every shape with
// its geometry, placeholder type and font sizes.
func (c *CLI) inspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <file.pptx>",
		Short: "Summarize the slides and shapes of a presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pres, err := pipeline.Load(args[0])
			if err != nil {
				return err
			}
			sum := deck.Summarize(pres)
			if asJSON {
				return io.WriteSummary(sum, cmd.OutOrStdout())
			}
			printSummary(args[0], sum)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func printSummary(path string, sum deck.Summary) {
	fmt.Println(StyleTitle.Render(path))
	printKeyValue("size", fmt.Sprintf("%.2f x %.2f in", float64(sum.Width)/deck.EMUPerInch, float64(sum.Height)/deck.EMUPerInch))
	printKeyValue("slides", fmt.Sprintf("%d", len(sum.Slides)))
	printKeyValue("shapes", fmt.Sprintf("%d", sum.ShapeCount()))

	for _, s := range sum.Slides {
		printNewline()
		fmt.Println(StyleHighlight.Render(fmt.Sprintf("Slide %d", s.Index+1)))
		for _, sh := range s.Shapes {
			printShape(sh)
		}
	}
}

func printShape(sh deck.ShapeSummary) {
	name := sh.Name
	if name == "" {
		name = "(unnamed)"
	}
	if sh.Placeholder != "" {
		name += " " + StyleDim.Render("["+sh.Placeholder+"]")
	}
	fmt.Println("  " + StyleValue.Render(name))

	var parts []string
	if sh.Bounds != nil {
		b := sh.Bounds
		parts = append(parts, fmt.Sprintf("at %d,%d size %dx%d", b.Left, b.Top, b.Width, b.Height))
	} else {
		parts = append(parts, "no geometry")
	}
	if len(sh.FontSizes) > 0 {
		sizes := make([]string, len(sh.FontSizes))
		for i, pt := range sh.FontSizes {
			sizes[i] = fmt.Sprintf("%gpt", pt)
		}
		parts = append(parts, "fonts "+strings.Join(sizes, " "))
	}
	printDetail("%s", strings.Join(parts, " · "))
	if text := firstLine(sh.Text); text != "" {
		printDetail("%q", text)
	}
}

// firstLine returns the first line of s, shortened to 60 characters.
func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	if r := []rune(line); len(r) > 60 {
		return string(r[:57]) + "..."
	}
	return line
}
