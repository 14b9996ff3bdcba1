package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carve.dev/carve/internal/coords"
)

func newPositionCmd() *cobra.Command {
	var (
		line   int
		column int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "position <file>",
		Short: "Convert between line:column positions and character offsets in a file",
		Long: `Convert between line:column positions and character offsets in a file.

With --line and --column, prints the character offset of that position.
With --offset, prints the line:column of that offset. Lines and columns start
at 1, offsets at 0, and all of them count characters rather than bytes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			content := string(data)

			if cmd.Flags().Changed("offset") {
				l, c, err := coords.Position(content, offset)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\n", l, c)
				return nil
			}

			o, err := coords.Offset(content, line, column)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\n", o)
			return nil
		},
	}

	cmd.Flags().IntVar(&line, "line", 0, "Line number, starting at 1.")
	cmd.Flags().IntVar(&column, "column", 1, "Column number, starting at 1.")
	cmd.Flags().IntVar(&offset, "offset", 0, "Character offset, starting at 0.")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
	cmd.MarkFlagsOneRequired("offset", "line")
	cmd.MarkFlagsMutuallyExclusive("offset", "column")

	return cmd
}
