package cli

import (
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/zippkg"
)

// repackCommand creates the repack command.
func (c *CLI) repackCommand() *cobra.Command {
	var (
		outPath string
		dropIDs []string
	)

	cmd := &cobra.Command{
		Use:   "repack <package>",
		Short: "Rewrite an OPC package, optionally dropping relationships",
		Long: `Repack reads a package, optionally removes package-level relationships by
id, and writes the result. Parts no remaining relationship path reaches are
dropped from the output, so removing a relationship prunes everything that
was only reachable through it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateOutputFile(outPath); err != nil {
				return err
			}

			pkg, _, err := loadPackage(args[0])
			if err != nil {
				return err
			}
			before := len(pkg.Parts())

			for _, id := range dropIDs {
				if err := pkg.Rels().Remove(id); err != nil {
					return errors.FromOPC(err, "drop relationship %s", id)
				}
				c.Logger.Debug("dropped package relationship", "id", id)
			}

			if err := pkg.Save(zippkg.NewFileWriter(outPath)); err != nil {
				return errors.FromOPC(err, "save %s", outPath)
			}

			after := len(pkg.Parts())
			printSuccess("Repacked %s", args[0])
			printFile(outPath)
			if pruned := before - after; pruned > 0 {
				printDetail("Pruned %d unreachable parts", pruned)
			}
			printStats(after, pkg.Rels().Len(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (required)")
	cmd.Flags().StringSliceVar(&dropIDs, "drop", nil, "package relationship ids to remove, e.g. rId2")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
