package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/manifest"
)

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		outDir        string
		withManifest  bool
		partNameMatch string
	)

	cmd := &cobra.Command{
		Use:   "extract <package>",
		Short: "Extract part payloads from an OPC package to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, _, err := loadPackage(args[0])
			if err != nil {
				return err
			}

			if outDir == "" {
				base := filepath.Base(args[0])
				outDir = strings.TrimSuffix(base, filepath.Ext(base)) + ".extracted"
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", outDir)
			}

			count := 0
			for _, part := range pkg.Parts() {
				rel := strings.TrimPrefix(string(part.PartName()), "/")
				if partNameMatch != "" && !strings.Contains(rel, partNameMatch) {
					continue
				}
				if err := errors.ValidateExtractPath(rel); err != nil {
					return err
				}
				dst := filepath.Join(outDir, filepath.FromSlash(rel))
				if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", rel)
				}
				if err := os.WriteFile(dst, part.Blob(), 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", dst)
				}
				count++
			}

			if withManifest {
				path := filepath.Join(outDir, "manifest.json")
				if err := manifest.WriteFile(pkg, path); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write manifest")
				}
				printFile(path)
			}

			printSuccess("Extracted %d parts", count)
			printDetail("Directory: %s", outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: <package>.extracted)")
	cmd.Flags().BoolVar(&withManifest, "manifest", false, "also write manifest.json")
	cmd.Flags().StringVar(&partNameMatch, "match", "", "only extract parts whose name contains this substring")
	return cmd
}
