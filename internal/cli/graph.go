package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/cache"
	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/render"
)

// Output formats for the graph command.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatDOT = "dot"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		outPath  string
		format   string
		detailed bool
		external bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "graph <package>",
		Short: "Render the relationship graph of an OPC package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateOutputFile(outPath); err != nil {
				return err
			}

			cch := c.newCache(ctx, noCache)
			defer cch.Close()

			m, _, hash, err := c.manifestFor(ctx, args[0], cch)
			if err != nil {
				return err
			}

			opts := render.Options{Detailed: detailed, External: external}
			dot := render.ToDOT(m, opts)
			if format == formatDOT {
				if err := os.WriteFile(outPath, []byte(dot), 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", outPath)
				}
				printSuccess("Wrote DOT graph")
				printFile(outPath)
				return nil
			}

			key := cache.RenderKey(hash, format, fmt.Sprintf("detailed=%t,external=%t", detailed, external))
			spin := newSpinnerWithContext(ctx, "Rendering graph")
			spin.Start()
			out, cached, err := c.renderCached(ctx, cch, key, format, dot)
			spin.Stop()
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, out, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", outPath)
			}

			printSuccess("Rendered %s graph", strings.ToUpper(format))
			printFile(outPath)
			printStats(len(m.Parts), len(m.Rels), cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "graph.svg", "output file")
	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, png, or dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include content types, sizes, and relationship ids")
	cmd.Flags().BoolVar(&external, "external", false, "include external targets")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")
	return cmd
}

// renderCached renders dot in the requested format, serving from and
// populating the cache.
func (c *CLI) renderCached(ctx context.Context, cch cache.Cache, key, format, dot string) ([]byte, bool, error) {
	if out, ok, err := cch.Get(ctx, key); err == nil && ok {
		return out, true, nil
	}

	var (
		out []byte
		err error
	)
	switch format {
	case formatSVG:
		out, err = render.SVG(ctx, dot)
	case formatPNG:
		out, err = render.PNG(ctx, dot)
	default:
		return nil, false, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, or dot)", format)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}

	_ = cch.Set(ctx, key, out, c.cacheTTL())
	return out, false, nil
}
