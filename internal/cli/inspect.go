package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/cache"
	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/manifest"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		jsonOut bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <package>",
		Short: "List the parts and relationships of an OPC package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cch := c.newCache(ctx, noCache)
			defer cch.Close()

			p := newProgress(c.Logger)
			m, cached, _, err := c.manifestFor(ctx, args[0], cch)
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Inspected %d parts", len(m.Parts)))

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(m)
			}

			printInspect(args[0], m, cached)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the manifest as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the manifest cache")
	return cmd
}

// manifestFor returns the manifest of the package at path, consulting the
// cache under the container digest. The digest is returned for callers that
// key further work on it (render cache, catalog).
func (c *CLI) manifestFor(ctx context.Context, path string, cch cache.Cache) (manifest.Manifest, bool, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return manifest.Manifest{}, false, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return manifest.Manifest{}, false, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	hash := cache.Hash(data)
	key := cache.ManifestKey(hash)

	if blob, ok, err := cch.Get(ctx, key); err == nil && ok {
		if m, err := manifest.UnmarshalManifest(blob); err == nil {
			return m, true, hash, nil
		}
		// Undecodable entry: fall through and recompute.
		_ = cch.Delete(ctx, key)
	}

	pkg, _, err := loadPackage(path)
	if err != nil {
		return manifest.Manifest{}, false, "", err
	}
	m := manifest.FromPackage(pkg)

	if blob, err := json.Marshal(m); err == nil {
		_ = cch.Set(ctx, key, blob, c.cacheTTL())
	}
	return m, false, hash, nil
}

// cacheTTL converts the configured entry lifetime.
func (c *CLI) cacheTTL() time.Duration {
	return time.Duration(c.Config.Cache.TTLHours) * time.Hour
}

// printInspect renders the manifest as styled tables.
func printInspect(path string, m manifest.Manifest, cached bool) {
	fmt.Println(StyleTitle.Render(path))
	printNewline()

	partTable := table.New().
		Headers("PART", "CONTENT TYPE", "SIZE")
	for _, p := range m.Parts {
		partTable.Row(p.PartName, p.ContentType, fmtBytes(p.Size))
	}
	fmt.Println(partTable.Render())
	printNewline()

	relTable := table.New().
		Headers("SOURCE", "ID", "TYPE", "TARGET")
	for _, r := range m.Rels {
		target := r.Target
		if r.External {
			target += " (external)"
		}
		relTable.Row(r.Source, r.ID, shortRelType(r.RelType), target)
	}
	fmt.Println(relTable.Render())

	printStats(len(m.Parts), len(m.Rels), cached)
	printNextStep("Render the graph", fmt.Sprintf("opckit graph %s -o graph.svg", path))
}

// shortRelType reduces a reltype URI to its final path segment.
func shortRelType(rt string) string {
	if i := strings.LastIndex(rt, "/"); i >= 0 {
		return rt[i+1:]
	}
	return rt
}
