package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/opckit/opckit/pkg/catalog"
	"github.com/opckit/opckit/pkg/errors"
	"github.com/opckit/opckit/pkg/manifest"
)

// catalogCommand creates the catalog management command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the package manifest catalog",
		Long: `The catalog stores inspected package manifests in MongoDB, keyed by
container digest. Configure it with catalog.mongo_uri in the config file.`,
	}

	cmd.AddCommand(c.catalogAddCommand())
	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogGetCommand())
	cmd.AddCommand(c.catalogRemoveCommand())
	return cmd
}

// mongoStore opens the configured MongoDB catalog, failing when none is
// configured: unlike serve, the catalog commands are pointless without
// persistence.
func (c *CLI) mongoStore(ctx context.Context) (catalog.Store, error) {
	uri := c.Config.Catalog.MongoURI
	if uri == "" {
		return nil, errors.New(errors.ErrCodeCatalog, "no catalog configured: set catalog.mongo_uri in the config file")
	}
	store, err := catalog.NewMongoStore(ctx, uri)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeCatalog, err, "open catalog")
	}
	return store, nil
}

func (c *CLI) catalogAddCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <package>",
		Short: "Inspect a package and store its manifest in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.mongoStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			pkg, hash, err := loadPackage(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(args[0])
			}

			entry := catalog.NewEntry(name, hash, manifest.FromPackage(pkg))
			if err := store.Put(ctx, entry); err != nil {
				return errors.Wrap(errors.ErrCodeCatalog, err, "store entry")
			}

			printSuccess("Cataloged %s", name)
			printKeyValue("id", entry.ID)
			printKeyValue("hash", entry.Hash[:12])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "entry name (default: the file's basename)")
	return cmd
}

func (c *CLI) catalogListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged packages, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.mongoStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			entries, err := store.List(ctx, limit)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCatalog, err, "list entries")
			}
			if len(entries) == 0 {
				printInfo("Catalog is empty")
				return nil
			}

			t := table.New().
				Headers("ID", "NAME", "PARTS", "CREATED")
			for _, e := range entries {
				t.Row(e.ID, e.Name, fmt.Sprintf("%d", len(e.Manifest.Parts)), e.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Println(t.Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum entries to list (0 for all)")
	return cmd
}

func (c *CLI) catalogGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print a cataloged manifest as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.mongoStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			entry, err := store.Get(ctx, args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeCatalog, err, "get entry %s", args[0])
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(entry)
		},
	}
}

func (c *CLI) catalogRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a cataloged package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.mongoStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			if err := store.Delete(ctx, args[0]); err != nil {
				return errors.Wrap(errors.ErrCodeCatalog, err, "remove entry %s", args[0])
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}
