package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/recordkit/foundation/core/log"
	"github.com/msto63/recordkit/internal/store"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		in     inputOptions
		dbPath string
		vacuum bool
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Persist decoded records to SQLite",
		Long: `Decodes a file and inserts the records into a SQLite table named
after the record type. The table is created on first import.

Examples:
  recordkit import portfolio.csv
  recordkit import portfolio.csv --db ./data/portfolio.db --policy skip
  recordkit import portfolio.csv --vacuum
  recordkit import portfolio.csv --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			schema, err := a.schemas.Lookup(in.schema)
			if err != nil {
				return err
			}
			policy, err := a.resolvePolicy(in.policy)
			if err != nil {
				return err
			}

			records, stats, err := a.readInput(ctx, cmd, args[0], schema, policy, nil)
			if err != nil {
				return err
			}

			if dbPath == "" {
				dbPath = a.cfg.Store.Path
			}
			db, err := openStore(dbPath, dryRun)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.EnsureTable(ctx, schema); err != nil {
				return err
			}
			inserted, rejected, err := db.InsertAll(ctx, records)
			if err != nil {
				return err
			}
			total, err := db.Count(ctx, schema)
			if err != nil {
				return err
			}
			if sqlite, ok := db.(*store.SQLiteStore); ok && vacuum {
				if err := sqlite.Vacuum(ctx); err != nil {
					return err
				}
			}

			a.logger.Info("import finished", mdwlog.Fields{
				"schema":   schema.Name(),
				"db":       dbPath,
				"inserted": inserted,
				"rejected": rejected,
				"skipped":  stats.Skipped,
				"dry_run":  dryRun,
			})
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d %s records (%d rows skipped)\n",
					inserted, schema.Name(), stats.Skipped+rejected)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s records into %s (%d rows skipped, %d total)\n",
				inserted, schema.Name(), dbPath, stats.Skipped+rejected, total)
			return nil
		},
	}

	in.bind(cmd, "Stock")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: from config)")
	cmd.Flags().BoolVar(&vacuum, "vacuum", false, "Rebuild the database file after importing")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Decode and insert into memory only, leaving the database untouched")
	cmd.MarkFlagsMutuallyExclusive("vacuum", "dry-run")
	return cmd
}

// openStore opens the SQLite database, or an in-memory store for a dry run
func openStore(path string, dryRun bool) (store.RecordStore, error) {
	if dryRun {
		return store.NewMemoryStore(), nil
	}
	db, err := store.Open(store.Config{Path: path})
	if err != nil {
		return nil, err
	}
	return db, nil
}
