package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/fiftytwo/internal/config"
	"github.com/comitanigiacomo/fiftytwo/internal/db"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or roll back the embedded schema migrations.

The connection comes from DB_DRIVER and DB_CONNECTION (or the DB_* parts),
read from the environment or a .env file.

Examples:
  savectl migrate up
  savectl migrate status
  DB_DRIVER=sqlite savectl migrate down`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, conn *sqlx.DB, driver string) error {
			if err := db.RunMigrations(conn.DB, driver); err != nil {
				return err
			}
			return printVersion(cmd, conn, driver)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: withDB(func(cmd *cobra.Command, conn *sqlx.DB, driver string) error {
			if err := db.MigrateDown(conn.DB, driver); err != nil {
				return err
			}
			return printVersion(cmd, conn, driver)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE:  withDB(printVersion),
	})

	return cmd
}

type dbRunFunc func(cmd *cobra.Command, conn *sqlx.DB, driver string) error

func withDB(run dbRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if !cfg.UsesSQL() {
			return fmt.Errorf("migrations need a SQL driver, DB_DRIVER is %q", cfg.DBDriver)
		}

		conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return err
		}
		defer db.Close(conn)

		return run(cmd, conn, cfg.DBDriver)
	}
}

func printVersion(cmd *cobra.Command, conn *sqlx.DB, driver string) error {
	version, err := db.Version(conn.DB, driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
	return nil
}
