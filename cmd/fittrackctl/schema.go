package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2beens/fittrack/internal/db"
)

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or apply the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "print",
		Short: "Print the schema SQL",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), db.Schema)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create missing tables and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer d.close()

			if err := db.ApplySchema(cmd.Context(), d.dbPool); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("schema applied to [%s]", d.cfg.PostgresDBName))
			return nil
		},
	})

	return cmd
}
