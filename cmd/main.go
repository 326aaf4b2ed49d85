package main

import (
	"fmt"
	"os"
	"strings"

	"mc-postgres-db/internal/schema"

	"github.com/spf13/cobra"
)

var dialect string

var rootCmd = &cobra.Command{
	Use:   "mc-postgres-db",
	Short: "Inspect the market data schema",
}

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Print the CREATE TABLE statements for a dialect",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := schema.Dialect(dialect)
		if d != schema.Postgres && d != schema.SQLite {
			return fmt.Errorf("unknown dialect %q", dialect)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(schema.Default().CreateAllSQL(d), ";\n\n")+";")
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables and their primary keys",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range schema.Default().Tables() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s (%s)\n", t.Name, t.PrimaryKeyName(), strings.Join(t.PrimaryKey, ", "))
		}
	},
}

func main() {
	ddlCmd.Flags().StringVarP(&dialect, "dialect", "d", string(schema.Postgres), "SQL dialect: postgres or sqlite")
	rootCmd.AddCommand(ddlCmd, tablesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
