package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/agentx-labs/expertkit/internal/errors"
	"github.com/agentx-labs/expertkit/internal/paths"
	"github.com/agentx-labs/expertkit/internal/project"
	"github.com/agentx-labs/expertkit/internal/tools"
	"github.com/spf13/cobra"
)

func init() {
	addProjectFlag(dbInitCmd)
	addProjectFlag(dbQueryCmd)
	addProjectFlag(dbPingCmd)

	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbQueryCmd)
	dbCmd.AddCommand(dbPingCmd)
	rootCmd.AddCommand(dbCmd)
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Work with the project database",
	Long:  `Commands in this group connect with DATABASE_URL from the project .env.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project schema from " + paths.InitDBScript,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		scriptPath := p.Path(paths.InitDBScript)
		script, err := os.ReadFile(scriptPath)
		if err != nil {
			return errors.FromFS(err, errors.EFileNotFound, "reading", scriptPath)
		}

		n, err := db.ExecScript(cmd.Context(), string(script))
		if err != nil {
			return err
		}
		printf(cmd, "Initialized database for %s (%d statements)\n", p.Name(), n)
		return nil
	},
}

var dbQueryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run a query and print the rows as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		rows, err := db.Query(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding rows: %w", err)
		}
		printf(cmd, "%s\n", out)
		return nil
	},
}

var dbPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the database is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Ping(cmd.Context()); err != nil {
			return err
		}
		printf(cmd, "Database reachable\n")
		return nil
	},
}

func openDB() (*project.Project, *tools.DB, error) {
	p, err := openProject()
	if err != nil {
		return nil, nil, err
	}
	dsn, err := p.DatabaseURL()
	if err != nil {
		return nil, nil, err
	}
	return p, tools.NewDB(dsn), nil
}
