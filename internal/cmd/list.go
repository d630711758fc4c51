package cmd

import (
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available exercises",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := newUI()
		rs := &database.ResultSet{Columns: []string{"name", "title", "steps", "queries", "database"}}
		for _, e := range exercise.All() {
			rs.Rows = append(rs.Rows, []string{
				e.Name,
				e.Title,
				strconv.Itoa(len(e.Steps)),
				strconv.Itoa(e.Queries()),
				databaseState(e.Name),
			})
		}
		u.Println(u.Table(rs))
		return nil
	},
}

// databaseState describes the database file of an exercise
func databaseState(name string) string {
	if cfg.Database.Driver != "sqlite3" || cfg.Database.DSN != "" {
		return cfg.Database.Driver
	}
	info, err := os.Stat(cfg.DatabasePath(name))
	if err != nil {
		return "-"
	}
	return humanize.Bytes(uint64(info.Size())) + ", " + humanize.Time(info.ModTime())
}

func init() {
	rootCmd.AddCommand(listCmd)
}
