package cmd

import (
	"os"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/willfong/classroom-sql/internal/ui"
)

var browseViews bool

var browseCmd = &cobra.Command{
	Use:   "browse <database>",
	Short: "Browse the tables of a database interactively",
	Long: `Open a full-screen viewer over the tables of a database. Switch tables
with tab and shift+tab, reload with r, copy the selected row with y and
quit with q.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVar(&browseViews, "views", false, "Include views next to tables")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.NotSupportedf("browsing without a terminal")
	}

	u := newUI()
	pool, err := openNamed(cmd.Context(), u, args[0])
	if err != nil {
		return err
	}
	defer pool.Close()

	tables, err := pool.Tables(cmd.Context())
	if err != nil {
		return err
	}
	if browseViews {
		views, err := pool.Views(cmd.Context())
		if err != nil {
			return err
		}
		tables = append(tables, views...)
	}
	return ui.RunBrowser(cmd.Context(), tables, pool.TableData)
}
