package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/exercise"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <exercise>",
	Short: "Output the SQL schema of an exercise",
	Long: `Output the DDL of an exercise: tables, constraints, views and triggers.
With --seed the sample data script is appended.

Examples:
  classdb schema academy                   # Print the schema
  classdb schema music-views --seed        # Schema followed by sample rows
  classdb schema hospital -o hospital.sql  # Save to a file`,
	Args: cobra.ExactArgs(1),
	RunE: runSchema,
}

var (
	schemaOutputFile string
	schemaWithSeed   bool
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVarP(&schemaOutputFile, "output", "o", "", "output file (default: stdout)")
	schemaCmd.Flags().BoolVar(&schemaWithSeed, "seed", false, "append the sample data script")
}

func runSchema(cmd *cobra.Command, args []string) error {
	u := newUI()

	e, err := exercise.Get(args[0])
	if err != nil {
		return err
	}
	content, err := e.Schema()
	if err != nil {
		return err
	}

	if schemaWithSeed {
		seed, err := e.SeedScript()
		if err != nil {
			return err
		}
		switch {
		case seed != "":
			content = strings.TrimRight(content, "\n") + "\n\n" + seed
		case e.Seed != nil:
			fmt.Fprintln(os.Stderr, u.Warning("sample rows of "+e.Name+" are loaded by code, not a script"))
		}
	}

	if schemaOutputFile == "" {
		fmt.Fprint(u.Out(), content)
		return nil
	}

	if err := writeFile(schemaOutputFile, content); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, u.Success("Schema written to: "+schemaOutputFile))
	return nil
}

// writeFile writes content to path, creating missing parent directories.
func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Annotatef(err, "creating %s", dir)
		}
	}
	return errors.Annotatef(os.WriteFile(path, []byte(content), 0o644), "writing %s", path)
}
