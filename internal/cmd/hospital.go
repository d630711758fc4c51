package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/config"
	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/hospital"
	"github.com/willfong/classroom-sql/internal/ui"
)

// hospitalReport renders one report; args are the report's own arguments
type hospitalReport struct {
	title string
	usage string
	nargs int
	run   func(ctx context.Context, u *ui.UI, s *hospital.Service, args []string) (*database.ResultSet, error)
}

var hospitalReports = map[string]hospitalReport{
	"specialties": {title: "Doctors and their specializations", run: func(ctx context.Context, _ *ui.UI, s *hospital.Service, _ []string) (*database.ResultSet, error) {
		rows, err := s.DoctorsWithSpecialties(ctx)
		if err != nil {
			return nil, err
		}
		return hospital.SpecialtiesResult(rows), nil
	}},
	"on-duty": {title: "Doctors not on vacation by total salary", run: func(ctx context.Context, _ *ui.UI, s *hospital.Service, _ []string) (*database.ResultSet, error) {
		rows, err := s.DoctorsOnDuty(ctx)
		if err != nil {
			return nil, err
		}
		return hospital.PayResult(rows), nil
	}},
	"wards": {title: "Wards of a department", usage: "<department>", nargs: 1, run: func(ctx context.Context, _ *ui.UI, s *hospital.Service, args []string) (*database.ResultSet, error) {
		rows, err := s.WardsOf(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return hospital.WardsResult(rows), nil
	}},
	"sponsored": {title: "Departments sponsored by a company", usage: "<company>", nargs: 1, run: func(ctx context.Context, _ *ui.UI, s *hospital.Service, args []string) (*database.ResultSet, error) {
		rows, err := s.SponsoredBy(ctx, args[0])
		if err != nil {
			return nil, err
		}
		return hospital.SponsoredResult(rows), nil
	}},
	"donations": {title: "Donations of a month", usage: "<year> <month>", nargs: 2, run: func(ctx context.Context, u *ui.UI, s *hospital.Service, args []string) (*database.ResultSet, error) {
		year, month, err := parseYearMonth(args[0], args[1])
		if err != nil {
			return nil, err
		}
		m, err := s.DonationsIn(ctx, year, month)
		if err != nil {
			return nil, err
		}
		u.Println(u.KeyValue("Period", m.From.String()+" .. "+m.To.String()))
		u.Println(u.KeyValue("Total", m.Total.String()))
		return hospital.DonationsResult(m), nil
	}},
	"departments": {title: "Doctors and their departments", run: func(ctx context.Context, _ *ui.UI, s *hospital.Service, _ []string) (*database.ResultSet, error) {
		rows, err := s.DoctorsWithDepartments(ctx)
		if err != nil {
			return nil, err
		}
		return hospital.DepartmentsResult(rows), nil
	}},
}

func hospitalReportNames() []string {
	names := make([]string, 0, len(hospitalReports))
	for n, r := range hospitalReports {
		names = append(names, strings.TrimSpace(n+" "+r.usage))
	}
	sort.Strings(names)
	return names
}

var (
	randomExaminations int
	randomSeed         int64
)

var hospitalCmd = &cobra.Command{
	Use:   "hospital",
	Short: "The hospital database: departments, doctors, wards and sponsors",
	Long: `Work with the hospital database. It is created and loaded with the
fixed test data set on first use.

Examples:
  classdb hospital seed
  classdb hospital seed --random=50 --seed 7
  classdb hospital report wards "Педиатрическое отделение"
  classdb hospital report donations 2024 3`,
}

var hospitalSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Reload the fixed test data set",
	Long: `Replace the contents of every hospital table with the fixed test data
set. With --random[=N], also add N generated examinations (default 20).`,
	Args: cobra.NoArgs,
	RunE: withHospital(false, func(cmd *cobra.Command, u *ui.UI, s *hospital.Service, args []string) error {
		ctx := cmd.Context()
		if err := s.Seed(ctx); err != nil {
			return err
		}
		u.Println(u.Success("loaded the hospital test data"))

		if !cmd.Flags().Changed("random") {
			return nil
		}
		n, err := s.SeedRandom(ctx, randomExaminations, randomSeed)
		if err != nil {
			return err
		}
		u.Println(u.Success(fmt.Sprintf("added %s generated %s", humanize.Comma(int64(n)), plural(int64(n), "examination", "examinations"))))
		return nil
	}),
}

var hospitalReportCmd = &cobra.Command{
	Use:   "report <name> [args]",
	Short: "Print a hospital report",
	Long:  "Print a hospital report. Reports:\n  " + strings.Join(hospitalReportNames(), "\n  "),
	Args:  cobra.MinimumNArgs(1),
	RunE: withHospital(true, func(cmd *cobra.Command, u *ui.UI, s *hospital.Service, args []string) error {
		report, ok := hospitalReports[args[0]]
		if !ok {
			return errors.NotFoundf("report %q", args[0])
		}
		if len(args)-1 != report.nargs {
			return errors.NotValidf("arguments for %q, usage: report %s %s", args[0], args[0], report.usage)
		}
		rs, err := report.run(cmd.Context(), u, s, args[1:])
		if err != nil {
			return err
		}
		return printResult(cmd, u, report.title, rs)
	}),
}

func init() {
	hospitalSeedCmd.Flags().IntVar(&randomExaminations, "random", config.RandomExaminations, "Also add this many generated examinations")
	hospitalSeedCmd.Flags().Lookup("random").NoOptDefVal = strconv.Itoa(config.RandomExaminations)
	hospitalSeedCmd.Flags().Int64Var(&randomSeed, "seed", 0, "Random seed for generated examinations (0 picks one)")

	hospitalCmd.AddCommand(hospitalSeedCmd, hospitalReportCmd)
	rootCmd.AddCommand(hospitalCmd)
}

// withHospital opens the hospital database and creates its tables. With
// seedEmpty, an empty database is loaded with the test data first.
func withHospital(seedEmpty bool, fn func(cmd *cobra.Command, u *ui.UI, s *hospital.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		u := newUI()
		pool, err := openDatabase(ctx, u, hospital.Name, true)
		if err != nil {
			return err
		}
		defer pool.Close()

		s := hospital.New(pool)
		if err := s.Setup(ctx); err != nil {
			return err
		}
		if seedEmpty {
			var n int
			if err := pool.GetContext(ctx, &n, `SELECT COUNT(*) FROM departments`); err != nil {
				return err
			}
			if n == 0 {
				logger.Infof("hospital database is empty, loading the test data")
				if err := s.Seed(ctx); err != nil {
					return err
				}
			}
		}
		return fn(cmd, u, s, args)
	}
}

// parseYearMonth reads a year and a month given as a number or an English name
func parseYearMonth(y, m string) (int, time.Month, error) {
	year, err := strconv.Atoi(y)
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, errors.NotValidf("year %q", y)
	}
	if n, err := strconv.Atoi(m); err == nil {
		if n < 1 || n > 12 {
			return 0, 0, errors.NotValidf("month %q", m)
		}
		return year, time.Month(n), nil
	}
	for i := time.January; i <= time.December; i++ {
		name := i.String()
		if strings.EqualFold(m, name) || strings.EqualFold(m, name[:3]) {
			return year, i, nil
		}
	}
	return 0, 0, errors.NotValidf("month %q", m)
}
