package cmd

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/spf13/cobra"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/models"
	"github.com/willfong/classroom-sql/internal/sales"
	"github.com/willfong/classroom-sql/internal/ui"
	"github.com/willfong/classroom-sql/internal/utils"
)

// salesReport renders one of the sales application's reports. id is the
// salesman or customer the report is about, when it takes one.
type salesReport struct {
	title  string
	needID bool
	run    func(ctx context.Context, s *sales.Service, id int64) (*database.ResultSet, error)
}

func detailReport(fn func(*sales.Service, context.Context) (*models.SaleDetail, error)) func(context.Context, *sales.Service, int64) (*database.ResultSet, error) {
	return func(ctx context.Context, s *sales.Service, _ int64) (*database.ResultSet, error) {
		d, err := fn(s, ctx)
		if err != nil {
			return nil, err
		}
		return sales.DetailResult(*d), nil
	}
}

func detailByID(fn func(*sales.Service, context.Context, int64) (*models.SaleDetail, error)) func(context.Context, *sales.Service, int64) (*database.ResultSet, error) {
	return func(ctx context.Context, s *sales.Service, id int64) (*database.ResultSet, error) {
		d, err := fn(s, ctx, id)
		if err != nil {
			return nil, err
		}
		return sales.DetailResult(*d), nil
	}
}

func totalReport(column string, fn func(*sales.Service, context.Context, int64) (*models.PartyTotal, error)) func(context.Context, *sales.Service, int64) (*database.ResultSet, error) {
	return func(ctx context.Context, s *sales.Service, id int64) (*database.ResultSet, error) {
		t, err := fn(s, ctx, id)
		if err != nil {
			return nil, err
		}
		return sales.TotalResult(column, *t), nil
	}
}

var salesReports = map[string]salesReport{
	"all": {title: "All sales", run: func(ctx context.Context, s *sales.Service, _ int64) (*database.ResultSet, error) {
		rows, err := s.AllSales(ctx)
		if err != nil {
			return nil, err
		}
		return sales.DetailResult(rows...), nil
	}},
	"by-salesman": {title: "Sales of a salesman", needID: true, run: func(ctx context.Context, s *sales.Service, id int64) (*database.ResultSet, error) {
		rows, err := s.SalesBySalesman(ctx, id)
		if err != nil {
			return nil, err
		}
		return sales.DetailResult(rows...), nil
	}},
	"max":          {title: "Largest sale", run: detailReport((*sales.Service).MaxSale)},
	"min":          {title: "Smallest sale", run: detailReport((*sales.Service).MinSale)},
	"salesman-max": {title: "Largest sale of a salesman", needID: true, run: detailByID((*sales.Service).SalesmanMaxSale)},
	"salesman-min": {title: "Smallest sale of a salesman", needID: true, run: detailByID((*sales.Service).SalesmanMinSale)},
	"customer-max": {title: "Largest purchase of a customer", needID: true, run: detailByID((*sales.Service).CustomerMaxSale)},
	"customer-min": {title: "Smallest purchase of a customer", needID: true, run: detailByID((*sales.Service).CustomerMinSale)},
	"top-salesman": {title: "Salesman with the largest total", run: totalReport("total", func(s *sales.Service, ctx context.Context, _ int64) (*models.PartyTotal, error) {
		return s.TopSalesman(ctx)
	})},
	"bottom-salesman": {title: "Salesman with the smallest total", run: totalReport("total", func(s *sales.Service, ctx context.Context, _ int64) (*models.PartyTotal, error) {
		return s.BottomSalesman(ctx)
	})},
	"top-customer": {title: "Customer with the largest total", run: totalReport("total", func(s *sales.Service, ctx context.Context, _ int64) (*models.PartyTotal, error) {
		return s.TopCustomer(ctx)
	})},
	"customer-average": {title: "Average purchase of a customer", needID: true, run: totalReport("average", (*sales.Service).CustomerAverage)},
	"salesman-average": {title: "Average sale of a salesman", needID: true, run: totalReport("average", (*sales.Service).SalesmanAverage)},
}

func salesReportNames() []string {
	names := make([]string, 0, len(salesReports))
	for n := range salesReports {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "The sales application: salesmen, customers and their sales",
	Long: `Work with the sales application database. It is created and seeded
with sample data on first use.

Examples:
  classdb sales report all
  classdb sales report salesman-max 1
  classdb sales sale add 1 3 "1 250,50"
  classdb sales customer add "ООО Дельта" --email info@delta.ru`,
}

var salesReportCmd = &cobra.Command{
	Use:   "report <name> [id]",
	Short: "Print a sales report",
	Long:  "Print a sales report. Reports: " + strings.Join(salesReportNames(), ", "),
	Args:  cobra.RangeArgs(1, 2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return salesReportNames(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
		report, ok := salesReports[args[0]]
		if !ok {
			return errors.NotFoundf("report %q (available: %s)", args[0], strings.Join(salesReportNames(), ", "))
		}
		var id int64
		if report.needID {
			if len(args) < 2 {
				return errors.NotValidf("report %q without an id", args[0])
			}
			var err error
			if id, err = parseID(args[1]); err != nil {
				return err
			}
		}
		rs, err := report.run(cmd.Context(), s, id)
		if err != nil {
			return err
		}
		return printResult(cmd, u, report.title, rs)
	}),
}

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Add, change or delete sales",
}

var saleAddCmd = &cobra.Command{
	Use:   "add <salesman-id> <customer-id> <amount>",
	Short: "Record a sale dated today",
	Args:  cobra.ExactArgs(3),
	RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
		ids, err := parseIDs(args[:2])
		if err != nil {
			return err
		}
		amount, err := utils.ParseMoney(args[2])
		if err != nil {
			return err
		}
		id, err := s.InsertSale(cmd.Context(), ids[0], ids[1], amount)
		if err != nil {
			return err
		}
		u.Println(u.Success(fmt.Sprintf("recorded sale %d for %s", id, amount)))
		return nil
	}),
}

var saleUpdateCmd = &cobra.Command{
	Use:   "update <sale-id> <amount>",
	Short: "Change the amount of a sale",
	Args:  cobra.ExactArgs(2),
	RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		amount, err := utils.ParseMoney(args[1])
		if err != nil {
			return err
		}
		if err := s.UpdateSale(cmd.Context(), id, amount); err != nil {
			return err
		}
		u.Println(u.Success(fmt.Sprintf("sale %d is now %s", id, amount)))
		return nil
	}),
}

var saleDeleteCmd = &cobra.Command{
	Use:   "delete <sale-id>",
	Short: "Delete a sale",
	Args:  cobra.ExactArgs(1),
	RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteSale(cmd.Context(), id); err != nil {
			return err
		}
		u.Println(u.Success(fmt.Sprintf("deleted sale %d", id)))
		return nil
	}),
}

var personEmail, personPhone string

// partyCommands builds list/add/update/delete for salesmen or customers
func partyCommands(kind string,
	list func(context.Context, *sales.Service) (*database.ResultSet, error),
	insert func(*sales.Service, context.Context, sales.Person) (int64, error),
	update func(*sales.Service, context.Context, int64, sales.Person) error,
	remove func(*sales.Service, context.Context, int64) error,
) *cobra.Command {
	parent := &cobra.Command{
		Use:   kind,
		Short: "List, add, change or delete " + kind + "s",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List " + kind + "s",
		Args:  cobra.NoArgs,
		RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
			rs, err := list(cmd.Context(), s)
			if err != nil {
				return err
			}
			return printResult(cmd, u, "", rs)
		}),
	}

	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a " + kind,
		Args:  cobra.ExactArgs(1),
		RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
			id, err := insert(s, cmd.Context(), sales.Person{Name: args[0], Email: personEmail, Phone: personPhone})
			if err != nil {
				return err
			}
			u.Println(u.Success(fmt.Sprintf("added %s %d", kind, id)))
			return nil
		}),
	}

	updateCmd := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Replace the details of a " + kind,
		Args:  cobra.ExactArgs(2),
		RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := update(s, cmd.Context(), id, sales.Person{Name: args[1], Email: personEmail, Phone: personPhone}); err != nil {
				return err
			}
			u.Println(u.Success(fmt.Sprintf("updated %s %d", kind, id)))
			return nil
		}),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + kind + " without sales",
		Args:  cobra.ExactArgs(1),
		RunE: withSales(func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := remove(s, cmd.Context(), id); err != nil {
				if errors.Is(err, sales.ErrHasSales) {
					return errors.Errorf("%s %d still has sales; delete them first", kind, id)
				}
				return err
			}
			u.Println(u.Success(fmt.Sprintf("deleted %s %d", kind, id)))
			return nil
		}),
	}

	for _, c := range []*cobra.Command{addCmd, updateCmd} {
		c.Flags().StringVar(&personEmail, "email", "", "Email address")
		c.Flags().StringVar(&personPhone, "phone", "", "Phone number")
	}
	parent.AddCommand(listCmd, addCmd, updateCmd, deleteCmd)
	return parent
}

func init() {
	saleCmd.AddCommand(saleAddCmd, saleUpdateCmd, saleDeleteCmd)

	salesmanCmd := partyCommands("salesman",
		func(ctx context.Context, s *sales.Service) (*database.ResultSet, error) {
			rows, err := s.Salesmen(ctx)
			if err != nil {
				return nil, err
			}
			return sales.PeopleResult(rows), nil
		},
		(*sales.Service).InsertSalesman, (*sales.Service).UpdateSalesman, (*sales.Service).DeleteSalesman)
	customerCmd := partyCommands("customer",
		func(ctx context.Context, s *sales.Service) (*database.ResultSet, error) {
			rows, err := s.Customers(ctx)
			if err != nil {
				return nil, err
			}
			return sales.CustomerResult(rows), nil
		},
		(*sales.Service).InsertCustomer, (*sales.Service).UpdateCustomer, (*sales.Service).DeleteCustomer)

	salesCmd.AddCommand(salesReportCmd, saleCmd, salesmanCmd, customerCmd)
	rootCmd.AddCommand(salesCmd)
}

// withSales opens the sales database and makes sure it is set up
func withSales(fn func(cmd *cobra.Command, u *ui.UI, s *sales.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		u := newUI()
		pool, err := openDatabase(cmd.Context(), u, sales.Name, true)
		if err != nil {
			return err
		}
		defer pool.Close()

		s := sales.New(pool)
		if err := s.Setup(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd, u, s, args)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NotValidf("id %q", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
