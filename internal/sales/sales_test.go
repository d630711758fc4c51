package sales

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/config"
	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
	"github.com/willfong/classroom-sql/internal/models"
	"github.com/willfong/classroom-sql/internal/utils"
)

func openService(t *testing.T) (*Service, *database.Pool) {
	t.Helper()
	pool, err := database.NewPool(config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    filepath.Join(t.TempDir(), "sales.db"),
	})
	if err != nil {
		t.Fatalf("NewPool failed: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	svc := New(pool)
	if err := svc.Setup(context.Background()); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	return svc, pool
}

func count(t *testing.T, pool *database.Pool, table string) int {
	t.Helper()
	var n int
	if err := pool.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s failed: %v", table, err)
	}
	return n
}

func TestSetupSeedsOnce(t *testing.T) {
	svc, pool := openService(t)
	if err := svc.Setup(context.Background()); err != nil {
		t.Fatalf("second Setup failed: %v", err)
	}

	for table, want := range map[string]int{"Salesmen": 3, "Customers": 3, "Sales": 6} {
		if got := count(t, pool, table); got != want {
			t.Errorf("Expected %d rows in %s, got %d", want, table, got)
		}
	}
}

func TestListings(t *testing.T) {
	svc, _ := openService(t)
	ctx := context.Background()

	t.Run("All sales newest first", func(t *testing.T) {
		all, err := svc.AllSales(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 6 {
			t.Fatalf("Expected 6 sales, got %d", len(all))
		}
		if all[0].ID != 6 {
			t.Errorf("Expected sale 6 first among same-day sales, got %d", all[0].ID)
		}
		if all[0].Date.IsZero() {
			t.Error("Expected the default sale date to be set")
		}
	})

	t.Run("Sales of one salesman", func(t *testing.T) {
		list, err := svc.SalesBySalesman(ctx, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 2 {
			t.Fatalf("Expected 2 sales, got %d", len(list))
		}
		if list[0].Amount.String() != "13200.00" || list[1].Amount.String() != "9100.50" {
			t.Errorf("Expected 13200.00 then 9100.50, got %s then %s", list[0].Amount, list[1].Amount)
		}
		if list[0].Salesman != "Антон Морозов" {
			t.Errorf("Expected Антон Морозов, got %s", list[0].Salesman)
		}
	})

	t.Run("Unknown salesman has no sales", func(t *testing.T) {
		list, err := svc.SalesBySalesman(ctx, 42)
		if err != nil {
			t.Fatal(err)
		}
		if len(list) != 0 {
			t.Errorf("Expected no sales, got %d", len(list))
		}
	})

	t.Run("People", func(t *testing.T) {
		sm, err := svc.Salesmen(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(sm) != 3 || sm[1].Email != "volkova@mail.com" {
			t.Errorf("Unexpected salesmen: %+v", sm)
		}
		cs, err := svc.Customers(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(cs) != 3 || cs[0].Name != `ООО "Альфа"` {
			t.Errorf("Unexpected customers: %+v", cs)
		}
	})
}

func TestExtremes(t *testing.T) {
	svc, _ := openService(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		fetch  func() (*models.SaleDetail, error)
		wantID int64
		amount string
	}{
		{"max sale", func() (*models.SaleDetail, error) { return svc.MaxSale(ctx) }, 3, "27800.75"},
		{"min sale", func() (*models.SaleDetail, error) { return svc.MinSale(ctx) }, 6, "6400.00"},
		{"salesman max", func() (*models.SaleDetail, error) { return svc.SalesmanMaxSale(ctx, 3) }, 5, "18750.25"},
		{"salesman min", func() (*models.SaleDetail, error) { return svc.SalesmanMinSale(ctx, 3) }, 6, "6400.00"},
		{"customer max", func() (*models.SaleDetail, error) { return svc.CustomerMaxSale(ctx, 2) }, 5, "18750.25"},
		{"customer min", func() (*models.SaleDetail, error) { return svc.CustomerMinSale(ctx, 2) }, 2, "9100.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.fetch()
			if err != nil {
				t.Fatal(err)
			}
			if d.ID != tt.wantID {
				t.Errorf("Expected sale %d, got %d", tt.wantID, d.ID)
			}
			if d.Amount.String() != tt.amount {
				t.Errorf("Expected %s, got %s", tt.amount, d.Amount)
			}
		})
	}

	if _, err := svc.CustomerMaxSale(ctx, 42); !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound for unknown customer, got %v", err)
	}
}

func TestTotals(t *testing.T) {
	svc, _ := openService(t)
	ctx := context.Background()

	top, err := svc.TopSalesman(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if top.Name != "Екатерина Волкова" || top.Total.String() != "43200.75" {
		t.Errorf("Expected Екатерина Волкова 43200.75, got %s %s", top.Name, top.Total)
	}

	bottom, err := svc.BottomSalesman(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if bottom.Name != "Антон Морозов" || bottom.Total.String() != "22300.50" {
		t.Errorf("Expected Антон Морозов 22300.50, got %s %s", bottom.Name, bottom.Total)
	}

	customer, err := svc.TopCustomer(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if customer.Name != `ООО "Альфа"` || customer.Total.String() != "41000.75" {
		t.Errorf("Expected ООО \"Альфа\" 41000.75, got %s %s", customer.Name, customer.Total)
	}

	avg, err := svc.CustomerAverage(ctx, 3)
	if err != nil {
		t.Fatal(err)
	}
	if avg.Total.String() != "10900.00" {
		t.Errorf("Expected 10900.00, got %s", avg.Total)
	}

	avg, err = svc.SalesmanAverage(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if avg.Total.String() != "11150.25" {
		t.Errorf("Expected 11150.25, got %s", avg.Total)
	}

	if _, err := svc.SalesmanAverage(ctx, 42); !errors.Is(err, errors.NotFound) {
		t.Errorf("Expected NotFound, got %v", err)
	}
}

func TestSaleManagement(t *testing.T) {
	svc, pool := openService(t)
	ctx := context.Background()

	amount, err := utils.ParseMoney("1 250,50")
	if err != nil {
		t.Fatal(err)
	}

	id, err := svc.InsertSale(ctx, 2, 2, amount)
	if err != nil {
		t.Fatalf("InsertSale failed: %v", err)
	}
	if id != 7 {
		t.Errorf("Expected sale id 7, got %d", id)
	}

	sale, err := svc.GetSale(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if sale.Amount.ToCents() != 125050 {
		t.Errorf("Expected 1250.50, got %s", sale.Amount)
	}

	if err := svc.UpdateSale(ctx, id, utils.NewMoney(999, 99)); err != nil {
		t.Fatalf("UpdateSale failed: %v", err)
	}
	sale, _ = svc.GetSale(ctx, id)
	if sale.Amount.String() != "999.99" {
		t.Errorf("Expected 999.99, got %s", sale.Amount)
	}

	if err := svc.DeleteSale(ctx, id); err != nil {
		t.Fatalf("DeleteSale failed: %v", err)
	}
	if got := count(t, pool, "Sales"); got != 6 {
		t.Errorf("Expected 6 sales after delete, got %d", got)
	}

	t.Run("Missing ids", func(t *testing.T) {
		if err := svc.UpdateSale(ctx, id, utils.NewMoney(1, 0)); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound on update, got %v", err)
		}
		if err := svc.DeleteSale(ctx, id); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound on delete, got %v", err)
		}
		if _, err := svc.GetSale(ctx, id); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound on get, got %v", err)
		}
		if _, err := svc.InsertSale(ctx, 42, 1, amount); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound for unknown salesman, got %v", err)
		}
	})

	t.Run("Invalid amounts", func(t *testing.T) {
		if _, err := svc.InsertSale(ctx, 1, 1, utils.Cents(0)); !errors.Is(err, errors.NotValid) {
			t.Errorf("Expected NotValid for zero amount, got %v", err)
		}
		if err := svc.UpdateSale(ctx, 1, utils.Cents(-100)); !errors.Is(err, errors.NotValid) {
			t.Errorf("Expected NotValid for negative amount, got %v", err)
		}
	})
}

func TestPartyManagement(t *testing.T) {
	svc, pool := openService(t)
	ctx := context.Background()

	t.Run("Salesman lifecycle", func(t *testing.T) {
		id, err := svc.InsertSalesman(ctx, Person{Name: "Ольга Лебедева", Email: "lebedeva@mail.com"})
		if err != nil {
			t.Fatal(err)
		}
		if err := svc.UpdateSalesman(ctx, id, Person{Name: "Ольга Лебедева", Phone: "+79030000000"}); err != nil {
			t.Fatal(err)
		}
		list, _ := svc.Salesmen(ctx)
		last := list[len(list)-1]
		if last.Phone != "+79030000000" || last.Email != "" {
			t.Errorf("Expected updated contacts, got %+v", last)
		}
		if err := svc.DeleteSalesman(ctx, id); err != nil {
			t.Errorf("Expected salesman without sales to be deleted, got %v", err)
		}
	})

	t.Run("Parties with sales are kept", func(t *testing.T) {
		err := svc.DeleteSalesman(ctx, 1)
		if !errors.Is(err, ErrHasSales) {
			t.Errorf("Expected ErrHasSales, got %v", err)
		}
		err = svc.DeleteCustomer(ctx, 2)
		if !errors.Is(err, ErrHasSales) {
			t.Errorf("Expected ErrHasSales, got %v", err)
		}
		if got := count(t, pool, "Salesmen"); got != 3 {
			t.Errorf("Expected 3 salesmen, got %d", got)
		}
		if got := count(t, pool, "Customers"); got != 3 {
			t.Errorf("Expected 3 customers, got %d", got)
		}
	})

	t.Run("Customer lifecycle", func(t *testing.T) {
		id, err := svc.InsertCustomer(ctx, Person{Name: "ООО \"Дельта\""})
		if err != nil {
			t.Fatal(err)
		}
		if err := svc.UpdateCustomer(ctx, id, Person{Name: "АО \"Дельта\""}); err != nil {
			t.Fatal(err)
		}
		if err := svc.DeleteCustomer(ctx, id); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("Missing and invalid", func(t *testing.T) {
		if err := svc.UpdateCustomer(ctx, 42, Person{Name: "x"}); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound, got %v", err)
		}
		if err := svc.DeleteSalesman(ctx, 42); !errors.Is(err, errors.NotFound) {
			t.Errorf("Expected NotFound, got %v", err)
		}
		if _, err := svc.InsertCustomer(ctx, Person{Name: "  "}); !errors.Is(err, errors.NotValid) {
			t.Errorf("Expected NotValid, got %v", err)
		}
	})
}

func TestResults(t *testing.T) {
	svc, _ := openService(t)
	ctx := context.Background()

	largest, err := svc.MaxSale(ctx)
	if err != nil {
		t.Fatal(err)
	}
	rs := DetailResult(*largest)
	if rs.Len() != 1 || rs.Rows[0][3] != "27800.75" {
		t.Errorf("Unexpected detail rows: %v", rs.Rows)
	}

	top, _ := svc.TopSalesman(ctx)
	rs = TotalResult("total_sales", *top)
	if rs.Columns[1] != "total_sales" || rs.Rows[0][0] != "Екатерина Волкова" {
		t.Errorf("Unexpected total result: %v %v", rs.Columns, rs.Rows)
	}

	people, _ := svc.Salesmen(ctx)
	if PeopleResult(people).Len() != 3 {
		t.Error("Expected 3 salesmen rows")
	}
}

func TestExercise(t *testing.T) {
	e, err := exercise.Get(Name)
	if err != nil {
		t.Fatal(err)
	}

	pool, err := database.NewPool(config.DatabaseConfig{
		Driver:      "sqlite3",
		DSN:         filepath.Join(t.TempDir(), Name+".db"),
		ForeignKeys: e.ForeignKeys,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	sum, err := exercise.NewRunner(pool, nil, config.QueryTimeout).Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if sum.Unexpected != 0 || sum.Failed != 0 {
		t.Errorf("Expected a clean run, got %+v", sum)
	}
	if sum.Rejected != 2 {
		t.Errorf("Expected 2 rejected steps, got %d", sum.Rejected)
	}
	if got := count(t, pool, "Sales"); got != 7 {
		t.Errorf("Expected 7 sales after the run, got %d", got)
	}
}
