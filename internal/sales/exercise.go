package sales

import (
	"context"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
)

func init() {
	exercise.Register(&exercise.Exercise{
		Name:        Name,
		Title:       "Sales: salesmen, customers and their deals",
		Description: "Three-table ledger with sample data loaded once; sale listings, extremes, totals and averages.",
		ForeignKeys: true,
		Files:       files,
		Seed: func(ctx context.Context, db *database.Pool) error {
			return New(db).Seed(ctx)
		},
		Steps: []exercise.Step{
			exercise.Query("All sales, newest first", detailSelect+`
				ORDER BY s.sale_date DESC, s.sale_id DESC`),
			exercise.Query("Sales of Антон Морозов, largest first", detailSelect+`
				WHERE s.salesman_id = 1
				ORDER BY s.amount DESC`),
			exercise.Query("Largest sale", detailSelect+`
				ORDER BY s.amount DESC LIMIT 1`),
			exercise.Query("Smallest sale", detailSelect+`
				ORDER BY s.amount ASC LIMIT 1`),
			exercise.Query("Salesman totals", `
				SELECT sm.name, SUM(s.amount) AS total
				FROM Sales s
				JOIN Salesmen sm ON s.salesman_id = sm.salesman_id
				GROUP BY sm.salesman_id
				ORDER BY total DESC`),
			exercise.Query("Customer totals", `
				SELECT c.name, SUM(s.amount) AS total
				FROM Sales s
				JOIN Customers c ON s.customer_id = c.customer_id
				GROUP BY c.customer_id
				ORDER BY total DESC`),
			exercise.Query("Average purchase per customer", `
				SELECT c.name, ROUND(AVG(s.amount), 2) AS average
				FROM Sales s
				JOIN Customers c ON s.customer_id = c.customer_id
				GROUP BY c.customer_id
				ORDER BY c.customer_id`),
			exercise.Exec("Record a sale of 5000.00 by Дмитрий Орлов to ООО \"Альфа\"",
				exercise.SQL(`INSERT INTO Sales (salesman_id, customer_id, amount) VALUES (3, 1, 5000.00)`)),
			exercise.Reject("A sale by an unknown salesman is refused",
				exercise.SQL(`INSERT INTO Sales (salesman_id, customer_id, amount) VALUES (42, 1, 100)`)),
			exercise.Reject("A salesman with sales cannot be deleted",
				exercise.SQL(`DELETE FROM Salesmen WHERE salesman_id = 1`)),
			exercise.Query("Salesmen", `SELECT salesman_id, name, email, phone FROM Salesmen`),
		},
	})
}
