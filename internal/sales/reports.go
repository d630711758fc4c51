package sales

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/models"
)

const detailSelect = `
	SELECT s.sale_id, sm.name AS salesman, c.name AS customer, s.amount, s.sale_date
	FROM Sales s
	JOIN Salesmen sm ON s.salesman_id = sm.salesman_id
	JOIN Customers c ON s.customer_id = c.customer_id`

// AllSales returns every sale, newest first
func (s *Service) AllSales(ctx context.Context) ([]models.SaleDetail, error) {
	var out []models.SaleDetail
	err := s.db.SelectContext(ctx, &out, detailSelect+`
		ORDER BY s.sale_date DESC, s.sale_id DESC`)
	if err != nil {
		return nil, errors.Annotate(err, "list sales")
	}
	return out, nil
}

// SalesBySalesman returns the sales of one salesman, largest first
func (s *Service) SalesBySalesman(ctx context.Context, salesmanID int64) ([]models.SaleDetail, error) {
	var out []models.SaleDetail
	err := s.db.SelectContext(ctx, &out, detailSelect+`
		WHERE s.salesman_id = ?
		ORDER BY s.amount DESC`, salesmanID)
	if err != nil {
		return nil, errors.Annotatef(err, "list sales of salesman %d", salesmanID)
	}
	return out, nil
}

// MaxSale returns the largest sale
func (s *Service) MaxSale(ctx context.Context) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "", "DESC", nil, "sale")
}

// MinSale returns the smallest sale
func (s *Service) MinSale(ctx context.Context) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "", "ASC", nil, "sale")
}

// SalesmanMaxSale returns the largest sale of a salesman
func (s *Service) SalesmanMaxSale(ctx context.Context, salesmanID int64) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "WHERE s.salesman_id = ?", "DESC", salesmanID, "sale of salesman "+itoa(salesmanID))
}

// SalesmanMinSale returns the smallest sale of a salesman
func (s *Service) SalesmanMinSale(ctx context.Context, salesmanID int64) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "WHERE s.salesman_id = ?", "ASC", salesmanID, "sale of salesman "+itoa(salesmanID))
}

// CustomerMaxSale returns the largest purchase of a customer
func (s *Service) CustomerMaxSale(ctx context.Context, customerID int64) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "WHERE s.customer_id = ?", "DESC", customerID, "sale to customer "+itoa(customerID))
}

// CustomerMinSale returns the smallest purchase of a customer
func (s *Service) CustomerMinSale(ctx context.Context, customerID int64) (*models.SaleDetail, error) {
	return s.oneSale(ctx, "WHERE s.customer_id = ?", "ASC", customerID, "sale to customer "+itoa(customerID))
}

func (s *Service) oneSale(ctx context.Context, where, dir string, arg interface{}, what string) (*models.SaleDetail, error) {
	query := detailSelect + " " + where + " ORDER BY s.amount " + dir + ", s.sale_id LIMIT 1"
	var args []interface{}
	if arg != nil {
		args = append(args, arg)
	}

	var d models.SaleDetail
	err := s.db.GetContext(ctx, &d, query, args...)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("%s", what)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "find %s", what)
	}
	return &d, nil
}

// TopSalesman returns the salesman with the highest total
func (s *Service) TopSalesman(ctx context.Context) (*models.PartyTotal, error) {
	return s.salesmanTotal(ctx, "DESC")
}

// BottomSalesman returns the salesman with the lowest total
func (s *Service) BottomSalesman(ctx context.Context) (*models.PartyTotal, error) {
	return s.salesmanTotal(ctx, "ASC")
}

func (s *Service) salesmanTotal(ctx context.Context, dir string) (*models.PartyTotal, error) {
	return s.total(ctx, `
		SELECT sm.name, SUM(s.amount) AS total
		FROM Sales s
		JOIN Salesmen sm ON s.salesman_id = sm.salesman_id
		GROUP BY sm.salesman_id
		ORDER BY total `+dir+`, sm.salesman_id
		LIMIT 1`, "salesman with sales")
}

// TopCustomer returns the customer with the highest total purchases
func (s *Service) TopCustomer(ctx context.Context) (*models.PartyTotal, error) {
	return s.total(ctx, `
		SELECT c.name, SUM(s.amount) AS total
		FROM Sales s
		JOIN Customers c ON s.customer_id = c.customer_id
		GROUP BY c.customer_id
		ORDER BY total DESC, c.customer_id
		LIMIT 1`, "customer with purchases")
}

// CustomerAverage returns the average purchase of a customer
func (s *Service) CustomerAverage(ctx context.Context, customerID int64) (*models.PartyTotal, error) {
	return s.total(ctx, `
		SELECT c.name, AVG(s.amount) AS total
		FROM Sales s
		JOIN Customers c ON s.customer_id = c.customer_id
		WHERE c.customer_id = ?
		GROUP BY c.customer_id`, "purchases of customer "+itoa(customerID), customerID)
}

// SalesmanAverage returns the average sale of a salesman
func (s *Service) SalesmanAverage(ctx context.Context, salesmanID int64) (*models.PartyTotal, error) {
	return s.total(ctx, `
		SELECT sm.name, AVG(s.amount) AS total
		FROM Sales s
		JOIN Salesmen sm ON s.salesman_id = sm.salesman_id
		WHERE sm.salesman_id = ?
		GROUP BY sm.salesman_id`, "sales of salesman "+itoa(salesmanID), salesmanID)
}

func (s *Service) total(ctx context.Context, query, what string, args ...interface{}) (*models.PartyTotal, error) {
	var t models.PartyTotal
	err := s.db.GetContext(ctx, &t, query, args...)
	if err == sql.ErrNoRows {
		return nil, errors.NotFoundf("%s", what)
	}
	if err != nil {
		return nil, errors.Annotate(err, "compute total")
	}
	return &t, nil
}

// Salesmen lists all salesmen
func (s *Service) Salesmen(ctx context.Context) ([]models.Salesman, error) {
	var out []models.Salesman
	err := s.db.SelectContext(ctx, &out,
		`SELECT salesman_id, name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone
		FROM Salesmen ORDER BY salesman_id`)
	if err != nil {
		return nil, errors.Annotate(err, "list salesmen")
	}
	return out, nil
}

// Customers lists all customers
func (s *Service) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := s.db.SelectContext(ctx, &out,
		`SELECT customer_id, name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone
		FROM Customers ORDER BY customer_id`)
	if err != nil {
		return nil, errors.Annotate(err, "list customers")
	}
	return out, nil
}

// DetailResult renders sales as a result set
func DetailResult(details ...models.SaleDetail) *database.ResultSet {
	rs := &database.ResultSet{
		Columns: []string{"sale_id", "salesman", "customer", "amount", "sale_date"},
		Rows:    make([][]string, 0, len(details)),
	}
	for _, d := range details {
		rs.Rows = append(rs.Rows, []string{itoa(d.ID), d.Salesman, d.Customer, d.Amount.String(), d.Date.String()})
	}
	return rs
}

// TotalResult renders an aggregate under the given value column name
func TotalResult(column string, totals ...models.PartyTotal) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"name", column}, Rows: make([][]string, 0, len(totals))}
	for _, t := range totals {
		rs.Rows = append(rs.Rows, []string{t.Name, t.Total.String()})
	}
	return rs
}

// PeopleResult renders salesmen as a result set
func PeopleResult(salesmen []models.Salesman) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"salesman_id", "name", "email", "phone"}, Rows: [][]string{}}
	for _, p := range salesmen {
		rs.Rows = append(rs.Rows, []string{itoa(p.ID), p.Name, p.Email, p.Phone})
	}
	return rs
}

// CustomerResult renders customers as a result set
func CustomerResult(customers []models.Customer) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"customer_id", "name", "email", "phone"}, Rows: [][]string{}}
	for _, c := range customers {
		rs.Rows = append(rs.Rows, []string{itoa(c.ID), c.Name, c.Email, c.Phone})
	}
	return rs
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
