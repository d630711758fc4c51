package sales

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/models"
	"github.com/willfong/classroom-sql/internal/utils"
)

// Person holds the editable fields of a salesman or customer
type Person struct {
	Name  string
	Email string
	Phone string
}

func (p Person) validate(kind string) error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.NotValidf("%s without a name", kind)
	}
	return nil
}

// party describes one of the two tables referenced by Sales
type party struct {
	kind  string
	table string
	key   string
}

var (
	salesmen  = party{kind: "salesman", table: "Salesmen", key: "salesman_id"}
	customers = party{kind: "customer", table: "Customers", key: "customer_id"}
)

// InsertSale records a sale dated today and returns its id
func (s *Service) InsertSale(ctx context.Context, salesmanID, customerID int64, amount utils.Money) (int64, error) {
	if !amount.IsPositive() {
		return 0, errors.NotValidf("sale amount %s", amount)
	}
	if err := s.exists(ctx, salesmen, salesmanID); err != nil {
		return 0, err
	}
	if err := s.exists(ctx, customers, customerID); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO Sales (salesman_id, customer_id, amount) VALUES (?, ?, ?)`,
		salesmanID, customerID, amount)
	if err != nil {
		return 0, errors.Annotate(err, "insert sale")
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	logger.Infof("sale %d recorded: salesman %d, customer %d, %s", id, salesmanID, customerID, amount)
	return id, nil
}

// UpdateSale changes the amount of a sale
func (s *Service) UpdateSale(ctx context.Context, saleID int64, amount utils.Money) error {
	if !amount.IsPositive() {
		return errors.NotValidf("sale amount %s", amount)
	}
	return s.affectOne(ctx, "sale "+itoa(saleID),
		`UPDATE Sales SET amount = ? WHERE sale_id = ?`, amount, saleID)
}

// DeleteSale removes a sale
func (s *Service) DeleteSale(ctx context.Context, saleID int64) error {
	return s.affectOne(ctx, "sale "+itoa(saleID), `DELETE FROM Sales WHERE sale_id = ?`, saleID)
}

// GetSale returns one sale
func (s *Service) GetSale(ctx context.Context, saleID int64) (*models.Sale, error) {
	var sale models.Sale
	err := s.db.GetContext(ctx, &sale,
		`SELECT sale_id, salesman_id, customer_id, amount, sale_date FROM Sales WHERE sale_id = ?`, saleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NotFoundf("sale %d", saleID)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "read sale %d", saleID)
	}
	return &sale, nil
}

// InsertSalesman adds a salesman and returns the new id
func (s *Service) InsertSalesman(ctx context.Context, p Person) (int64, error) {
	return s.insertParty(ctx, salesmen, p)
}

// UpdateSalesman replaces the name and contacts of a salesman
func (s *Service) UpdateSalesman(ctx context.Context, id int64, p Person) error {
	return s.updateParty(ctx, salesmen, id, p)
}

// DeleteSalesman removes a salesman without sales
func (s *Service) DeleteSalesman(ctx context.Context, id int64) error {
	return s.deleteParty(ctx, salesmen, id)
}

// InsertCustomer adds a customer and returns the new id
func (s *Service) InsertCustomer(ctx context.Context, p Person) (int64, error) {
	return s.insertParty(ctx, customers, p)
}

// UpdateCustomer replaces the name and contacts of a customer
func (s *Service) UpdateCustomer(ctx context.Context, id int64, p Person) error {
	return s.updateParty(ctx, customers, id, p)
}

// DeleteCustomer removes a customer without purchases
func (s *Service) DeleteCustomer(ctx context.Context, id int64) error {
	return s.deleteParty(ctx, customers, id)
}

func (s *Service) insertParty(ctx context.Context, pt party, p Person) (int64, error) {
	if err := p.validate(pt.kind); err != nil {
		return 0, err
	}
	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (name, email, phone) VALUES (?, ?, ?)`, pt.table),
		p.Name, p.Email, p.Phone)
	if err != nil {
		return 0, errors.Annotatef(err, "insert %s", pt.kind)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	logger.Infof("%s %d added: %s", pt.kind, id, p.Name)
	return id, nil
}

func (s *Service) updateParty(ctx context.Context, pt party, id int64, p Person) error {
	if err := p.validate(pt.kind); err != nil {
		return err
	}
	return s.affectOne(ctx, pt.kind+" "+itoa(id),
		fmt.Sprintf(`UPDATE %s SET name = ?, email = ?, phone = ? WHERE %s = ?`, pt.table, pt.key),
		p.Name, p.Email, p.Phone, id)
}

// deleteParty refuses to orphan sales: the check and the delete share a transaction
func (s *Service) deleteParty(ctx context.Context, pt party, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "begin transaction")
	}
	defer tx.Rollback()

	var n int
	err = tx.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM Sales WHERE %s = ?`, pt.key), id)
	if err != nil {
		return errors.Annotatef(err, "count sales of %s %d", pt.kind, id)
	}
	if n > 0 {
		return errors.Annotatef(ErrHasSales, "%s %d has %d sales", pt.kind, id, n)
	}

	result, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, pt.table, pt.key), id)
	if err != nil {
		return errors.Annotatef(err, "delete %s %d", pt.kind, id)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.NotFoundf("%s %d", pt.kind, id)
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "commit")
	}
	logger.Infof("%s %d deleted", pt.kind, id)
	return nil
}

func (s *Service) exists(ctx context.Context, pt party, id int64) error {
	var n int
	err := s.db.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = ?`, pt.table, pt.key), id)
	if err != nil {
		return errors.Annotatef(err, "look up %s %d", pt.kind, id)
	}
	if n == 0 {
		return errors.NotFoundf("%s %d", pt.kind, id)
	}
	return nil
}

func (s *Service) affectOne(ctx context.Context, what, query string, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Annotatef(err, "change %s", what)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFoundf("%s", what)
	}
	logger.Debugf("%s changed", what)
	return nil
}
