package models

import (
	"github.com/willfong/classroom-sql/internal/utils"
)

// Salesman is a row of Salesmen
type Salesman struct {
	ID    int64  `db:"salesman_id" json:"salesman_id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

// Customer is a row of Customers
type Customer struct {
	ID    int64  `db:"customer_id" json:"customer_id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone"`
}

// Sale is a row of Sales
type Sale struct {
	ID         int64       `db:"sale_id" json:"sale_id"`
	SalesmanID int64       `db:"salesman_id" json:"salesman_id"`
	CustomerID int64       `db:"customer_id" json:"customer_id"`
	Amount     utils.Money `db:"amount" json:"amount"`
	Date       Date        `db:"sale_date" json:"sale_date"`
}

// SaleDetail is a sale joined with the names of both parties
type SaleDetail struct {
	ID       int64       `db:"sale_id" json:"sale_id"`
	Salesman string      `db:"salesman" json:"salesman"`
	Customer string      `db:"customer" json:"customer"`
	Amount   utils.Money `db:"amount" json:"amount"`
	Date     Date        `db:"sale_date" json:"sale_date"`
}

// PartyTotal is an aggregate over the sales of one salesman or customer
type PartyTotal struct {
	Name  string      `db:"name" json:"name"`
	Total utils.Money `db:"total" json:"total"`
}
