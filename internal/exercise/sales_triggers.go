package exercise

const insertTriggerCustomer = `INSERT INTO customers (first_name, last_name) VALUES (?, ?)`
const insertTriggerSeller = `INSERT INTO sellers (first_name, last_name) VALUES (?, ?)`
const insertTriggerSale = `INSERT INTO sales (customer_id, product_id, seller_id, sale_date) VALUES (?, ?, ?, ?)`

func init() {
	Register(&Exercise{
		Name:        "sales-triggers",
		Title:       "Sales: business rules as triggers",
		Description: "Surname duplicate log, purchase archive on delete, customer/seller name collision guards, forbidden products.",
		Steps: []Step{
			Exec("Add customer Анна Иванова", SQL(insertTriggerCustomer, "Анна", "Иванова")),
			Exec("Add customer Мария Иванова (same surname)", SQL(insertTriggerCustomer, "Мария", "Иванова")),
			Exec("Add customer Олег Смирнов", SQL(insertTriggerCustomer, "Олег", "Смирнов")),
			Query("Duplicate surname log",
				`SELECT id, last_name, info FROM duplicate_customers_log`),
			Exec("Add seller Игорь Петров", SQL(insertTriggerSeller, "Игорь", "Петров")),
			Reject("Seller Анна Иванова is already a customer", SQL(insertTriggerSeller, "Анна", "Иванова")),
			Reject("Customer Игорь Петров is already a seller", SQL(insertTriggerCustomer, "Игорь", "Петров")),
			Exec("Add products",
				SQL(`INSERT OR IGNORE INTO products (name) VALUES ('хлеб'), ('молоко'), ('яблоки'), ('сыр')`)),
			Exec("Анна Иванова buys bread", SQL(insertTriggerSale, 1, 1, 1, "2026-02-08")),
			Exec("Олег Смирнов buys milk and cheese",
				SQL(insertTriggerSale, 3, 2, 1, "2026-02-09"),
				SQL(insertTriggerSale, 3, 4, 1, "2026-02-10")),
			Reject("Selling apples is forbidden", SQL(insertTriggerSale, 1, 3, 1, "2026-02-08")),
			Exec("Delete customer Олег Смирнов",
				SQL(`DELETE FROM customers WHERE first_name = ? AND last_name = ?`, "Олег", "Смирнов")),
			Query("Archived purchase history",
				`SELECT id, customer_name, product_name, sale_date FROM purchase_history`),
			Query("Current customers", `SELECT id, first_name, last_name FROM customers`),
			Query("Current sellers", `SELECT id, first_name, last_name FROM sellers`),
			Query("Current sales", `SELECT id, customer_id, product_id, seller_id, sale_date FROM sales`),
		},
	})
}
