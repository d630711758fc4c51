package exercise

const insertSportsProduct = `INSERT INTO products (name, category, price, quantity) VALUES (?, ?, ?, ?)`
const insertEmployee = `INSERT INTO employees (full_name, position, salary, hire_date) VALUES (?, ?, ?, DATE('now'))`

func init() {
	Register(&Exercise{
		Name:        "sports-triggers",
		Title:       "Sports shop: business rules as triggers",
		Description: "Duplicate products merge into stock, at most six sellers, dismissed employees are archived.",
		Steps: []Step{
			Exec("Add treadmill x3", SQL(insertSportsProduct, "Беговая дорожка", "Кардиотренажёры", 79900.0, 3)),
			Exec("Add 10 kg dumbbells x12", SQL(insertSportsProduct, "Гантели 10 кг", "Силовой инвентарь", 4200.0, 12)),
			Exec("Add treadmill x2 (merged into stock)", SQL(insertSportsProduct, "Беговая дорожка", "Кардиотренажёры", 79900.0, 2)),
			Query("Products in stock", `SELECT id, name, category, price, quantity FROM products ORDER BY id`),
			Exec("Hire six sellers",
				SQL(insertEmployee, "Климов Артём", "продавец", 36000),
				SQL(insertEmployee, "Романова Полина", "продавец", 37500),
				SQL(insertEmployee, "Фёдоров Максим", "продавец", 35500),
				SQL(insertEmployee, "Никитина Алина", "продавец", 38000),
				SQL(insertEmployee, "Гусев Денис", "продавец", 36500),
				SQL(insertEmployee, "Власова Ирина", "продавец", 37000)),
			Reject("Seventh seller is refused", SQL(insertEmployee, "Лазарев Кирилл", "продавец", 35000)),
			Exec("Hire an administrator", SQL(insertEmployee, "Соколова Марина", "администратор", 52000)),
			Query("Employees", `SELECT id, full_name, position, salary FROM employees ORDER BY id`),
			Exec("Dismiss employee 3", SQL(`DELETE FROM employees WHERE id = 3`)),
			Query("Employee archive", `SELECT id, full_name, position, hire_date, fire_date FROM employees_archive`),
		},
	})
}
