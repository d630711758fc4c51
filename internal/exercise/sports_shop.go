package exercise

const productListing = `SELECT p.id, p.name, c.name AS category, m.name AS manufacturer,
		p.price, p.quantity, p.description
	FROM products p
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN manufacturers m ON p.manufacturer_id = m.id`

const inStockByCategory = `SELECT p.id, p.name, m.name AS manufacturer, p.price, p.quantity
	FROM products p
	JOIN categories c ON p.category_id = c.id
	LEFT JOIN manufacturers m ON p.manufacturer_id = m.id
	WHERE c.name = ? AND p.quantity > 0
	ORDER BY p.id`

const manufacturerStock = `SELECT ? AS manufacturer, COUNT(*) AS products_in_stock,
		CASE WHEN COUNT(*) > 0 THEN 'yes' ELSE 'no' END AS available
	FROM products p
	JOIN manufacturers m ON p.manufacturer_id = m.id
	WHERE m.name = ? AND p.quantity > 0`

func init() {
	Register(&Exercise{
		Name:        "sports-shop",
		Title:       "Sports shop: catalogue procedures",
		Description: "Manufacturers, categories, products, customers, sellers and sales; catalogue lookups, rankings and a dated purge.",
		Steps: []Step{
			Query("All products", productListing+` ORDER BY p.id`),
			Query("Footwear in stock", inStockByCategory, "Обувь"),
			Query("Clothing in stock", inStockByCategory, "Одежда"),
			Query("Three longest-registered customers",
				`SELECT id, name, email, registration_date, phone
				FROM customers
				ORDER BY registration_date ASC
				LIMIT 3`),
			Query("Most successful seller",
				`SELECT s.id, s.name, s.salary, SUM(sa.total_amount) AS total_sales
				FROM sellers s
				JOIN sales sa ON s.id = sa.seller_id
				GROUP BY s.id
				ORDER BY total_sales DESC
				LIMIT 1`),
			Query("Asics products in stock", manufacturerStock, "Asics", "Asics"),
			Query("Fila products in stock", manufacturerStock, "Fila", "Fila"),
			Query("Most popular manufacturer",
				`SELECT m.id, m.name, m.country, SUM(s.total_amount) AS total_sales
				FROM manufacturers m
				JOIN products p ON m.id = p.manufacturer_id
				JOIN sales s ON p.id = s.product_id
				GROUP BY m.id
				ORDER BY total_sales DESC
				LIMIT 1`),
			Query("Customers registered after 2020-01-01",
				`SELECT COUNT(*) AS customers FROM customers WHERE registration_date > ?`, "2020-01-01"),
			Exec("Delete customers registered after 2020-01-01",
				SQL(`DELETE FROM customers WHERE registration_date > ?`, "2020-01-01")),
			Query("Remaining customers", `SELECT id, name, registration_date FROM customers ORDER BY id`),
		},
	})
}
