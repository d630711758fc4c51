package exercise

func init() {
	Register(&Exercise{
		Name:        "sales-views",
		Title:       "Sales: reporting views",
		Description: "Sellers, customers and deals exposed as views; seller and customer views accept updates.",
		Steps: []Step{
			Query("All sellers", `SELECT * FROM AllSellers`),
			Query("All customers", `SELECT * FROM AllCustomers`),
			Query("Apple sales", `SELECT * FROM AppleSales`),
			Query("All deals", `SELECT * FROM AllSales`),
			Query("Most active seller", `SELECT * FROM MostActiveSeller`),
			Query("Most active customer", `SELECT * FROM MostActiveCustomer`),
			Exec("Change a seller e-mail through AllSellers",
				SQL(`UPDATE AllSellers SET email = ? WHERE seller_id = ?`, "o.ivanova@example.com", 1)),
			Exec("Rename a customer through AllCustomers",
				SQL(`UPDATE AllCustomers SET name = ? WHERE customer_id = ?`, "ИП Кузнецов А.В.", 2)),
			Exec("Sell 4 kg of apples",
				SQL(`INSERT INTO Sales (product_id, seller_id, customer_id, quantity, sale_date, total_amount)
					VALUES (1, 2, 3, 4, '2025-03-07', 220.0)`)),
			Query("Apple sales after the new deal", `SELECT * FROM AppleSales`),
			Query("All sellers after the update", `SELECT * FROM AllSellers`),
		},
	})
}
