package exercise

func init() {
	Register(&Exercise{
		Name:        "academy",
		Title:       "Academy: filtering and projection",
		Description: "Departments, faculties, groups and teachers with CHECK constraints; single-table queries.",
		Steps: []Step{
			Query("Departments with columns in reverse order",
				`SELECT name, financing, id FROM departments`),
			Query("Group names and ratings qualified by table",
				`SELECT groups.name AS "groups.name", groups.rating AS "groups.rating" FROM groups`),
			Query("Teacher salary as a percentage of premium and of total pay",
				`SELECT surname,
					ROUND(salary / premium * 100, 2) AS "salary to premium, %",
					ROUND(salary / (salary + premium) * 100, 2) AS "salary to total, %"
				FROM teachers
				WHERE premium > 0`),
			Query("Faculties as a single sentence",
				`SELECT 'The dean of faculty ' || name || ' is ' || dean || '.' AS faculty FROM faculties`),
			Query("Professors with salary above 1050",
				`SELECT surname FROM teachers WHERE is_professor = 1 AND salary > 1050`),
			Query("Departments financed below 11000 or above 25000",
				`SELECT name FROM departments WHERE financing < 11000 OR financing > 25000`),
			Query("Faculties other than Computer Science",
				`SELECT name FROM faculties WHERE name <> 'Computer Science'`),
			Query("Teachers who are not professors",
				`SELECT surname, position FROM teachers WHERE is_professor = 0`),
			Query("Assistants with premium between 160 and 550",
				`SELECT surname, position, salary, premium
				FROM teachers
				WHERE is_assistant = 1 AND premium BETWEEN 160 AND 550`),
			Query("Assistant surnames and salaries",
				`SELECT surname, salary FROM teachers WHERE is_assistant = 1`),
			Query("Teachers hired before 2000-01-01",
				`SELECT surname, position FROM teachers WHERE employment_date < '2000-01-01'`),
			Query("Departments alphabetically before Software Development",
				`SELECT name AS "Name of Department"
				FROM departments
				WHERE name < 'Software Development'
				ORDER BY name`),
			Query("Assistants earning at most 1200 in total",
				`SELECT surname FROM teachers WHERE is_assistant = 1 AND salary + premium <= 1200`),
			Query("Fifth-year groups rated 2 to 4",
				`SELECT name FROM groups WHERE year = 5 AND rating BETWEEN 2 AND 4`),
			Query("Assistants with salary below 550 or premium below 200",
				`SELECT surname, salary, premium
				FROM teachers
				WHERE is_assistant = 1 AND (salary < 550 OR premium < 200)`),
			Reject("Group rating outside 0..5 is refused",
				SQL(`INSERT INTO groups (name, rating, year) VALUES ('CS-999', 7, 1)`)),
			Reject("Duplicate department name is refused",
				SQL(`INSERT INTO departments (name, financing) VALUES ('Математика', 100)`)),
		},
	})
}
