package hospital

import (
	"context"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/exercise"
)

func init() {
	exercise.Register(&exercise.Exercise{
		Name:        Name,
		Title:       "Hospital: departments, doctors and sponsors",
		Description: "Six related tables loaded from a fixed test data set; staff, ward and donation reports.",
		ForeignKeys: true,
		Files:       files,
		Seed: func(ctx context.Context, db *database.Pool) error {
			return New(db).Seed(ctx)
		},
		Steps: []exercise.Step{
			exercise.Query("Doctors and their specializations", `
				SELECT first_name || ' ' || last_name AS full_name, specialization
				FROM doctors
				ORDER BY full_name`),
			exercise.Query("Doctors not on vacation by total salary", `
				SELECT last_name, salary_base + COALESCE(salary_bonus, 0) AS total_salary
				FROM doctors
				WHERE on_vacation = 0
				ORDER BY total_salary DESC`),
			exercise.Query("Wards of the pediatric department", `
				SELECT w.name, w.capacity
				FROM wards w
				JOIN departments d ON w.department_id = d.id
				WHERE d.name = ?
				ORDER BY w.name`, "Педиатрическое отделение"),
			exercise.Query("Departments sponsored by HealthPlus", `
				SELECT DISTINCT d.name, d.description
				FROM departments d
				JOIN donations dn ON d.id = dn.department_id
				JOIN sponsors s ON dn.sponsor_id = s.id
				WHERE s.company_name = ?
				ORDER BY d.name`, "HealthPlus"),
			exercise.Query("Donations in March 2024", `
				SELECT d.name AS department, s.company_name AS company, dn.amount, dn.donation_date
				FROM donations dn
				JOIN departments d ON dn.department_id = d.id
				JOIN sponsors s ON dn.sponsor_id = s.id
				WHERE dn.donation_date BETWEEN '2024-03-01' AND '2024-03-31'
				ORDER BY dn.donation_date`),
			exercise.Query("Doctors and their departments", `
				SELECT doc.last_name, doc.first_name, dep.name AS department, doc.specialization
				FROM doctors doc
				JOIN departments dep ON doc.department_id = dep.id
				ORDER BY dep.name, doc.last_name`),
			exercise.Reject("A ward in a missing department is refused",
				exercise.SQL(`INSERT INTO wards (name, department_id, capacity) VALUES ('Палата 999', 42, 1)`)),
			exercise.Query("Examinations per department", `
				SELECT d.name AS department, COUNT(e.id) AS examinations
				FROM departments d
				LEFT JOIN examinations e ON e.department_id = d.id
				GROUP BY d.id
				ORDER BY d.id`),
		},
	})
}
