package hospital

import (
	"context"
	"strconv"
	"time"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/models"
	"github.com/willfong/classroom-sql/internal/utils"
)

// DoctorSpecialty is a doctor's full name with specialization
type DoctorSpecialty struct {
	FullName       string `db:"full_name"`
	Specialization string `db:"specialization"`
}

// DoctorPay is a doctor's surname with base plus bonus
type DoctorPay struct {
	LastName    string      `db:"last_name"`
	TotalSalary utils.Money `db:"total_salary"`
}

// WardCapacity is a ward name with its number of beds
type WardCapacity struct {
	Name     string `db:"name"`
	Capacity int    `db:"capacity"`
}

// SponsoredDepartment is a department that received a donation
type SponsoredDepartment struct {
	Name        string `db:"name"`
	Description string `db:"description"`
}

// DonationLine is one donation with the names of both sides
type DonationLine struct {
	Department string      `db:"department"`
	Company    string      `db:"company"`
	Amount     utils.Money `db:"amount"`
	Date       models.Date `db:"donation_date"`
}

// MonthDonations is the donations of one calendar month
type MonthDonations struct {
	From  models.Date
	To    models.Date
	Lines []DonationLine
	Total utils.Money
}

// DoctorDepartment is a doctor with the name of their department
type DoctorDepartment struct {
	LastName       string `db:"last_name"`
	FirstName      string `db:"first_name"`
	Department     string `db:"department"`
	Specialization string `db:"specialization"`
}

// DoctorsWithSpecialties lists every doctor by full name
func (s *Service) DoctorsWithSpecialties(ctx context.Context) ([]DoctorSpecialty, error) {
	var out []DoctorSpecialty
	err := s.db.SelectContext(ctx, &out, `
		SELECT first_name || ' ' || last_name AS full_name, COALESCE(specialization, '') AS specialization
		FROM doctors
		ORDER BY full_name`)
	if err != nil {
		return nil, errors.Annotate(err, "list doctors")
	}
	return out, nil
}

// DoctorsOnDuty lists doctors not on vacation, best paid first
func (s *Service) DoctorsOnDuty(ctx context.Context) ([]DoctorPay, error) {
	var out []DoctorPay
	err := s.db.SelectContext(ctx, &out, `
		SELECT last_name, COALESCE(salary_base, 0) + COALESCE(salary_bonus, 0) AS total_salary
		FROM doctors
		WHERE on_vacation = 0
		ORDER BY total_salary DESC`)
	if err != nil {
		return nil, errors.Annotate(err, "list doctors on duty")
	}
	return out, nil
}

// WardsOf lists the wards of the named department
func (s *Service) WardsOf(ctx context.Context, department string) ([]WardCapacity, error) {
	var out []WardCapacity
	err := s.db.SelectContext(ctx, &out, `
		SELECT w.name, COALESCE(w.capacity, 0) AS capacity
		FROM wards w
		JOIN departments d ON w.department_id = d.id
		WHERE d.name = ?
		ORDER BY w.name`, department)
	if err != nil {
		return nil, errors.Annotatef(err, "list wards of %s", department)
	}
	return out, nil
}

// SponsoredBy lists the departments that received money from a company
func (s *Service) SponsoredBy(ctx context.Context, company string) ([]SponsoredDepartment, error) {
	var out []SponsoredDepartment
	err := s.db.SelectContext(ctx, &out, `
		SELECT DISTINCT d.name, COALESCE(d.description, '') AS description
		FROM departments d
		JOIN donations dn ON d.id = dn.department_id
		JOIN sponsors s ON dn.sponsor_id = s.id
		WHERE s.company_name = ?
		ORDER BY d.name`, company)
	if err != nil {
		return nil, errors.Annotatef(err, "list departments sponsored by %s", company)
	}
	return out, nil
}

// DonationsIn lists the donations made in a month, in date order, with their total
func (s *Service) DonationsIn(ctx context.Context, year int, month time.Month) (*MonthDonations, error) {
	from, to := models.MonthRange(year, month)
	res := &MonthDonations{From: from, To: to}
	err := s.db.SelectContext(ctx, &res.Lines, `
		SELECT d.name AS department, s.company_name AS company, dn.amount, dn.donation_date
		FROM donations dn
		JOIN departments d ON dn.department_id = d.id
		JOIN sponsors s ON dn.sponsor_id = s.id
		WHERE dn.donation_date BETWEEN ? AND ?
		ORDER BY dn.donation_date, dn.id`, from, to)
	if err != nil {
		return nil, errors.Annotatef(err, "list donations of %d-%02d", year, month)
	}
	for _, l := range res.Lines {
		res.Total = res.Total.Add(l.Amount)
	}
	return res, nil
}

// DoctorsWithDepartments lists doctors grouped by department name
func (s *Service) DoctorsWithDepartments(ctx context.Context) ([]DoctorDepartment, error) {
	var out []DoctorDepartment
	err := s.db.SelectContext(ctx, &out, `
		SELECT doc.last_name, doc.first_name, dep.name AS department, COALESCE(doc.specialization, '') AS specialization
		FROM doctors doc
		JOIN departments dep ON doc.department_id = dep.id
		ORDER BY dep.name, doc.last_name`)
	if err != nil {
		return nil, errors.Annotate(err, "list doctors with departments")
	}
	return out, nil
}

// SpecialtiesResult renders DoctorsWithSpecialties
func SpecialtiesResult(rows []DoctorSpecialty) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"full_name", "specialization"}, Rows: [][]string{}}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{r.FullName, r.Specialization})
	}
	return rs
}

// PayResult renders DoctorsOnDuty
func PayResult(rows []DoctorPay) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"last_name", "total_salary"}, Rows: [][]string{}}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{r.LastName, r.TotalSalary.String()})
	}
	return rs
}

// WardsResult renders WardsOf
func WardsResult(rows []WardCapacity) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"name", "capacity"}, Rows: [][]string{}}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{r.Name, strconv.Itoa(r.Capacity)})
	}
	return rs
}

// SponsoredResult renders SponsoredBy
func SponsoredResult(rows []SponsoredDepartment) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"name", "description"}, Rows: [][]string{}}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{r.Name, r.Description})
	}
	return rs
}

// DonationsResult renders DonationsIn without the total
func DonationsResult(m *MonthDonations) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"department", "company", "amount", "donation_date"}, Rows: [][]string{}}
	for _, l := range m.Lines {
		rs.Rows = append(rs.Rows, []string{l.Department, l.Company, l.Amount.String(), l.Date.String()})
	}
	return rs
}

// DepartmentsResult renders DoctorsWithDepartments
func DepartmentsResult(rows []DoctorDepartment) *database.ResultSet {
	rs := &database.ResultSet{Columns: []string{"last_name", "first_name", "department", "specialization"}, Rows: [][]string{}}
	for _, r := range rows {
		rs.Rows = append(rs.Rows, []string{r.LastName, r.FirstName, r.Department, r.Specialization})
	}
	return rs
}
