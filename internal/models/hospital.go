package models

import (
	"github.com/willfong/classroom-sql/internal/utils"
)

// Department is a hospital department
type Department struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}

// Sponsor is a company that donates to departments
type Sponsor struct {
	ID            int64  `db:"id" json:"id"`
	CompanyName   string `db:"company_name" json:"company_name"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Phone         string `db:"phone" json:"phone"`
}

// Ward belongs to one department
type Ward struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
	Capacity     int    `db:"capacity" json:"capacity"`
}

// Doctor works in one department
type Doctor struct {
	ID             int64       `db:"id" json:"id"`
	FirstName      string      `db:"first_name" json:"first_name"`
	LastName       string      `db:"last_name" json:"last_name"`
	Specialization string      `db:"specialization" json:"specialization"`
	SalaryBase     utils.Money `db:"salary_base" json:"salary_base"`
	SalaryBonus    utils.Money `db:"salary_bonus" json:"salary_bonus"`
	DepartmentID   int64       `db:"department_id" json:"department_id"`
	OnVacation     bool        `db:"on_vacation" json:"on_vacation"`
}

// FullName returns "first last"
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}

// TotalSalary returns base plus bonus
func (d *Doctor) TotalSalary() utils.Money {
	return d.SalaryBase.Add(d.SalaryBonus)
}

// Donation is money given by a sponsor to a department
type Donation struct {
	ID           int64       `db:"id" json:"id"`
	SponsorID    int64       `db:"sponsor_id" json:"sponsor_id"`
	DepartmentID int64       `db:"department_id" json:"department_id"`
	Amount       utils.Money `db:"amount" json:"amount"`
	Date         Date        `db:"donation_date" json:"donation_date"`
}

// Examination is a patient visit to a doctor
type Examination struct {
	ID           int64  `db:"id" json:"id"`
	DoctorID     int64  `db:"doctor_id" json:"doctor_id"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
	PatientName  string `db:"patient_name" json:"patient_name"`
	Date         Date   `db:"examination_date" json:"examination_date"`
	Diagnosis    string `db:"diagnosis" json:"diagnosis"`
}
