// Package hospital manages the hospital database: departments, wards,
// doctors, sponsors with their donations, and patient examinations.
package hospital

import (
	"context"
	"embed"
	"io/fs"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/juju/errors"
	"github.com/juju/loggo/v2"

	"github.com/willfong/classroom-sql/internal/data"
	"github.com/willfong/classroom-sql/internal/database"
	"github.com/willfong/classroom-sql/internal/models"
	"github.com/willfong/classroom-sql/internal/utils"
)

var logger = loggo.GetLogger("classdb.hospital")

// Name is the exercise and database name of the hospital
const Name = "hospital"

//go:embed schemas/*.sql
var files embed.FS

// Tables lists the hospital tables, children before parents
var Tables = []string{"examinations", "donations", "doctors", "wards", "sponsors", "departments"}

// Service runs reports and seeding against one hospital database
type Service struct {
	db *database.Pool
}

// New creates a service on an open pool
func New(db *database.Pool) *Service {
	return &Service{db: db}
}

// Setup creates the tables if absent
func (s *Service) Setup(ctx context.Context) error {
	schema, err := fs.ReadFile(files, "schemas/"+Name+".sql")
	if err != nil {
		return errors.Annotate(err, "read schema")
	}
	if err := s.db.ExecScript(ctx, string(schema)); err != nil {
		return errors.Annotate(err, "create hospital schema")
	}
	return nil
}

// Seed replaces the contents of every table with the fixed test data set
func (s *Service) Seed(ctx context.Context) error {
	ref, err := data.Load()
	if err != nil {
		return errors.Annotate(err, "load hospital data")
	}
	seed := ref.Seed

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Annotate(err, "begin transaction")
	}
	defer tx.Rollback()

	for _, table := range Tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Annotatef(err, "clear %s", table)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence`); err != nil {
		return errors.Annotate(err, "reset id sequences")
	}

	inserts := []struct {
		table string
		query string
		rows  func() []interface{}
	}{
		{"departments", `INSERT INTO departments (id, name, description) VALUES (:id, :name, :description)`,
			func() []interface{} { return rowsOf(seed.Departments) }},
		{"sponsors", `INSERT INTO sponsors (id, company_name, contact_person, phone)
			VALUES (:id, :company_name, :contact_person, :phone)`,
			func() []interface{} { return rowsOf(seed.Sponsors) }},
		{"wards", `INSERT INTO wards (id, name, department_id, capacity)
			VALUES (:id, :name, :department_id, :capacity)`,
			func() []interface{} { return rowsOf(seed.Wards) }},
		{"doctors", `INSERT INTO doctors (id, first_name, last_name, specialization, salary_base, salary_bonus, department_id, on_vacation)
			VALUES (:id, :first_name, :last_name, :specialization, :salary_base, :salary_bonus, :department_id, :on_vacation)`,
			func() []interface{} { return rowsOf(seed.Doctors) }},
		{"donations", `INSERT INTO donations (id, sponsor_id, department_id, amount, donation_date)
			VALUES (:id, :sponsor_id, :department_id, :amount, :donation_date)`,
			func() []interface{} { return rowsOf(seed.Donations) }},
		{"examinations", `INSERT INTO examinations (id, doctor_id, department_id, patient_name, examination_date, diagnosis)
			VALUES (:id, :doctor_id, :department_id, :patient_name, :examination_date, :diagnosis)`,
			func() []interface{} { return rowsOf(seed.Examinations) }},
	}

	for _, ins := range inserts {
		rows := ins.rows()
		if err := namedInsert(ctx, tx, ins.query, rows); err != nil {
			return errors.Annotatef(err, "insert %s", ins.table)
		}
		logger.Debugf("inserted %d rows into %s", len(rows), ins.table)
	}

	if err := tx.Commit(); err != nil {
		return errors.Annotate(err, "commit")
	}
	logger.Infof("hospital test data loaded")
	return nil
}

func rowsOf[T any](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}

func namedInsert(ctx context.Context, tx *sqlx.Tx, query string, rows []interface{}) error {
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, row); err != nil {
			return err
		}
	}
	return nil
}

// Examination weights: doctors on vacation still see the odd patient
const (
	weightOnDuty     = 4
	weightOnVacation = 1
)

// ExaminationYear bounds the dates of generated examinations
const ExaminationYear = 2024

// SeedRandom appends n examinations with generated patients. The same
// seed over the same doctors yields the same rows; seed 0 picks a random one.
func (s *Service) SeedRandom(ctx context.Context, n int, seed int64) (int, error) {
	if n <= 0 {
		return 0, errors.NotValidf("examination count %d", n)
	}
	ref, err := data.Load()
	if err != nil {
		return 0, errors.Annotate(err, "load hospital data")
	}

	var doctors []models.Doctor
	err = s.db.SelectContext(ctx, &doctors, `
		SELECT id, first_name, last_name, COALESCE(specialization, '') AS specialization,
			COALESCE(salary_base, 0) AS salary_base, COALESCE(salary_bonus, 0) AS salary_bonus,
			COALESCE(department_id, 0) AS department_id, on_vacation
		FROM doctors ORDER BY id`)
	if err != nil {
		return 0, errors.Annotate(err, "list doctors")
	}
	if len(doctors) == 0 {
		return 0, errors.NotFoundf("doctors to examine patients")
	}

	weights := make([]int, len(doctors))
	for i, d := range doctors {
		weights[i] = weightOnDuty
		if d.OnVacation {
			weights[i] = weightOnVacation
		}
	}

	rng := utils.NewRandom(seed)
	start := time.Date(ExaminationYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(ExaminationYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	pools := ref.Patients

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Annotate(err, "begin transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, `
		INSERT INTO examinations (doctor_id, department_id, patient_name, examination_date, diagnosis)
		VALUES (:doctor_id, :department_id, :patient_name, :examination_date, :diagnosis)`)
	if err != nil {
		return 0, errors.Annotate(err, "prepare insert")
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		doc := doctors[rng.WeightedPick(weights)]
		surname := utils.Pick(rng, pools.Surnames)
		patient := data.PatientName(surname, rng.Bool(),
			rng.PickString(pools.Initials), rng.PickString(pools.Initials))
		exam := models.Examination{
			DoctorID:     doc.ID,
			DepartmentID: doc.DepartmentID,
			PatientName:  patient,
			Date:         models.Date{Time: rng.Day(start, end)},
			Diagnosis:    rng.PickString(ref.GetDiagnoses(doc.Specialization)),
		}
		if _, err := stmt.ExecContext(ctx, exam); err != nil {
			return 0, errors.Annotate(err, "insert examination")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Annotate(err, "commit")
	}
	logger.Infof("generated %d examinations (seed %d)", n, rng.Seed())
	return n, nil
}
