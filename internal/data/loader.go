// Package data holds the embedded reference data used to seed the
// hospital database: the fixed test data set and the name and diagnosis
// pools used to generate extra examinations.
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/juju/errors"

	"github.com/willfong/classroom-sql/internal/models"
)

//go:embed hospital/*.json
var dataFiles embed.FS

// HospitalSeed represents the structure of hospital/seed.json
type HospitalSeed struct {
	Departments  []models.Department  `json:"departments"`
	Sponsors     []models.Sponsor     `json:"sponsors"`
	Wards        []models.Ward        `json:"wards"`
	Doctors      []models.Doctor      `json:"doctors"`
	Donations    []models.Donation    `json:"donations"`
	Examinations []models.Examination `json:"examinations"`
}

// Surname is one family name in both grammatical genders
type Surname struct {
	Male   string `json:"male"`
	Female string `json:"female"`
}

// PatientPools represents the structure of hospital/patients.json
type PatientPools struct {
	Surnames  []Surname           `json:"surnames"`
	Initials  []string            `json:"initials"`
	Diagnoses map[string][]string `json:"diagnoses"`
	General   []string            `json:"general"`
}

// ReferenceData holds all loaded reference data
type ReferenceData struct {
	Seed     HospitalSeed
	Patients PatientPools

	departmentByID map[int64]*models.Department
}

var (
	instance *ReferenceData
	once     sync.Once
	loadErr  error
)

// Load loads all reference data from embedded files
// This is thread-safe and will only load data once
func Load() (*ReferenceData, error) {
	once.Do(func() {
		instance = &ReferenceData{}
		loadErr = instance.loadAll()
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

func (r *ReferenceData) loadAll() error {
	if err := readJSON("hospital/seed.json", &r.Seed); err != nil {
		return err
	}
	if err := readJSON("hospital/patients.json", &r.Patients); err != nil {
		return err
	}

	r.departmentByID = make(map[int64]*models.Department, len(r.Seed.Departments))
	for i := range r.Seed.Departments {
		d := &r.Seed.Departments[i]
		r.departmentByID[d.ID] = d
	}
	return nil
}

func readJSON(name string, v interface{}) error {
	data, err := dataFiles.ReadFile(name)
	if err != nil {
		return errors.Annotatef(err, "read %s", name)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Annotatef(err, "parse %s", name)
	}
	return nil
}

// GetDepartment returns a seeded department by id
func (r *ReferenceData) GetDepartment(id int64) (*models.Department, bool) {
	d, ok := r.departmentByID[id]
	return d, ok
}

// GetDiagnoses returns the diagnoses a doctor of the given specialization
// makes, falling back to the general list
func (r *ReferenceData) GetDiagnoses(specialization string) []string {
	if list, ok := r.Patients.Diagnoses[specialization]; ok && len(list) > 0 {
		return list
	}
	return r.Patients.General
}

// Specializations returns the specializations that have their own diagnoses, sorted
func (r *ReferenceData) Specializations() []string {
	out := make([]string, 0, len(r.Patients.Diagnoses))
	for s := range r.Patients.Diagnoses {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// PatientName builds "Surname I.O." from a surname entry and two initials
func PatientName(s Surname, female bool, first, middle string) string {
	name := s.Male
	if female {
		name = s.Female
	}
	return fmt.Sprintf("%s %s.%s.", name, first, middle)
}
