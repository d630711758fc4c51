package data

import (
	"testing"
)

func TestLoadReferenceData(t *testing.T) {
	data, err := Load()
	if err != nil {
		t.Fatalf("Failed to load reference data: %v", err)
	}

	t.Run("Seed sizes", func(t *testing.T) {
		seed := data.Seed
		counts := map[string]int{
			"departments":  len(seed.Departments),
			"sponsors":     len(seed.Sponsors),
			"wards":        len(seed.Wards),
			"doctors":      len(seed.Doctors),
			"donations":    len(seed.Donations),
			"examinations": len(seed.Examinations),
		}
		want := map[string]int{
			"departments": 4, "sponsors": 3, "wards": 6,
			"doctors": 6, "donations": 6, "examinations": 6,
		}
		for table, n := range want {
			if counts[table] != n {
				t.Errorf("Expected %d %s, got %d", n, table, counts[table])
			}
		}
	})

	t.Run("Doctor salaries", func(t *testing.T) {
		d := data.Seed.Doctors[1]
		if d.LastName != "Белова" {
			t.Fatalf("Expected Белова, got %s", d.LastName)
		}
		if d.TotalSalary().ToCents() != 8200000 {
			t.Errorf("Expected 82000.00 total, got %s", d.TotalSalary())
		}
		if !data.Seed.Doctors[2].OnVacation {
			t.Error("Expected Егоров to be on vacation")
		}
	})

	t.Run("Donation dates", func(t *testing.T) {
		d := data.Seed.Donations[5]
		if d.Date.String() != "2024-03-28" {
			t.Errorf("Expected 2024-03-28, got %s", d.Date)
		}
		if d.Amount.ToCents() != 8600000 {
			t.Errorf("Expected 86000.00, got %s", d.Amount)
		}
	})

	t.Run("References resolve", func(t *testing.T) {
		for _, w := range data.Seed.Wards {
			if _, ok := data.GetDepartment(w.DepartmentID); !ok {
				t.Errorf("Ward %s points to missing department %d", w.Name, w.DepartmentID)
			}
		}
		for _, d := range data.Seed.Doctors {
			if _, ok := data.GetDepartment(d.DepartmentID); !ok {
				t.Errorf("Doctor %s points to missing department %d", d.LastName, d.DepartmentID)
			}
		}
		if _, ok := data.GetDepartment(99); ok {
			t.Error("Expected department 99 to be missing")
		}
	})

	t.Run("Diagnoses", func(t *testing.T) {
		for _, d := range data.Seed.Doctors {
			if len(data.GetDiagnoses(d.Specialization)) == 0 {
				t.Errorf("Expected diagnoses for %s", d.Specialization)
			}
		}
		general := data.GetDiagnoses("Кардиолог")
		if len(general) == 0 || general[0] != data.Patients.General[0] {
			t.Errorf("Expected general fallback, got %v", general)
		}
		specs := data.Specializations()
		if len(specs) != 4 {
			t.Errorf("Expected 4 specializations, got %v", specs)
		}
	})

	t.Run("Pools", func(t *testing.T) {
		if len(data.Patients.Surnames) < 10 {
			t.Errorf("Expected at least 10 surnames, got %d", len(data.Patients.Surnames))
		}
		if len(data.Patients.Initials) == 0 {
			t.Error("Expected initials")
		}
	})
}

func TestLoadIsCached(t *testing.T) {
	a, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Load()
	if a != b {
		t.Error("Expected Load to return the same instance")
	}
}

func TestPatientName(t *testing.T) {
	s := Surname{Male: "Громов", Female: "Громова"}
	if got := PatientName(s, false, "И", "С"); got != "Громов И.С." {
		t.Errorf("Expected 'Громов И.С.', got %q", got)
	}
	if got := PatientName(s, true, "Н", "А"); got != "Громова Н.А." {
		t.Errorf("Expected 'Громова Н.А.', got %q", got)
	}
}
