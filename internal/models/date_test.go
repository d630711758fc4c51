package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateScan(t *testing.T) {
	tests := []struct {
		name string
		src  interface{}
		want string
	}{
		{"time", time.Date(2024, 3, 5, 13, 45, 0, 0, time.FixedZone("MSK", 3*3600)), "2024-03-05"},
		{"text", "2024-03-10", "2024-03-10"},
		{"bytes", []byte("2024-03-15"), "2024-03-15"},
		{"timestamp text", "2024-03-20 00:00:00", "2024-03-20"},
		{"null", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tt.src); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if d.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, d.String())
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Error("Expected error scanning an int")
	}
	if err := d.Scan("March"); err == nil {
		t.Error("Expected error scanning unparseable text")
	}
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2024, time.March, 28).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v != "2024-03-28" {
		t.Errorf("Expected 2024-03-28, got %v", v)
	}

	v, err = Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("Expected NULL for zero date, got %v (%v)", v, err)
	}
}

func TestDateJSON(t *testing.T) {
	var donation Donation
	if err := json.Unmarshal([]byte(`{"id": 1, "amount": 42000, "donation_date": "2024-03-05"}`), &donation); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !donation.Date.Equal(NewDate(2024, time.March, 5).Time) {
		t.Errorf("Expected 2024-03-05, got %s", donation.Date)
	}
	if donation.Amount.ToCents() != 4200000 {
		t.Errorf("Expected amount in roubles, got %d cents", donation.Amount.ToCents())
	}

	b, err := json.Marshal(donation.Date)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `"2024-03-05"` {
		t.Errorf("Expected \"2024-03-05\", got %s", b)
	}

	if err := json.Unmarshal([]byte(`"05.03.2024"`), &donation.Date); err == nil {
		t.Error("Expected error for non ISO date")
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		last  string
	}{
		{2024, time.March, "2024-03-31"},
		{2024, time.February, "2024-02-29"},
		{2023, time.February, "2023-02-28"},
		{2024, time.April, "2024-04-30"},
		{2024, time.December, "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.last, func(t *testing.T) {
			first, last := MonthRange(tt.year, tt.month)
			if first.Day() != 1 || first.Month() != tt.month {
				t.Errorf("Expected first day of month, got %s", first)
			}
			if last.String() != tt.last {
				t.Errorf("Expected %s, got %s", tt.last, last)
			}
		})
	}
}

func TestDoctorSalary(t *testing.T) {
	d := Doctor{FirstName: "Ирина", LastName: "Белова", SalaryBase: 6800000, SalaryBonus: 1400000}
	if d.FullName() != "Ирина Белова" {
		t.Errorf("Unexpected full name %q", d.FullName())
	}
	if d.TotalSalary().ToCents() != 8200000 {
		t.Errorf("Expected 8200000, got %d", d.TotalSalary().ToCents())
	}
}
