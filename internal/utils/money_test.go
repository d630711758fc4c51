package utils

import (
	"encoding/json"
	"testing"

	"github.com/juju/errors"
)

func TestMoneyCreation(t *testing.T) {
	t.Run("NewMoney", func(t *testing.T) {
		m := NewMoney(10, 50)
		if m.ToCents() != 1050 {
			t.Errorf("Expected 1050 cents, got %d", m.ToCents())
		}
	})

	t.Run("FromFloat", func(t *testing.T) {
		m := FromFloat(9100.50)
		if m.ToCents() != 910050 {
			t.Errorf("Expected 910050 cents, got %d", m.ToCents())
		}

		m = FromFloat(-5.75)
		if m.ToCents() != -575 {
			t.Errorf("Expected -575 cents, got %d", m.ToCents())
		}

		// 0.1 + 0.2 style binary noise must not leak into cents
		m = FromFloat(27800.75)
		if m.ToCents() != 2780075 {
			t.Errorf("Expected 2780075 cents, got %d", m.ToCents())
		}
	})
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"1250", 125000},
		{"1250.5", 125050},
		{"1250.55", 125055},
		{"1 250,50", 125050},
		{"  18750.25 ", 1875025},
		{".5", 50},
		{"7.", 700},
		{"-40", -4000},
		{"+3.10", 310},
		{"1_000", 100000},
		{"92233720368547758.07", 9223372036854775807},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseMoney(tt.input)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if m.ToCents() != tt.want {
				t.Errorf("Expected %d cents, got %d", tt.want, m.ToCents())
			}
		})
	}

	for _, bad := range []string{"", "   ", "abc", "12.345", "1.2.3", ".", "-",
		"200000000000000000", "92233720368547758.08", "-92233720368547758.08"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseMoney(bad)
			if !errors.Is(err, errors.NotValid) {
				t.Errorf("Expected not valid error, got %v", err)
			}
		})
	}
}

func TestMoneyFloat(t *testing.T) {
	m := NewMoney(123, 45)

	if m.Float64() != 123.45 {
		t.Errorf("Expected 123.45, got %v", m.Float64())
	}
}

func TestMoneyArithmetic(t *testing.T) {
	m1 := NewMoney(10, 50)
	m2 := NewMoney(5, 25)

	t.Run("Add", func(t *testing.T) {
		if got := m1.Add(m2).ToCents(); got != 1575 {
			t.Errorf("Expected 1575 cents, got %d", got)
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		if !m1.Add(-m1).IsZero() {
			t.Error("Expected a value minus itself to be zero")
		}
	})
}

func TestMoneySign(t *testing.T) {
	m1 := NewMoney(10, 0)
	if !m1.IsPositive() || Cents(-1).IsPositive() {
		t.Error("Expected IsPositive to follow the sign")
	}
}

func TestMoneyString(t *testing.T) {
	if got := NewMoney(1234, 56).String(); got != "1234.56" {
		t.Errorf("Expected '1234.56', got '%s'", got)
	}
	if got := Cents(-5075).String(); got != "-50.75" {
		t.Errorf("Expected '-50.75', got '%s'", got)
	}
}

func TestMoneySQL(t *testing.T) {
	v, err := NewMoney(15400, 0).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if v.(float64) != 15400.0 {
		t.Errorf("Expected 15400.0, got %v", v)
	}

	tests := []struct {
		name string
		src  interface{}
		want int64
	}{
		{"real", 18750.25, 1875025},
		{"integer", int64(42), 4200},
		{"text", "6400.00", 640000},
		{"bytes", []byte("13200.5"), 1320050},
		{"null", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Money
			if err := m.Scan(tt.src); err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			if m.ToCents() != tt.want {
				t.Errorf("Expected %d cents, got %d", tt.want, m.ToCents())
			}
		})
	}

	var m Money
	if err := m.Scan(true); err == nil {
		t.Error("Expected error scanning a bool")
	}
	if err := m.Scan("n/a"); err == nil {
		t.Error("Expected error scanning non-numeric text")
	}
}

func TestMoneyJSON(t *testing.T) {
	var doc struct {
		Amount Money `json:"amount"`
		Text   Money `json:"text"`
	}
	if err := json.Unmarshal([]byte(`{"amount": 9100.5, "text": "27800.75"}`), &doc); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if doc.Amount.ToCents() != 910050 {
		t.Errorf("Expected 910050, got %d", doc.Amount.ToCents())
	}
	if doc.Text.ToCents() != 2780075 {
		t.Errorf("Expected 2780075, got %d", doc.Text.ToCents())
	}

	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(b) != `{"amount":9100.50,"text":27800.75}` {
		t.Errorf("Unexpected JSON %s", b)
	}

	if err := json.Unmarshal([]byte(`{"amount": 1e3}`), &doc); err == nil {
		t.Error("Expected exponent notation to be refused")
	}
}
