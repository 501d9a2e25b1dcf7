package validation

import (
	"errors"
	"testing"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("nomClient", "   ", v)
	Required("codeClient", "C1", v)
	if v["nomClient"] != "required" {
		t.Fatalf("expected required violation, got %v", v)
	}
	if _, ok := v["codeClient"]; ok {
		t.Fatalf("codeClient should be valid")
	}
}

func TestNumericAndInteger(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		numeric bool
		integer bool
	}{
		{"empty", "", true, true},
		{"int", "12", true, true},
		{"decimal", "12.50", true, false},
		{"comma decimal", "12,50", true, false},
		{"text", "douze", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Violations{}
			Numeric("n", tt.value, v)
			Integer("i", tt.value, v)
			if _, bad := v["n"]; bad == tt.numeric {
				t.Errorf("Numeric(%q) violations = %v", tt.value, v)
			}
			if _, bad := v["i"]; bad == tt.integer {
				t.Errorf("Integer(%q) violations = %v", tt.value, v)
			}
		})
	}
}

func TestDate(t *testing.T) {
	v := Violations{}
	Date("ok", "2024-02-29", v)
	Date("bad", "29/02/2024", v)
	if _, ok := v["ok"]; ok {
		t.Fatalf("valid date rejected")
	}
	if v["bad"] != "invalid_date" {
		t.Fatalf("expected invalid_date, got %q", v["bad"])
	}
}

func TestPositiveInt(t *testing.T) {
	v := Violations{}
	PositiveInt("zero", 0, v)
	PositiveInt("neg", -2, v)
	PositiveInt("one", 1, v)
	if len(v) != 2 || v["zero"] != "must_be_positive" {
		t.Fatalf("unexpected violations %v", v)
	}
}

func TestViolationsAsError(t *testing.T) {
	var err error = Violations{"b": "required", "a": "not_a_number"}
	var v Violations
	if !errors.As(err, &v) {
		t.Fatalf("expected errors.As to match Violations")
	}
	if got := err.Error(); got != "invalid fields: a: not_a_number, b: required" {
		t.Fatalf("unexpected message %q", got)
	}
}
