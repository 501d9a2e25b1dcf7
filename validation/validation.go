package validation

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Violations maps a field name to a violation code (see i18n for texts).
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Fields returns the violated field names in sorted order.
func (v Violations) Fields() []string {
	out := make([]string, 0, len(v))
	for f := range v {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Error lets a non-empty Violations travel as an error value.
func (v Violations) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.Fields() {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid fields: " + strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func PositiveInt(field string, val int, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func RangeFloat(field string, val, minVal, maxVal float64, v Violations) {
	if val < minVal || val > maxVal {
		v[field] = "out_of_range"
	}
}

// Numeric flags a non-empty value that is not a decimal number.
// Empty values are left to Required.
func Numeric(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if s == "" {
		return
	}
	if _, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1)); err != nil {
		v[field] = "not_a_number"
	}
}

// Integer flags a non-empty value that is not a whole number.
func Integer(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if s == "" {
		return
	}
	if _, err := strconv.Atoi(s); err != nil {
		v[field] = "not_a_number"
	}
}

// Date flags a non-empty value that is not a YYYY-MM-DD date.
func Date(field, value string, v Violations) {
	s := strings.TrimSpace(value)
	if s == "" {
		return
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		v[field] = "invalid_date"
	}
}
