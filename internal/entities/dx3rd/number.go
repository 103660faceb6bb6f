package dx3rd

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseNumber is a sheet field that may be stored as a JSON number or as a
// string typed into a form. Int never fails: anything non-numeric reads as 0.
type LooseNumber string

// Num builds a LooseNumber from an int
func Num(n int) LooseNumber {
	return LooseNumber(strconv.Itoa(n))
}

// Int returns the value truncated toward zero, or 0 if it is not numeric
func (n LooseNumber) Int() int {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// UnmarshalJSON accepts numbers, strings and null
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*n = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = LooseNumber(s)
	default:
		*n = LooseNumber(data)
	}
	return nil
}

// MarshalJSON writes numeric values as numbers and anything else as a string
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(n))
	if _, err := strconv.ParseFloat(s, 64); err == nil && json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(string(n))
}
