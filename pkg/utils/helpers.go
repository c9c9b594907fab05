package utils

import (
	"strconv"
)

// FormatFloat renders a measure with two decimals for table and CSV output.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatInt renders an integer for table and CSV output.
func FormatInt(n int) string {
	return strconv.Itoa(n)
}

// FormatBool renders a flag column as "true"/"false".
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
