package util

import "time"

// ParseMonthName parses a full English month name ("January".."December").
// Abbreviated and numeric forms are rejected.
func ParseMonthName(name string) (time.Month, error) {
	t, err := time.Parse("January", name)
	if err != nil {
		return 0, err
	}
	return t.Month(), nil
}

// CurrentYear returns the server's current calendar year
func CurrentYear() int {
	return time.Now().Year()
}
