package validation

import "testing"

func TestTimeHHMMPattern(t *testing.T) {
	valid := []string{"00:00", "06:00", "12:30", "23:59"}
	for _, v := range valid {
		if !hhmmPattern.MatchString(v) {
			t.Errorf("%q should be a valid time", v)
		}
	}

	invalid := []string{"24:00", "6:00", "12:60", "noon", "12-30", ""}
	for _, v := range invalid {
		if hhmmPattern.MatchString(v) {
			t.Errorf("%q should not be a valid time", v)
		}
	}
}
