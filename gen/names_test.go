package gen

import "testing"

func TestGoName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"size", "Size"},
		{"more_ints", "MoreInts"},
		{"has-flag", "HasFlag"},
		{"user_id", "UserID"},
		{"id", "ID"},
		{"Filter", "Filter"},
		{"SubMessage", "SubMessage"},
		{"", ""},
	}

	for _, test := range tests {
		if got := GoName(test.in); got != test.expected {
			t.Errorf("GoName(%q): expected %q, got %q", test.in, test.expected, got)
		}
	}
}
