package domain

import "testing"

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"medium", PriorityMedium, false},
		{"high", PriorityHigh, false},
		{"High", PriorityHigh, false},
		{"  LOW  ", PriorityLow, false},
		{"urgent", "", true},
	}

	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParsePriority(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriority(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
