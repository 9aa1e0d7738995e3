package domain

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{"ann@x.com", "first.last@example.co", "a_b-c@mail.example.com"}
	for _, e := range valid {
		if !ValidEmail(e) {
			t.Errorf("expected %q to be valid", e)
		}
	}

	invalid := []string{"", "plain", "@x.com", "ann@", "ann@x", "ann @x.com"}
	for _, e := range invalid {
		if ValidEmail(e) {
			t.Errorf("expected %q to be invalid", e)
		}
	}
}
