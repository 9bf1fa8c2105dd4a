package utils

import "testing"

func TestCheckEmailFormat(t *testing.T) {
	tests := []struct {
		email    string
		expected bool
	}{
		{"person@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"broken@", false},
		{"@example.com", false},
		{"person@example", false},
	}

	for _, test := range tests {
		if result := CheckEmailFormat(test.email); result != test.expected {
			t.Errorf("expected %t for %q, but got %t", test.expected, test.email, result)
		}
	}
}

func TestCheckPhoneFormat(t *testing.T) {
	tests := []struct {
		phone    string
		expected bool
	}{
		{"+31612345678", true},
		{"+31 6 1234 5678", true},
		{"0612345678", true},
		{"020 123-4567", true},
		{"(020) 123-4567", false}, // must start with a digit
		{"  +4915123456789  ", true},
		{"", false},
		{"12345", false},
		{"call me maybe", false},
		{"+31612345678x", false},
	}

	for _, test := range tests {
		if result := CheckPhoneFormat(test.phone); result != test.expected {
			t.Errorf("expected %t for %q, but got %t", test.expected, test.phone, result)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Person@Example.COM", "person@example.com"},
		{" person@example.com \n", "person@example.com"},
	}

	for _, test := range tests {
		if result := SanitizeEmail(test.input); result != test.expected {
			t.Errorf("expected %q for %q, but got %q", test.expected, test.input, result)
		}
	}
}

func TestBlurEmailAddress(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"person@example.com", "p****@example.com"},
		{"", "****@**"},
	}

	for _, test := range tests {
		if result := BlurEmailAddress(test.input); result != test.expected {
			t.Errorf("expected %q for %q, but got %q", test.expected, test.input, result)
		}
	}
}
