package search

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Ana", "ana"},
		{"removes spaces", "Ana Pop", "anapop"},
		{"strips romanian diacritics", "Ștefan Brânduș", "stefanbrandus"},
		{"strips german umlauts", "Jürgen Müller", "jurgenmuller"},
		{"hyphen kept", "Ana-Maria", "ana-maria"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNameKeys(t *testing.T) {
	key, reversed := NameKeys("Ana", "Pop")
	if key != "anapop" || reversed != "popana" {
		t.Errorf("Expected anapop/popana, got %s/%s", key, reversed)
	}

	key, reversed = NameKeys("Ștefan", "Brânduș")
	if key != "stefanbrandus" || reversed != "brandusstefan" {
		t.Errorf("Expected folded keys, got %s/%s", key, reversed)
	}
}

func TestNameKeys_MissingName(t *testing.T) {
	if key, reversed := NameKeys("", "Pop"); key != "" || reversed != "" {
		t.Errorf("Expected empty keys without a first name, got %s/%s", key, reversed)
	}
	if key, reversed := NameKeys("Ana", ""); key != "" || reversed != "" {
		t.Errorf("Expected empty keys without a last name, got %s/%s", key, reversed)
	}
}
