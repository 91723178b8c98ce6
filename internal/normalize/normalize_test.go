package normalize

import (
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase and trim",
			input: "  Smith  ",
			want:  "smith",
		},
		{
			name:  "collapse internal whitespace",
			input: "123   Main\t Street",
			want:  "123 main street",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: "   \t  ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.input); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "street abbreviation",
			input: "123 Main Street",
			want:  "123 main st",
		},
		{
			name:  "direction abbreviation",
			input: "100 North Shore Ave",
			want:  "100 n shore ave",
		},
		{
			name:  "compound direction reduces stepwise",
			input: "456 Northeast Blvd",
			want:  "456 ne blvd",
		},
		{
			name:  "punctuation stripped and whitespace collapsed",
			input: "123 Main St.,  Apt #4",
			want:  "123 main st apt 4",
		},
		{
			name:  "multiline full address",
			input: "123 Main St\nSpringfield, IL 62704",
			want:  "123 main st springfield il 62704",
		},
		{
			// Replacement is substring-based, so direction words embedded
			// in longer tokens are rewritten too. Kept for score
			// compatibility with the original matcher.
			name:  "embedded direction word",
			input: "5 Eastman Rd",
			want:  "5 eman rd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.input); got != tt.want {
				t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFuzzyRatio(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "identical", a: "smith", b: "smith", want: 100},
		{name: "both empty", a: "", b: "", want: 100},
		{name: "one empty", a: "smith", b: "", want: 0},
		{name: "single substitution", a: "smith", b: "smyth", want: 80},
		{name: "long names close", a: "cunningham", b: "cunninghan", want: 90},
		{name: "unrelated", a: "smith", b: "jones", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuzzyRatio(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("FuzzyRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}

			if sym := FuzzyRatio(tt.b, tt.a); sym != got {
				t.Errorf("FuzzyRatio not symmetric: (%q, %q) = %d but (%q, %q) = %d",
					tt.a, tt.b, got, tt.b, tt.a, sym)
			}

			if got < 0 || got > 100 {
				t.Errorf("FuzzyRatio(%q, %q) = %d, outside [0, 100]", tt.a, tt.b, got)
			}
		})
	}
}

func TestIsLikelyCompany(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Acme Properties LLC", true},
		{"Harbor Island Trust", true},
		{"Oakwood Management", true},
		{"John Doe", false},
		{"", false},
		{"SUNSET PARTNERS", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsLikelyCompany(tt.input); got != tt.want {
				t.Errorf("IsLikelyCompany(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
