package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty", input: "", expected: ""},
		{name: "whitespace only", input: "   \t ", expected: ""},
		{name: "lowercases", input: "John Smith", expected: "john smith"},
		{name: "collapses internal runs", input: "John   Q.\tSmith", expected: "john q smith"},
		{name: "trims", input: "  John Smith  ", expected: "john smith"},
		{name: "strips suffix", input: "John Smith Jr", expected: "john smith"},
		{name: "strips suffix with period", input: "John Smith Jr.", expected: "john smith"},
		{name: "strips academic suffix", input: "Jane Doe PhD", expected: "jane doe"},
		{name: "removes periods", input: "J. Q. Smith", expected: "j q smith"},
		{name: "suffix only as final token", input: "Jr Smith", expected: "jr smith"},
		{name: "bare suffix word untouched", input: "Esq", expected: "esq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Parsed
	}{
		{name: "empty", input: "", expected: Parsed{}},
		{name: "single token", input: "Smith", expected: Parsed{First: "smith"}},
		{name: "first last", input: "John Smith", expected: Parsed{First: "john", Last: "smith"}},
		{
			name:     "middle name",
			input:    "John Quincy Smith",
			expected: Parsed{First: "john", Middle: "quincy", Last: "smith"},
		},
		{
			name:     "two middle names",
			input:    "John Quincy Adams Smith",
			expected: Parsed{First: "john", Middle: "quincy adams", Last: "smith"},
		},
		{
			// Normalize strips the final "III", leaving "Jr" as the last
			// token for the parser's suffix handling.
			name:     "stacked suffixes",
			input:    "John Smith Jr III",
			expected: Parsed{First: "john", Last: "smith", Suffix: "jr"},
		},
		{
			name:     "period fuses initial onto last name",
			input:    "J.Smith",
			expected: Parsed{First: "jsmith"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseName(tt.input))
		})
	}
}
