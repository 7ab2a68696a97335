package normalizer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractPayee(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "UPI prefix with reference tail",
			input:    "UPI-AMAZON PAY-1234567890123456/XYZ",
			expected: "AMAZON PAY",
		},
		{
			name:     "NEFT prefix",
			input:    "NEFT-ACME CORP-SALARY MAR",
			expected: "ACME CORP",
		},
		{
			name:     "stacked prefixes strip in sequence",
			input:    "POS-CARD-BIG BAZAAR MUMBAI",
			expected: "BIG BAZAAR MUMBAI",
		},
		{
			name:     "slash separated",
			input:    "UPI/SWIGGY/920012345678/PAYMENT",
			expected: "SWIGGY",
		},
		{
			name:     "leading reference run is dropped",
			input:    "123456789012345 STARBUCKS COFFEE",
			expected: "STARBUCKS COFFEE",
		},
		{
			name:     "no prefix passes through",
			input:    "Swiggy Order",
			expected: "Swiggy Order",
		},
		{
			name:     "prefix word inside a name is kept",
			input:    "UPISTORE DELHI",
			expected: "UPISTORE DELHI",
		},
		{
			name:     "lowercase prefix",
			input:    "upi-zomato-order",
			expected: "zomato",
		},
		{
			name:     "empty narration",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPayee(tt.input))
		})
	}

	t.Run("long labels truncate", func(t *testing.T) {
		long := strings.Repeat("A", 80)
		got := ExtractPayee(long)
		assert.Len(t, got, 50)
		assert.Equal(t, strings.Repeat("A", 50), got)
	})

	t.Run("truncation never splits a multibyte rune", func(t *testing.T) {
		long := strings.Repeat("श्री", 40)
		got := ExtractPayee(long)
		assert.True(t, utf8.ValidString(got))
		assert.Equal(t, 50, utf8.RuneCountInString(got))
	})
}
