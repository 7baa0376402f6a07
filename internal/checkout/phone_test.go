package checkout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPhoneNormalizes(t *testing.T) {
	cases := map[string]string{
		"08012345678":      "+234 801 234 5678",
		"0801 234 5678":    "+234 801 234 5678",
		"2348012345678":    "+234 801 234 5678",
		"+2348012345678":   "+234 801 234 5678",
		"801-234-5678":     "+234 801 234 5678",
		"(0)801 2345 678":  "+234 801 234 5678",
		"0801":             "+234 801",
		"":                 "",
	}
	for input, want := range cases {
		require.Equal(t, want, FormatPhone(input), "input %q", input)
	}
}

func TestFormatPhoneIdempotent(t *testing.T) {
	once := FormatPhone("08012345678")
	twice := FormatPhone(once)
	require.Equal(t, once, twice)
}

func TestFormatPhoneTruncatesExcessDigits(t *testing.T) {
	require.Equal(t, "+234 801 234 5678", FormatPhone("080123456789999"))
}
