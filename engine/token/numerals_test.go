package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberAcceptsAllForms(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"digit", "14", 14},
		{"roman", "XIV", 14},
		{"cardinal words hyphenated", "fourteen", 14},
		{"ordinal words", "fourteenth", 14},
		{"ordinal digit", "14th", 14},
		{"compound tens", "twenty-one", 21},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := parseNumber(c.in, "-")
			assert.True(t, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseNumberRejectsOutOfRange(t *testing.T) {
	_, ok := parseNumber("41", "-")
	assert.False(t, ok)
}

func TestFormatNumberRoundTrip(t *testing.T) {
	for n := 1; n <= 40; n++ {
		roman, err := formatNumber(n, NumberRoman, "")
		assert.NoError(t, err)
		got, ok := romanToInt(roman)
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
}

func TestFormatNumberCardinalAndOrdinal(t *testing.T) {
	card, err := formatNumber(21, NumberCardinal, "-")
	assert.NoError(t, err)
	assert.Equal(t, "twenty-one", card)

	ord, err := formatNumber(21, NumberOrdinal, "-")
	assert.NoError(t, err)
	assert.Equal(t, "twenty-first", ord)
}
