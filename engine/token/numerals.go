package token

import (
	"fmt"
	"strconv"
	"strings"
)

// numeral styles only ever need to represent 1-40 (spec.md §4.2), which
// keeps the word tables and Roman numeral conversion small and exact
// rather than reaching for a general-purpose numeral library.

var romanDigits = []struct {
	value  int
	symbol string
}{
	{40, "XL"}, {10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func intToRoman(n int) string {
	var b strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			b.WriteString(d.symbol)
			n -= d.value
		}
	}
	return b.String()
}

func romanToInt(s string) (int, bool) {
	s = strings.ToUpper(s)
	values := map[byte]int{'I': 1, 'V': 5, 'X': 10, 'L': 50}
	total := 0
	for i := 0; i < len(s); i++ {
		v, ok := values[s[i]]
		if !ok {
			return 0, false
		}
		if i+1 < len(s) {
			if next, ok := values[s[i+1]]; ok && v < next {
				total -= v
				continue
			}
		}
		total += v
	}
	if total < 1 || total > 40 || intToRoman(total) != s {
		return 0, false
	}
	return total, true
}

var onesWords = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}

var tensWords = map[int]string{20: "twenty", 30: "thirty", 40: "forty"}

var onesOrdinalWords = []string{"", "first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth", "ninth",
	"tenth", "eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth", "sixteenth", "seventeenth", "eighteenth", "nineteenth"}

var tensOrdinalWords = map[int]string{20: "twentieth", 30: "thirtieth", 40: "fortieth"}

func intToCardinalWords(n int, spacing string) (string, bool) {
	if n < 1 || n > 40 {
		return "", false
	}
	if n < 20 {
		return onesWords[n], true
	}
	if n%10 == 0 {
		return tensWords[n], true
	}
	tens := (n / 10) * 10
	ones := n % 10
	return tensWords[tens] + spacing + onesWords[ones], true
}

func intToOrdinalWords(n int, spacing string) (string, bool) {
	if n < 1 || n > 40 {
		return "", false
	}
	if n < 20 {
		return onesOrdinalWords[n], true
	}
	if n%10 == 0 {
		return tensOrdinalWords[n], true
	}
	tens := (n / 10) * 10
	ones := n % 10
	return tensWords[tens] + spacing + onesOrdinalWords[ones], true
}

func wordsToInt(words, spacing string) (int, bool) {
	words = strings.ToLower(strings.TrimSpace(words))
	for n := 1; n <= 40; n++ {
		if w, ok := intToCardinalWords(n, spacing); ok && w == words {
			return n, true
		}
	}
	// tolerate a bare space even when spacing is configured otherwise
	for n := 1; n <= 40; n++ {
		if w, ok := intToCardinalWords(n, " "); ok && w == words {
			return n, true
		}
		if w, ok := intToCardinalWords(n, "-"); ok && w == words {
			return n, true
		}
	}
	return 0, false
}

func ordinalWordsToInt(words, spacing string) (int, bool) {
	words = strings.ToLower(strings.TrimSpace(words))
	for n := 1; n <= 40; n++ {
		for _, sp := range []string{spacing, " ", "-"} {
			if w, ok := intToOrdinalWords(n, sp); ok && w == words {
				return n, true
			}
		}
	}
	return 0, false
}

func ordinalDigitToInt(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			numPart, suffix := s[:i], s[i:]
			n, err := strconv.Atoi(numPart)
			if err != nil {
				return 0, false
			}
			if suffix != "st" && suffix != "nd" && suffix != "rd" && suffix != "th" {
				return 0, false
			}
			return n, true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseNumber accepts input in any of {digits, Roman I-XL, English cardinal
// words 1-40, English ordinal words, ordinal digits "1st"} and returns the
// integer value, per spec.md §4.2.
func parseNumber(input, spacing string) (int, bool) {
	trimmed := strings.TrimSpace(input)
	if n, err := strconv.Atoi(trimmed); err == nil {
		if n >= 1 && n <= 40 {
			return n, true
		}
		return n, false
	}
	if n, ok := ordinalDigitToInt(trimmed); ok {
		return n, n >= 1 && n <= 40
	}
	if n, ok := romanToInt(trimmed); ok {
		return n, true
	}
	if n, ok := wordsToInt(trimmed, spacing); ok {
		return n, true
	}
	if n, ok := ordinalWordsToInt(trimmed, spacing); ok {
		return n, true
	}
	return 0, false
}

func formatNumber(n int, style NumberStyle, spacing string) (string, error) {
	switch style {
	case NumberRoman:
		return intToRoman(n), nil
	case NumberDigit:
		return strconv.Itoa(n), nil
	case NumberCardinal:
		w, ok := intToCardinalWords(n, spacing)
		if !ok {
			return "", fmt.Errorf("value %d out of range 1-40", n)
		}
		return w, nil
	case NumberOrdinal:
		w, ok := intToOrdinalWords(n, spacing)
		if !ok {
			return "", fmt.Errorf("value %d out of range 1-40", n)
		}
		return w, nil
	default:
		return "", fmt.Errorf("unknown number style %d", style)
	}
}
