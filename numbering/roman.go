package numbering

import (
	"strings"
)

// digit symbols for ones, fives and tens of each decimal position, from
// units up to thousands
var romanSymbols = [...][3]byte{
	{'I', 'V', 'X'},
	{'X', 'L', 'C'},
	{'C', 'D', 'M'},
	{'M', 0, 0},
}

// Roman converts positive number to upper case Roman numeral. Numbers
// outside of 1..3999 cannot be represented and produce empty string.
func Roman(n int) string {
	if n <= 0 || n >= 4000 {
		return ""
	}

	var digits []string
	for pos := 0; n > 0; pos, n = pos+1, n/10 {
		digits = append(digits, romanDigit(n%10, romanSymbols[pos]))
	}

	var b strings.Builder
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteString(digits[i])
	}
	return b.String()
}

func romanDigit(d int, sym [3]byte) string {
	one, five, ten := string(sym[0]), string(sym[1]), string(sym[2])
	switch {
	case d == 0:
		return ""
	case d <= 3:
		return strings.Repeat(one, d)
	case d == 4:
		return one + five
	case d <= 8:
		return five + strings.Repeat(one, d-5)
	default:
		return one + ten
	}
}
