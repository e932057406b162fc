package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney renders an amount in the given currency: KRW with the won sign
// and no decimals, USD/AUD with two decimals. Negative amounts keep their
// sign in front of the symbol, e.g. "-$12.50".
func FormatMoney(amount float64, c Currency) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	switch c {
	case CurrencyUSD:
		return fmt.Sprintf("%s$%s", sign, groupThousands(amount, 2))
	case CurrencyAUD:
		return fmt.Sprintf("%sA$%s", sign, groupThousands(amount, 2))
	default:
		return fmt.Sprintf("%s₩%s", sign, groupThousands(math.Round(amount), 0))
	}
}

// groupThousands formats a non-negative amount with comma separators and the
// given number of decimal places.
func groupThousands(amount float64, decimals int) string {
	s := strconv.FormatFloat(amount, 'f', decimals, 64)

	intPart := s
	fracPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart, fracPart = s[:idx], s[idx:]
	}

	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	return intPart + fracPart
}
