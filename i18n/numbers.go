package i18n

import (
	"errors"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNegativeAmount is returned for amounts below zero: the callers only
	// ever feed grand totals, so a negative input is a caller bug and gets an
	// explicit rejection instead of a malformed phrase.
	ErrNegativeAmount  = errors.New("i18n: negative amount has no word form")
	ErrAmountNotFinite = errors.New("i18n: amount is not finite")
	ErrAmountTooLarge  = errors.New("i18n: amount too large for word conversion")
)

// maxCardinal bounds the conversion to what the base-1000 grouping covers
// (millions, thousands, remainder).
const maxCardinal = 1_000_000_000

var (
	units = [10]string{"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf"}
	teens = [10]string{"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize", "dix-sept", "dix-huit", "dix-neuf"}
	tens  = [10]string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante", "soixante-dix", "quatre-vingt", "quatre-vingt-dix"}
)

// lessThanThousand converts 0 < n < 1000 to French words, handling the
// irregular tens (soixante-dix, quatre-vingts, quatre-vingt-dix), the
// "et un" juncture for tens 20 through 60, and cent(s) pluralization.
// Returns "" for 0 so callers can skip empty chunks.
func lessThanThousand(n int) string {
	if n == 0 {
		return ""
	}
	if n < 10 {
		return units[n]
	}
	if n < 20 {
		return teens[n-10]
	}
	if n < 100 {
		ten := n / 10
		unit := n % 10
		// 70-79 and 90-99 count from the previous ten: soixante + 10..19,
		// quatre-vingt + 10..19.
		if ten == 7 || ten == 9 {
			rem := n - (ten-1)*10
			if rem < 10 {
				return tens[ten-1] + "-" + units[rem]
			}
			return tens[ten-1] + "-" + teens[rem-10]
		}
		if ten == 8 {
			if unit == 0 {
				return "quatre-vingts" // exact multiple keeps the plural s
			}
			return "quatre-vingt-" + units[unit]
		}
		if unit == 0 {
			return tens[ten]
		}
		if unit == 1 {
			return tens[ten] + " et un"
		}
		return tens[ten] + "-" + units[unit]
	}

	hundred := n / 100
	rem := n % 100
	var result string
	if hundred == 1 {
		result = "cent"
	} else {
		result = units[hundred] + " cent"
		if rem == 0 {
			result += "s"
		}
	}
	if rem > 0 {
		result += " " + lessThanThousand(rem)
	}
	return result
}

// cardinal converts 0 <= n < maxCardinal in base-1000 chunks. "mille" is
// invariant; "million" pluralizes.
func cardinal(n int) string {
	if n == 0 {
		return "zéro"
	}
	million := n / 1_000_000
	thousand := (n % 1_000_000) / 1000
	rem := n % 1000

	var parts []string
	if million > 0 {
		if million == 1 {
			parts = append(parts, "un million")
		} else {
			parts = append(parts, lessThanThousand(million)+" millions")
		}
	}
	if thousand > 0 {
		if thousand == 1 {
			parts = append(parts, "mille")
		} else {
			parts = append(parts, lessThanThousand(thousand)+" mille")
		}
	}
	if rem > 0 {
		parts = append(parts, lessThanThousand(rem))
	}
	return strings.Join(parts, " ")
}

// Cardinal converts a non-negative integer below one billion into lowercase
// French words.
func Cardinal(n int) (string, error) {
	if n < 0 {
		return "", ErrNegativeAmount
	}
	if n >= maxCardinal {
		return "", ErrAmountTooLarge
	}
	return cardinal(n), nil
}

// AmountInWords converts a non-negative amount into French words, appending
// the two-digit fractional part after "virgule" when it is non-zero. The
// fraction is rounded half away from zero; a fraction rounding to 100 is
// carried into the integer part. Only the first rune of the result is
// upper-cased.
func AmountInWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", ErrAmountNotFinite
	}
	if amount < 0 {
		return "", ErrNegativeAmount
	}
	integer := int(math.Floor(amount))
	fraction := int(math.Round((amount - math.Floor(amount)) * 100))
	if fraction == 100 {
		integer++
		fraction = 0
	}
	if integer >= maxCardinal {
		return "", ErrAmountTooLarge
	}

	words := cardinal(integer)
	if fraction > 0 {
		words += " virgule " + cardinal(fraction)
	}
	return capitalize(words), nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
