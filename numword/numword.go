// Package numword implements Marble's number literal spelling: nonnegative
// integers and terminating decimals written out as PascalCase English
// words, e.g. 123 as "OneHundredTwentyThree" and 3.14 as
// "ThreePointOneFour".
package numword

import (
	"math"
	"strings"
)

// largest is the biggest factor we spell out: 10^18, one Quintillion.
const largest uint64 = 1_000_000_000_000_000_000

// factorWords maps a power-of-1000 factor to its English suffix.
var factorWords = map[uint64]string{
	1:                         "",
	1_000:                     "Thousand",
	1_000_000:                 "Million",
	1_000_000_000:             "Billion",
	1_000_000_000_000:         "Trillion",
	1_000_000_000_000_000:     "Quadrillion",
	1_000_000_000_000_000_000: "Quintillion",
}

var onesWords = [...]string{
	"Zero", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = map[uint64]string{
	20: "Twenty", 30: "Thirty", 40: "Forty", 50: "Fifty",
	60: "Sixty", 70: "Seventy", 80: "Eighty", 90: "Ninety",
}

// appendTriplet writes the English spelling of triplet (0..999) to word.
func appendTriplet(word *strings.Builder, triplet uint64) {
	if triplet >= 100 {
		appendTriplet(word, triplet/100)
		word.WriteString("Hundred")

		triplet %= 100
		if triplet == 0 {
			return
		}
	}

	switch {
	case triplet < 20:
		word.WriteString(onesWords[triplet])
	case triplet < 100:
		tens := (triplet / 10) * 10
		word.WriteString(tensWords[tens])
		if ones := triplet % 10; ones != 0 {
			word.WriteString(onesWords[ones])
		}
	}
}

// DisplayNumber spells out a nonnegative integer in PascalCase English.
//
//	DisplayNumber(42) == "FortyTwo"
func DisplayNumber(number uint64) string {
	var word strings.Builder
	factor := largest

	for factor != 0 {
		triplet := number / factor

		// Skip empty triplets, except to let bare 0 print as "Zero".
		if triplet > 0 || (factor == 1 && word.Len() == 0) {
			appendTriplet(&word, triplet)
			word.WriteString(factorWords[factor])
		}

		number %= factor
		factor /= 1000
	}

	return word.String()
}

// DisplayFraction spells out a nonnegative real number as
// "⟨integer⟩Point⟨digits⟩", or just the integer part when the value has no
// fractional remainder. Fractional digits that round within 1e-4 of an
// integer snap to that integer, avoiding runaway binary-rational expansions
// like 1.33 -> "OnePointThreeThreeZeroZero...".
func DisplayFraction(number float64) string {
	number = math.Abs(number)

	whole := DisplayNumber(uint64(number))
	frac := number - math.Trunc(number)

	var digits strings.Builder
	for frac != 0 {
		frac *= 10
		if math.Abs(math.Round(frac)-frac) < 0.0001 {
			frac = math.Round(frac)
		}
		appendTriplet(&digits, uint64(frac))
		frac -= math.Trunc(frac)
	}

	if digits.Len() == 0 {
		return whole
	}
	return whole + "Point" + digits.String()
}
