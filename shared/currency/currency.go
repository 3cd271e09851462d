package currency

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Format renders an amount in rupees with Indian digit grouping and the
// currency glyph, e.g. 350000 -> "₹3,50,000".
func Format(amount float64) string {
	return "₹" + Group(amount)
}

// Plain renders an amount with an ASCII currency marker for outputs that
// cannot carry the rupee glyph, e.g. core-font PDF text.
func Plain(amount float64) string {
	return "Rs. " + Group(amount)
}

// Group renders an amount with Indian digit grouping and no currency marker.
// Fractional paise are dropped; rents are whole-rupee figures.
func Group(amount float64) string {
	return printer.Sprintf("%v", number.Decimal(int64(math.Round(amount))))
}
