package dashboard

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const billionThreshold = 1000

var thousand = decimal.NewFromInt(1000)

// FormatCurrency renders a value expressed in millions as "$12.3M", switching
// to billions ("$1.9B") from 1000 upwards.
func FormatCurrency(valueMM float64) string {
	if !isFinite(valueMM) {
		return "$" + strconv.FormatFloat(valueMM, 'f', 1, 64) + "M"
	}
	if valueMM >= billionThreshold {
		return "$" + decimal.NewFromFloat(valueMM).Div(thousand).StringFixed(1) + "B"
	}
	return "$" + oneDecimal(valueMM) + "M"
}

// FormatMillions renders a value in millions without the billion switch.
func FormatMillions(valueMM float64) string {
	return "$" + oneDecimal(valueMM) + "M"
}

// FormatPercent renders a value with one decimal and a percent suffix.
func FormatPercent(v float64) string {
	return oneDecimal(v) + "%"
}

// FormatMultiple renders a valuation multiple, e.g. "1.4x".
func FormatMultiple(v float64) string {
	return oneDecimal(v) + "x"
}

// oneDecimal rounds half away from zero to one fractional digit.
func oneDecimal(v float64) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
