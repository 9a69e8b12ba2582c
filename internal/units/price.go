package units

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "USD"

// FormatPrice renders cents of the given ISO currency with the locale's
// grouping, decimal separator and currency symbol. Unknown currency codes
// fall back to USD.
func FormatPrice(cents int64, loc Locale, code string) string {
	cur, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		cur = currency.USD
	}
	scale, _ := currency.Standard.Rounding(cur)

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	p := message.NewPrinter(loc.Tag())
	amount := p.Sprint(number.Decimal(float64(cents)/100, number.Scale(scale)))
	symbol := p.Sprint(currency.Symbol(cur))
	if s, ok := narrowSymbols[symbol]; ok {
		symbol = s
	}

	if loc == German {
		return sign + amount + "\u00a0" + symbol
	}
	return sign + symbol + amount
}

// zh symbols in the x/text tables are fullwidth; clients expect the narrow forms.
var narrowSymbols = map[string]string{
	"\uffe5": "\u00a5",
	"\uff04": "$",
}
