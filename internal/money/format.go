package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Símbolos dos códigos que as clínicas usam hoje; o ISO code é o fallback.
var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"EUR": "€",
	"GBP": "£",
	"BRL": "R$",
}

// FormatCurrency renders an amount for display ("$1,234.56").
// Never fails: unknown locales fall back to en-US, unknown currency
// codes render with the ISO code as prefix. Negative amounts keep a
// leading minus sign.
func FormatCurrency(amount decimal.Decimal, code string, locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}

	sym, ok := symbols[code]
	if !ok {
		if unit, err := currency.ParseISO(code); err == nil {
			sym = unit.String() + " "
		} else {
			sym = code + " "
		}
	}

	neg := amount.IsNegative()
	abs, _ := amount.Abs().Round(2).Float64()

	p := message.NewPrinter(tag)
	formatted := p.Sprint(number.Decimal(
		abs,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	if neg {
		return "-" + sym + formatted
	}
	return sym + formatted
}
