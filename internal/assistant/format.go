package assistant

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders monetary amounts for the assistant's
// natural-language summaries.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter creates a formatter for the given ISO 4217 currency
// code. Unknown codes fall back to USD.
func NewFormatter(code string) *Formatter {
	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.USD
	}

	return &Formatter{
		printer: message.NewPrinter(language.English),
		unit:    unit,
	}
}

// Amount renders a decimal amount with its currency symbol, e.g.
// "$ 1,234.56".
func (f *Formatter) Amount(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return f.printer.Sprintf("%v", currency.Symbol(f.unit.Amount(value)))
}
