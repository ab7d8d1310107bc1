package report

import (
	domainErrors "github.com/thomas-vilte/commitcost/internal/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	DefaultLocale   = "en"
	DefaultCurrency = "$"
)

// NumberFormat renders counts and costs with the grouping and decimal separators of a locale.
type NumberFormat struct {
	tag      language.Tag
	printer  *message.Printer
	currency string
}

// NewNumberFormat builds a format for a BCP 47 locale such as "en", "de" or "ru-RU".
func NewNumberFormat(locale, currency string) (NumberFormat, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return NumberFormat{}, domainErrors.ErrInvalidConfig.
			WithError(err).
			WithContext("number_locale", locale)
	}
	if currency == "" {
		return NumberFormat{}, domainErrors.ErrInvalidConfig.
			WithContext("currency", currency).
			WithSuggestion("Set a currency symbol, for example: $")
	}

	return NumberFormat{
		tag:      tag,
		printer:  message.NewPrinter(tag),
		currency: currency,
	}, nil
}

// DefaultNumberFormat groups with commas and uses a dot for decimals.
func DefaultNumberFormat() NumberFormat {
	f, _ := NewNumberFormat(DefaultLocale, DefaultCurrency)
	return f
}

// Int formats a count with thousands grouping.
func (f NumberFormat) Int(n int) string {
	return f.printer.Sprint(number.Decimal(n))
}

// Cost formats an amount with exactly two decimals followed by the currency symbol.
func (f NumberFormat) Cost(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(2))) + " " + f.currency
}

func (f NumberFormat) Locale() string {
	return f.tag.String()
}
