package maintenance

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders records for display in one locale. Costs are printed as
// localized currency amounts in the locale's regional currency; dates always
// use the day-first DisplayDateLayout regardless of locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a Formatter for a BCP 47 locale such as "en-US" or
// "pt-BR". Locales without a resolvable regional currency fall back to USD.
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse display locale %q: %w", locale, err)
	}
	unit := currency.USD
	if region, conf := tag.Region(); conf > language.No {
		if u, ok := currency.FromRegion(region); ok {
			unit = u
		}
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// DefaultFormatter renders in en-US, the fallback when no display locale is
// configured.
var DefaultFormatter = mustFormatter("en-US")

func mustFormatter(locale string) *Formatter {
	f, err := NewFormatter(locale)
	if err != nil {
		panic(err)
	}
	return f
}

// Format renders the record as one display line. Records that do not
// classify as valid for their status render as an "Invalid record" line
// listing every counted violation, so a bad record is visible instead of
// breaking the whole listing.
func (f *Formatter) Format(r Record) string {
	if errs := r.Violations(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return "Invalid record: " + strings.Join(msgs, "; ")
	}
	at, _ := r.ResolvedAt()
	date := at.Format(DisplayDateLayout)
	if r.Status == StatusScheduled {
		var b strings.Builder
		fmt.Fprintf(&b, "Scheduled: %s on %s", r.ServiceType, date)
		if r.TimeOfDay != "" {
			b.WriteString(" at " + r.TimeOfDay)
		}
		if r.Description != "" {
			fmt.Fprintf(&b, " (Note: %s)", r.Description)
		}
		return b.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "- %s on %s - %s", r.ServiceType, date, f.Cost(r.Cost))
	if r.Description != "" {
		fmt.Fprintf(&b, " (%s)", r.Description)
	}
	return b.String()
}

// Cost renders a cost amount as localized currency, or the "not informed"
// placeholder for a nil cost.
func (f *Formatter) Cost(v *float64) string {
	if v == nil {
		return "cost not informed"
	}
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(*v)))
}
