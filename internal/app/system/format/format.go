// Package format turns snapshot values into display strings.
//
// A Formatter is bound to one display locale. Numbers are grouped with
// golang.org/x/text/message, dates use a short day-month form, and
// relative times come from go-humanize.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Supported display locales.
const (
	LocaleEnglish = "en"
	LocaleThai    = "th"
)

var monthsShort = map[string][12]string{
	LocaleEnglish: {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	LocaleThai:    {"ม.ค.", "ก.พ.", "มี.ค.", "เม.ย.", "พ.ค.", "มิ.ย.", "ก.ค.", "ส.ค.", "ก.ย.", "ต.ค.", "พ.ย.", "ธ.ค."},
}

// IsSupportedLocale reports whether loc can be passed to New.
func IsSupportedLocale(loc string) bool {
	_, ok := monthsShort[strings.ToLower(strings.TrimSpace(loc))]
	return ok
}

// Formatter formats numbers and dates for one locale. It is safe for
// concurrent use.
type Formatter struct {
	locale  string
	printer *message.Printer
}

// New returns a Formatter for loc, falling back to English for unknown locales.
func New(loc string) *Formatter {
	loc = strings.ToLower(strings.TrimSpace(loc))
	if !IsSupportedLocale(loc) {
		loc = LocaleEnglish
	}
	return &Formatter{
		locale:  loc,
		printer: message.NewPrinter(language.Make(loc)),
	}
}

// Locale returns the locale the Formatter was built for.
func (f *Formatter) Locale() string {
	return f.locale
}

// Number groups thousands: 1234567 -> "1,234,567".
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Money rounds to whole units and groups thousands.
func (f *Formatter) Money(d decimal.Decimal) string {
	return f.printer.Sprintf("%d", d.Round(0).IntPart())
}

// Percent renders one decimal place with a percent sign: 40 -> "40.0%".
func (f *Formatter) Percent(p float64) string {
	return f.printer.Sprintf("%.1f%%", p)
}

// Days renders an average day count: 12.5 -> "12.5 days".
func (f *Formatter) Days(d float64) string {
	if f.locale == LocaleThai {
		return f.printer.Sprintf("%.1f วัน", d)
	}
	return f.printer.Sprintf("%.1f days", d)
}

// ShortDate turns "2006-01-02" into "2 Jan". Unparseable input is returned as is.
func (f *Formatter) ShortDate(iso string) string {
	t, err := time.Parse(time.DateOnly, iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%d %s", t.Day(), monthsShort[f.locale][t.Month()-1])
}

// LongDate renders a full date for detail pages.
func (f *Formatter) LongDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), monthsShort[f.locale][t.Month()-1], t.Year())
}

// Relative renders then relative to now, e.g. "3 minutes ago".
func (f *Formatter) Relative(then, now time.Time) string {
	if then.IsZero() {
		return ""
	}
	return humanize.RelTime(then, now, "ago", "from now")
}
