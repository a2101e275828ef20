package order

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var exportHeader = []string{"id", "customer_name", "city", "phone", "items", "total", "date", "status"}

// CSVExporter writes the order list as a spreadsheet-friendly CSV file.
type CSVExporter struct {
	printer   *message.Printer
	currency  string
	separator string
}

func NewCSVExporter(locale language.Tag, currency string) *CSVExporter {
	printer := message.NewPrinter(locale)

	// locale decimal separator, taken from a rendered 1.5
	sample := []rune(printer.Sprint(number.Decimal(1.5)))
	separator := "."
	if len(sample) > 2 {
		separator = string(sample[1 : len(sample)-1])
	}

	return &CSVExporter{
		printer:   printer,
		currency:  currency,
		separator: separator,
	}
}

// FormatMoney renders an amount like "MAD 14,500" for the exporter locale,
// rounded to two fraction digits. Digits come from the decimal itself, so
// large totals are exported exactly.
func (e *CSVExporter) FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	whole := rounded.Truncate(0).BigInt()
	if !whole.IsInt64() {
		return e.currency + " " + sign + rounded.String()
	}

	formatted := e.printer.Sprint(number.Decimal(whole.Int64()))
	if _, frac, ok := strings.Cut(rounded.StringFixed(2), "."); ok {
		frac = strings.TrimRight(frac, "0")
		if frac != "" {
			digits, _ := strconv.Atoi(frac)
			formatted += e.separator + e.printer.Sprint(number.Decimal(digits,
				number.MinIntegerDigits(len(frac)),
				number.NoSeparator(),
			))
		}
	}

	return e.currency + " " + sign + formatted
}

func (e *CSVExporter) Write(w io.Writer, orders []Order) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("export: failed to write header: %w", err)
	}

	for _, o := range orders {
		record := []string{
			o.ID,
			o.CustomerName,
			o.City,
			o.Phone,
			strconv.Itoa(o.ItemCount()),
			e.FormatMoney(o.Total),
			o.Date,
			o.Status.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("export: failed to write order %s: %w", o.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: failed to flush: %w", err)
	}
	return nil
}
