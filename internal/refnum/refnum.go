package refnum

import (
	"fmt"
	"strings"
)

// ===============================
// Human-readable reference numbers
// ===============================
//
// Appointments and invoices share the same numbering scheme with
// different prefixes: "AP-2024-007" for a sequenced appointment,
// "INV-007" for an invoice, and an uppercase slice of the row id
// when no sequence number was assigned yet ("AP-A1B2C3").

// Format renders PREFIX-YEAR-NNN using the creation year.
func Format(prefix string, seq int, year int) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// FormatShort renders PREFIX-NNN (faturas não levam o ano).
func FormatShort(prefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// Fallback renders the first n hex chars of the raw id, uppercased,
// with dashes stripped.
func Fallback(prefix string, id string, n int) string {
	hexid := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if n > len(hexid) {
		n = len(hexid)
	}
	return prefix + "-" + hexid[:n]
}
