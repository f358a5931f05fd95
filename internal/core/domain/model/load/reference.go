package load

import (
	"fmt"
	"time"
)

// Reference numbers are the human-readable identity of a load, distinct from
// its opaque UUID. Format: LD-YYYY-MM-NNNNN, where YYYY-MM is the creation
// year and month and NNNNN a zero-padded counter assigned monotonically
// within that month.

const referenceNumberPrefix = "LD"

// FormatReferenceNumber renders the reference number for a creation month
// and counter, e.g. FormatReferenceNumber(2025, time.March, 1) returns
// "LD-2025-03-00001".
func FormatReferenceNumber(year int, month time.Month, counter int) string {
	return fmt.Sprintf("%s-%04d-%02d-%05d", referenceNumberPrefix, year, int(month), counter)
}

// ReferenceNumberPrefix renders the fixed month prefix, e.g. "LD-2025-03-".
// Repositories use it to scope counter lookups to a single month.
func ReferenceNumberPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%s-%04d-%02d-", referenceNumberPrefix, year, int(month))
}
