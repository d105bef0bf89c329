package services

import (
	"fmt"
	"time"
)

// Receipt prefixes per payment kind.
const (
	receiptPrefixHostel    = "H"
	receiptPrefixTransport = "T"
)

// receiptNumber builds a payment receipt of the form <prefix>-<unix>-<studentID>.
// Two payments for the same student within the same second collide; receipts
// are identifiers, not uniqueness guarantees.
func receiptNumber(prefix string, at time.Time, studentID int64) string {
	return fmt.Sprintf("%s-%d-%d", prefix, at.Unix(), studentID)
}

// orToday substitutes today for the zero time.
func orToday(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
