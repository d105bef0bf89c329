package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReceiptNumber(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "H-1740830400-7", receiptNumber(receiptPrefixHostel, at, 7))
	assert.Equal(t, "T-1740830400-42", receiptNumber(receiptPrefixTransport, at, 42))
}

func TestReceiptNumber_SameSecondCollides(t *testing.T) {
	at := time.Now()
	// Same student, same second: identical receipts. Documented behavior.
	assert.Equal(t,
		receiptNumber(receiptPrefixHostel, at, 3),
		receiptNumber(receiptPrefixHostel, at, 3))
}

func TestOrToday(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, orToday(fixed))
	assert.WithinDuration(t, time.Now(), orToday(time.Time{}), time.Second)
}
