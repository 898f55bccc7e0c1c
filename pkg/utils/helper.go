package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

func ParseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// GenerateReceiptNumber builds a human readable receipt number from the booking id.
// Format: RCPT-YYYYMMDD-XXXXXXXX
func GenerateReceiptNumber(bookingID uuid.UUID, at time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(bookingID.String(), "-", "")[:8])
	return fmt.Sprintf("RCPT-%s-%s", at.Format("20060102"), short)
}
