package subscriptions

import (
	"fmt"
	"time"
)

// DateLayout is the date-only layout used for caller-supplied validity dates.
const DateLayout = "2006-01-02"

// DefaultTermDays is the length of the default validity window the create
// form applies to a new subscription.
const DefaultTermDays = 14

// DefaultEndedAt returns the default end date for a subscription starting on
// the given date-only string: exactly DefaultTermDays calendar days later.
func DefaultEndedAt(createdAt string) (string, error) {
	start, err := time.ParseInLocation(DateLayout, createdAt, time.Local)
	if err != nil {
		return "", fmt.Errorf("parsing start date: %w", err)
	}
	return start.AddDate(0, 0, DefaultTermDays).Format(DateLayout), nil
}
