package model

import (
	"time"

	"github.com/google/uuid"
)

type DeliverySlot struct {
	ID               uuid.UUID
	ContractID       uuid.UUID
	Date             time.Time
	PreferredTime    TimeOfDay
	DeliveryAddress  string
	IsNonDeliveryDay bool
	Version          int
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b; negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
