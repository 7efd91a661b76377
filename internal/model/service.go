package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxDurationDays bounds a plan to roughly ten years of deliveries.
const MaxDurationDays = 3660

// ServiceDefinition is a catalog plan. Contracts reference it by ServiceID and
// snapshot its cost at issuance.
type ServiceDefinition struct {
	ID               uuid.UUID
	Name             string
	DurationDays     int
	ReviewCadence    string
	Cost             float64
	IncludesWeekends bool
	CreatedAt        time.Time
}

// DurationInRange reports whether the plan can be turned into a calendar.
func (d ServiceDefinition) DurationInRange() bool {
	return d.DurationDays >= 0 && d.DurationDays <= MaxDurationDays
}
