package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
)

// Policy holds the values every freshly generated slot starts with.
type Policy struct {
	DefaultTime    model.TimeOfDay
	DefaultAddress string
}

type Generator struct {
	policy Policy
	newID  func() uuid.UUID
}

func NewGenerator(policy Policy) *Generator {
	return &Generator{policy: policy, newID: uuid.New}
}

// WithIDSource replaces the slot id source. Used by tests that need stable ids.
func (g *Generator) WithIDSource(newID func() uuid.UUID) *Generator {
	return &Generator{policy: g.policy, newID: newID}
}

// Generate returns one slot per delivery day in [start, start+DurationDays),
// skipping Saturdays and Sundays when the service excludes weekends.
// Slots come out in ascending date order; a zero duration yields an empty slice.
// Durations above model.MaxDurationDays are capped there.
func (g *Generator) Generate(contractID uuid.UUID, start time.Time, service model.ServiceDefinition) []model.DeliverySlot {
	days := boundedDays(service.DurationDays)
	if days == 0 {
		return []model.DeliverySlot{}
	}

	start = model.DateOnly(start)
	slots := make([]model.DeliverySlot, 0, days)
	for offset := 0; offset < days; offset++ {
		date := start.AddDate(0, 0, offset)
		if !service.IncludesWeekends && IsWeekend(date) {
			continue
		}
		slots = append(slots, model.DeliverySlot{
			ID:               g.newID(),
			ContractID:       contractID,
			Date:             date,
			PreferredTime:    g.policy.DefaultTime,
			DeliveryAddress:  g.policy.DefaultAddress,
			IsNonDeliveryDay: false,
		})
	}
	return slots
}

func IsWeekend(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// CountDeliveryDays returns how many slots Generate would emit.
func CountDeliveryDays(start time.Time, service model.ServiceDefinition) int {
	days := boundedDays(service.DurationDays)
	if service.IncludesWeekends {
		return days
	}
	start = model.DateOnly(start)
	count := 0
	for offset := 0; offset < days; offset++ {
		if !IsWeekend(start.AddDate(0, 0, offset)) {
			count++
		}
	}
	return count
}

func boundedDays(duration int) int {
	switch {
	case duration <= 0:
		return 0
	case duration > model.MaxDurationDays:
		return model.MaxDurationDays
	default:
		return duration
	}
}
