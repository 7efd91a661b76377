package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/repository"
)

type RescheduleOutcome int

const (
	RescheduleApplied RescheduleOutcome = iota
	RescheduleNotFound
	ReschedulePolicyViolated
)

func (o RescheduleOutcome) String() string {
	switch o {
	case RescheduleApplied:
		return "applied"
	case RescheduleNotFound:
		return "not_found"
	case ReschedulePolicyViolated:
		return "policy_violated"
	default:
		return "unknown"
	}
}

type RescheduleResult struct {
	Outcome RescheduleOutcome
	// Reason is set when Outcome is ReschedulePolicyViolated.
	Reason string
	Slot   *model.DeliverySlot
}

type ReschedulePolicy struct {
	MinLeadDays int
	WindowStart model.TimeOfDay
	WindowEnd   model.TimeOfDay
}

type CalendarService struct {
	slots  CalendarStore
	clock  Clock
	policy ReschedulePolicy
	log    zerolog.Logger
}

func NewCalendarService(slots CalendarStore, clock Clock, policy ReschedulePolicy, log zerolog.Logger) *CalendarService {
	return &CalendarService{slots: slots, clock: clock, policy: policy, log: log}
}

// ByContract returns the contract's slots in ascending date order.
func (s *CalendarService) ByContract(ctx context.Context, contractID uuid.UUID) ([]model.DeliverySlot, error) {
	return s.slots.ByContract(ctx, contractID)
}

// Reschedule changes the preferred time of a single slot. A missing slot and
// a lead-time breach are reported through the result, not as errors.
func (s *CalendarService) Reschedule(ctx context.Context, slotID uuid.UUID, newTime model.TimeOfDay) (RescheduleResult, error) {
	if err := s.validate(slotID, newTime); err != nil {
		return RescheduleResult{}, err
	}

	slot, err := s.slots.ByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return RescheduleResult{Outcome: RescheduleNotFound}, nil
		}
		return RescheduleResult{}, err
	}

	if err := CheckLeadTime(slot.Date, s.clock.Now(), s.policy.MinLeadDays); err != nil {
		return RescheduleResult{Outcome: ReschedulePolicyViolated, Reason: err.Error()}, nil
	}

	updated, err := s.slots.UpdateTime(ctx, slot.ID, slot.Version, newTime)
	if err != nil {
		return RescheduleResult{}, err
	}
	if !updated {
		return RescheduleResult{}, fmt.Errorf("%w: delivery slot %s changed concurrently", ErrConflict, slot.ID)
	}

	s.log.Info().
		Str("slot_id", slot.ID.String()).
		Str("contract_id", slot.ContractID.String()).
		Str("from", slot.PreferredTime.String()).
		Str("to", newTime.String()).
		Msg("delivery rescheduled")

	slot.PreferredTime = newTime
	slot.Version++
	return RescheduleResult{Outcome: RescheduleApplied, Slot: slot}, nil
}

func (s *CalendarService) validate(slotID uuid.UUID, newTime model.TimeOfDay) error {
	verr := &ValidationError{}
	if slotID == uuid.Nil {
		verr.Add("slot_id", "slot_id is required")
	}
	if newTime < s.policy.WindowStart || newTime > s.policy.WindowEnd {
		verr.Add("preferred_time", fmt.Sprintf("preferred_time must be between %s and %s", s.policy.WindowStart, s.policy.WindowEnd))
	}
	return verr.orNil()
}

// CheckLeadTime enforces that slotDate lies at least minLeadDays calendar days
// after the day of now. Past dates always fail.
func CheckLeadTime(slotDate, now time.Time, minLeadDays int) error {
	if model.DaysBetween(now, slotDate) < minLeadDays {
		return &PolicyViolationError{
			Reason: fmt.Sprintf("must be rescheduled at least %d days in advance", minLeadDays),
		}
	}
	return nil
}
