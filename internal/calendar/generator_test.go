package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
)

var testPolicy = Policy{
	DefaultTime:    model.NewTimeOfDay(8, 0),
	DefaultAddress: "Dirección genérica",
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerate_WeekdaysOnly(t *testing.T) {
	contractID := uuid.New()
	svc := model.ServiceDefinition{DurationDays: 7, IncludesWeekends: false}

	slots := NewGenerator(testPolicy).Generate(contractID, date(2024, time.January, 1), svc)

	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		want := date(2024, time.January, 1+i)
		if !slot.Date.Equal(want) {
			t.Fatalf("slot %d: expected %s, got %s", i, want, slot.Date)
		}
		if slot.ContractID != contractID {
			t.Fatalf("slot %d: wrong contract id", i)
		}
		if slot.PreferredTime != model.NewTimeOfDay(8, 0) {
			t.Fatalf("slot %d: expected default time, got %s", i, slot.PreferredTime)
		}
		if slot.DeliveryAddress != "Dirección genérica" || slot.IsNonDeliveryDay {
			t.Fatalf("slot %d: unexpected defaults %+v", i, slot)
		}
	}
}

func TestGenerate_IncludesWeekends(t *testing.T) {
	svc := model.ServiceDefinition{DurationDays: 30, IncludesWeekends: true}
	start := date(2024, time.February, 15)

	slots := NewGenerator(testPolicy).Generate(uuid.New(), start, svc)

	if len(slots) != 30 {
		t.Fatalf("expected 30 slots, got %d", len(slots))
	}
	for i, slot := range slots {
		if want := start.AddDate(0, 0, i); !slot.Date.Equal(want) {
			t.Fatalf("slot %d: expected %s, got %s", i, want, slot.Date)
		}
	}
}

func TestGenerate_NoWeekendDatesAndCount(t *testing.T) {
	gen := NewGenerator(testPolicy)
	for _, duration := range []int{1, 2, 6, 13, 28, 45} {
		for startDay := 1; startDay <= 7; startDay++ {
			start := date(2024, time.April, startDay)
			svc := model.ServiceDefinition{DurationDays: duration}

			slots := gen.Generate(uuid.New(), start, svc)

			weekdays := 0
			for offset := 0; offset < duration; offset++ {
				if !IsWeekend(start.AddDate(0, 0, offset)) {
					weekdays++
				}
			}
			if len(slots) != weekdays {
				t.Fatalf("duration %d start %s: expected %d slots, got %d", duration, start, weekdays, len(slots))
			}
			if got := CountDeliveryDays(start, svc); got != weekdays {
				t.Fatalf("CountDeliveryDays: expected %d, got %d", weekdays, got)
			}
			seen := map[time.Time]bool{}
			for i, slot := range slots {
				if IsWeekend(slot.Date) {
					t.Fatalf("weekend date emitted: %s", slot.Date)
				}
				if seen[slot.Date] {
					t.Fatalf("duplicate date: %s", slot.Date)
				}
				seen[slot.Date] = true
				if i > 0 && !slot.Date.After(slots[i-1].Date) {
					t.Fatalf("dates not ascending at %d", i)
				}
				if slot.Date.Before(start) || !slot.Date.Before(start.AddDate(0, 0, duration)) {
					t.Fatalf("date %s outside range", slot.Date)
				}
			}
		}
	}
}

func TestGenerate_ZeroDuration(t *testing.T) {
	slots := NewGenerator(testPolicy).Generate(uuid.New(), date(2024, time.January, 1), model.ServiceDefinition{})
	if slots == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	next := 0
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	source := func() uuid.UUID {
		id := ids[next%len(ids)]
		next++
		return id
	}
	svc := model.ServiceDefinition{DurationDays: 3, IncludesWeekends: true}
	start := date(2024, time.May, 6)

	gen := NewGenerator(testPolicy).WithIDSource(source)
	first := gen.Generate(uuid.Nil, start, svc)
	second := gen.Generate(uuid.Nil, start, svc)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestGenerate_TruncatesStartTime(t *testing.T) {
	start := time.Date(2024, time.January, 5, 17, 30, 0, 0, time.UTC)
	svc := model.ServiceDefinition{DurationDays: 1, IncludesWeekends: true}

	slots := NewGenerator(testPolicy).Generate(uuid.New(), start, svc)

	if len(slots) != 1 || !slots[0].Date.Equal(date(2024, time.January, 5)) {
		t.Fatalf("unexpected slots %+v", slots)
	}
}

func TestGenerate_CapsOversizedDuration(t *testing.T) {
	start := date(2024, time.January, 1)
	for _, svc := range []model.ServiceDefinition{
		{DurationDays: math.MaxInt, IncludesWeekends: true},
		{DurationDays: model.MaxDurationDays + 500, IncludesWeekends: false},
	} {
		slots := NewGenerator(testPolicy).Generate(uuid.New(), start, svc)
		capped := svc
		capped.DurationDays = model.MaxDurationDays
		want := CountDeliveryDays(start, capped)
		if len(slots) != want {
			t.Fatalf("duration %d: got %d slots, want %d", svc.DurationDays, len(slots), want)
		}
		if got := CountDeliveryDays(start, svc); got != want {
			t.Fatalf("duration %d: CountDeliveryDays = %d, want %d", svc.DurationDays, got, want)
		}
		last := slots[len(slots)-1].Date
		if last.After(start.AddDate(0, 0, model.MaxDurationDays-1)) {
			t.Fatalf("duration %d: last slot %s past the cap", svc.DurationDays, last)
		}
	}
}
