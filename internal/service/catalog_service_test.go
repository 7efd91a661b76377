package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/model"
)

func TestCatalogCreateValidation(t *testing.T) {
	db := newMemDB()
	cs := NewCatalogService(fakeCatalog{db})

	_, err := cs.Create(context.Background(), CreateServiceRequest{Name: "  ", DurationDays: 0, Cost: -5})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	want := []string{"name", "duration_days", "review_cadence", "cost"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("fields = %+v", verr.Fields)
	}
	for i, f := range want {
		if verr.Fields[i].Field != f {
			t.Errorf("field %d = %s, want %s", i, verr.Fields[i].Field, f)
		}
	}
	if len(db.services) != 0 {
		t.Fatal("invalid service persisted")
	}
}

func TestCatalogCreateAndGet(t *testing.T) {
	db := newMemDB()
	cs := NewCatalogService(fakeCatalog{db})

	created, err := cs.Create(context.Background(), CreateServiceRequest{
		Name:          " Plan mensual ",
		DurationDays:  30,
		ReviewCadence: "semanal",
		Cost:          1200,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == uuid.Nil || created.Name != "Plan mensual" {
		t.Fatalf("created = %+v", created)
	}

	got, err := cs.Get(context.Background(), created.ID)
	if err != nil || got.Cost != 1200 {
		t.Fatalf("get = %+v err = %v", got, err)
	}

	_, err = cs.Get(context.Background(), uuid.New())
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "service" {
		t.Fatalf("err = %v, want service NotFoundError", err)
	}

	defs, err := cs.List(context.Background())
	if err != nil || len(defs) != 1 {
		t.Fatalf("list = %+v err = %v", defs, err)
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	nf := &NotFoundError{Entity: "contract", ID: "abc"}
	if nf.Error() != "contract abc not found" || !errors.Is(nf, ErrNotFound) {
		t.Fatalf("NotFoundError = %q", nf.Error())
	}
	pv := &PolicyViolationError{Reason: "too late"}
	if !errors.Is(pv, ErrPolicyViolation) || errors.Is(pv, ErrInvalidInput) {
		t.Fatal("PolicyViolationError sentinel mismatch")
	}
	if (&ValidationError{}).orNil() != nil {
		t.Fatal("empty ValidationError must collapse to nil")
	}
}

func TestCatalogCreateRejectsOversizedDuration(t *testing.T) {
	db := newMemDB()
	cs := NewCatalogService(fakeCatalog{db})

	for _, duration := range []int{model.MaxDurationDays + 1, math.MaxInt} {
		_, err := cs.Create(context.Background(), CreateServiceRequest{
			Name:          "Plan",
			DurationDays:  duration,
			ReviewCadence: "semanal",
			Cost:          100,
		})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("duration %d: err = %v, want ValidationError", duration, err)
		}
		if len(verr.Fields) != 1 || verr.Fields[0].Message != "duration_days must not exceed 3660" {
			t.Fatalf("duration %d: fields = %+v", duration, verr.Fields)
		}
	}
	if len(db.services) != 0 {
		t.Fatal("oversized service persisted")
	}

	if _, err := cs.Create(context.Background(), CreateServiceRequest{
		Name:          "Plan",
		DurationDays:  model.MaxDurationDays,
		ReviewCadence: "semanal",
		Cost:          100,
	}); err != nil {
		t.Fatalf("upper bound rejected: %v", err)
	}
}
