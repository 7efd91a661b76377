package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/nutri-contracts/internal/calendar"
	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/service"
)

const dateLayout = "2006-01-02"

type createContractRequest struct {
	PatientID    string  `json:"patient_id"`
	ServiceID    string  `json:"service_id"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	ChangePolicy string  `json:"change_policy"`
}

type createServiceRequest struct {
	Name             string  `json:"name"`
	DurationDays     int     `json:"duration_days"`
	ReviewCadence    string  `json:"review_cadence"`
	Cost             float64 `json:"cost"`
	IncludesWeekends bool    `json:"includes_weekends"`
}

type rescheduleRequest struct {
	PreferredTime string `json:"preferred_time" binding:"required"`
}

type contractResponse struct {
	ID           uuid.UUID  `json:"id"`
	PatientID    uuid.UUID  `json:"patient_id"`
	ServiceID    uuid.UUID  `json:"service_id"`
	ServiceName  string     `json:"service_name,omitempty"`
	StartDate    string     `json:"start_date"`
	EndDate      string     `json:"end_date"`
	Status       string     `json:"status"`
	TotalAmount  float64    `json:"total_amount"`
	ChangePolicy string     `json:"change_policy,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}

type slotResponse struct {
	ID               uuid.UUID `json:"id"`
	ContractID       uuid.UUID `json:"contract_id"`
	Date             string    `json:"date"`
	Weekday          string    `json:"weekday"`
	PreferredTime    string    `json:"preferred_time"`
	DeliveryAddress  string    `json:"delivery_address"`
	IsNonDeliveryDay bool      `json:"is_non_delivery_day"`
	Version          int       `json:"version"`
}

type serviceResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	DurationDays     int       `json:"duration_days"`
	ReviewCadence    string    `json:"review_cadence"`
	Cost             float64   `json:"cost"`
	IncludesWeekends bool      `json:"includes_weekends"`
}

type errorResponse struct {
	Error   string               `json:"error"`
	Details []service.FieldError `json:"details,omitempty"`
}

func toSummaryResponse(s service.ContractSummary) contractResponse {
	return contractResponse{
		ID:          s.ID,
		PatientID:   s.PatientID,
		ServiceID:   s.ServiceID,
		StartDate:   s.StartDate.Format(dateLayout),
		EndDate:     s.EndDate.Format(dateLayout),
		Status:      string(s.Status),
		TotalAmount: s.TotalAmount,
	}
}

func toContractResponses(views []service.ContractView) []contractResponse {
	out := make([]contractResponse, 0, len(views))
	for _, v := range views {
		resp := toSummaryResponse(v.ContractSummary)
		resp.ServiceName = v.ServiceName
		resp.ChangePolicy = v.ChangePolicy
		if !v.CreatedAt.IsZero() {
			createdAt := v.CreatedAt
			resp.CreatedAt = &createdAt
		}
		out = append(out, resp)
	}
	return out
}

func toSlotResponse(slot model.DeliverySlot) slotResponse {
	return slotResponse{
		ID:               slot.ID,
		ContractID:       slot.ContractID,
		Date:             slot.Date.Format(dateLayout),
		Weekday:          calendar.WeekdayName(slot.Date.Weekday()),
		PreferredTime:    slot.PreferredTime.String(),
		DeliveryAddress:  slot.DeliveryAddress,
		IsNonDeliveryDay: slot.IsNonDeliveryDay,
		Version:          slot.Version,
	}
}

func toSlotResponses(slots []model.DeliverySlot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, toSlotResponse(slot))
	}
	return out
}

func toServiceResponse(def model.ServiceDefinition) serviceResponse {
	return serviceResponse{
		ID:               def.ID,
		Name:             def.Name,
		DurationDays:     def.DurationDays,
		ReviewCadence:    def.ReviewCadence,
		Cost:             def.Cost,
		IncludesWeekends: def.IncludesWeekends,
	}
}
