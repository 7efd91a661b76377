package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/nutri-contracts/internal/excel"
	"github.com/nurpe/nutri-contracts/internal/model"
	"github.com/nurpe/nutri-contracts/internal/pdf"
	"github.com/nurpe/nutri-contracts/internal/service"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type ContractUseCases interface {
	Issue(ctx context.Context, req service.CreateContractRequest) (*service.ContractSummary, error)
	ListAll(ctx context.Context) ([]service.ContractView, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]service.ContractView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	ExistsActiveFor(ctx context.Context, patientID uuid.UUID) (bool, error)
	Document(ctx context.Context, id uuid.UUID) (*model.ContractDocument, error)
}

type CalendarUseCases interface {
	ByContract(ctx context.Context, contractID uuid.UUID) ([]model.DeliverySlot, error)
	Reschedule(ctx context.Context, slotID uuid.UUID, newTime model.TimeOfDay) (service.RescheduleResult, error)
}

type CatalogUseCases interface {
	Create(ctx context.Context, req service.CreateServiceRequest) (*model.ServiceDefinition, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ServiceDefinition, error)
	List(ctx context.Context) ([]model.ServiceDefinition, error)
}

// DocumentRenderer turns a contract with its calendar into a downloadable file.
type DocumentRenderer interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type Handler struct {
	contracts   ContractUseCases
	calendar    CalendarUseCases
	catalog     CatalogUseCases
	spreadsheet DocumentRenderer
	sheet       DocumentRenderer
	log         zerolog.Logger
}

func NewHandler(
	contracts ContractUseCases,
	calendar CalendarUseCases,
	catalog CatalogUseCases,
	spreadsheet DocumentRenderer,
	sheet DocumentRenderer,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		contracts:   contracts,
		calendar:    calendar,
		catalog:     catalog,
		spreadsheet: spreadsheet,
		sheet:       sheet,
		log:         log,
	}
}

func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.health)

	router.GET("/services", h.listServices)
	router.GET("/services/:id", h.getService)
	router.POST("/services", h.createService)

	// gin requires one wildcard name per segment, so :id is the patient id on
	// the plain GET and the contract id on the nested routes.
	router.POST("/contracts", h.issueContract)
	router.GET("/contracts", h.listContracts)
	router.GET("/contracts/:id", h.listPatientContracts)
	router.POST("/contracts/:id/cancel", h.cancelContract)
	router.GET("/contracts/:id/document", h.contractDocument)

	router.GET("/patients/:patientId/active-contract", h.activeContract)

	router.GET("/calendars/:id", h.contractCalendar)
	router.GET("/calendars/:id/export", h.exportCalendar)
	router.PATCH("/calendars/:id", h.rescheduleSlot)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listServices(c *gin.Context) {
	defs, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]serviceResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, toServiceResponse(def))
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getService(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	def, err := h.catalog.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toServiceResponse(*def))
}

func (h *Handler) createService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	def, err := h.catalog.Create(c.Request.Context(), service.CreateServiceRequest{
		Name:             req.Name,
		DurationDays:     req.DurationDays,
		ReviewCadence:    req.ReviewCadence,
		Cost:             req.Cost,
		IncludesWeekends: req.IncludesWeekends,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toServiceResponse(*def))
}

func (h *Handler) issueContract(c *gin.Context) {
	var req createContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	input, err := req.toServiceRequest()
	if err != nil {
		h.handleError(c, err)
		return
	}

	summary, err := h.contracts.Issue(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSummaryResponse(*summary))
}

// toServiceRequest parses identifiers and dates. Blank values pass through as
// zero values and are reported by the service's own validation.
func (r createContractRequest) toServiceRequest() (service.CreateContractRequest, error) {
	verr := &service.ValidationError{}
	out := service.CreateContractRequest{ChangePolicy: r.ChangePolicy}

	var err error
	if out.PatientID, err = parseOptionalUUID(r.PatientID); err != nil {
		verr.Add("patient_id", "patient_id must be a valid UUID")
	}
	if out.ServiceID, err = parseOptionalUUID(r.ServiceID); err != nil {
		verr.Add("service_id", "service_id must be a valid UUID")
	}
	if strings.TrimSpace(r.StartDate) != "" {
		if out.StartDate, err = parseDate(r.StartDate); err != nil {
			verr.Add("start_date", "start_date must be a date (YYYY-MM-DD)")
		}
	}
	if r.EndDate != nil && strings.TrimSpace(*r.EndDate) != "" {
		end, err := parseDate(*r.EndDate)
		if err != nil {
			verr.Add("end_date", "end_date must be a date (YYYY-MM-DD)")
		} else {
			out.EndDate = &end
		}
	}

	if len(verr.Fields) > 0 {
		return out, verr
	}
	return out, nil
}

func (h *Handler) listContracts(c *gin.Context) {
	views, err := h.contracts.ListAll(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponses(views))
}

func (h *Handler) listPatientContracts(c *gin.Context) {
	patientID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	views, err := h.contracts.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toContractResponses(views))
}

func (h *Handler) cancelContract(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.contracts.Cancel(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) activeContract(c *gin.Context) {
	patientID, ok := h.pathUUID(c, "patientId")
	if !ok {
		return
	}
	active, err := h.contracts.ExistsActiveFor(c.Request.Context(), patientID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

func (h *Handler) contractCalendar(c *gin.Context) {
	contractID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	slots, err := h.calendar.ByContract(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if len(slots) == 0 {
		c.JSON(http.StatusNotFound, errorResponse{Error: "no calendar found for contract"})
		return
	}
	c.JSON(http.StatusOK, toSlotResponses(slots))
}

func (h *Handler) rescheduleSlot(c *gin.Context) {
	slotID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	newTime, err := model.ParseTimeOfDay(req.PreferredTime)
	if err != nil {
		verr := &service.ValidationError{}
		verr.Add("preferred_time", "preferred_time must be a valid HH:MM time")
		h.handleError(c, verr)
		return
	}

	result, err := h.calendar.Reschedule(c.Request.Context(), slotID, newTime)
	if err != nil {
		h.handleError(c, err)
		return
	}

	switch result.Outcome {
	case service.RescheduleApplied:
		c.JSON(http.StatusOK, toSlotResponse(*result.Slot))
	case service.RescheduleNotFound:
		c.JSON(http.StatusNotFound, errorResponse{Error: "delivery slot not found"})
	case service.ReschedulePolicyViolated:
		c.JSON(http.StatusBadRequest, errorResponse{Error: result.Reason})
	default:
		h.handleError(c, errors.New("unexpected reschedule outcome "+result.Outcome.String()))
	}
}

func (h *Handler) exportCalendar(c *gin.Context) {
	contractID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.contracts.Document(c.Request.Context(), contractID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.spreadsheet.Generate(*doc)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+excel.FileName(*doc)+"\"")
	c.Data(http.StatusOK, contentTypeXLSX, content)
}

func (h *Handler) contractDocument(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	doc, err := h.contracts.Document(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.sheet.Generate(*doc)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+pdf.FileName(*doc)+"\"")
	c.Data(http.StatusOK, contentTypePDF, content)
}

func (h *Handler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "validation failed", Details: verr.Fields})
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrPolicyViolation):
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func parseOptionalUUID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		dateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return model.DateOnly(parsed), nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
