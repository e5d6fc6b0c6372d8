package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vendops/api/internal/database"
)

// DeliveryStore defines the database methods needed by delivery handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type DeliveryStore interface {
	ListDeliveries(ctx context.Context, arg database.ListDeliveriesParams) ([]database.Delivery, error)
	GetDelivery(ctx context.Context, id uuid.UUID) (database.Delivery, error)
	CreateDelivery(ctx context.Context, arg database.CreateDeliveryParams) (database.Delivery, error)
	UpdateDelivery(ctx context.Context, arg database.UpdateDeliveryParams) (database.Delivery, error)
	UpdateDeliveryStatus(ctx context.Context, arg database.UpdateDeliveryStatusParams) (database.Delivery, error)
	DeleteDelivery(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// DeliveryEvents is told about delivery status changes.
// Satisfied by *service.Notifier.
type DeliveryEvents interface {
	DeliveryStatusChanged(ctx context.Context, delivery database.Delivery)
}

// DeliveryHandler handles delivery CRUD and status tracking.
type DeliveryHandler struct {
	store  DeliveryStore
	events DeliveryEvents
	now    func() time.Time
}

// NewDeliveryHandler creates a new DeliveryHandler. events may be nil.
func NewDeliveryHandler(store DeliveryStore, events DeliveryEvents) *DeliveryHandler {
	return &DeliveryHandler{store: store, events: events, now: time.Now}
}

// RegisterRoutes registers delivery endpoints on the given Chi router.
// Expected to be mounted at /api/deliveries.
func (h *DeliveryHandler) RegisterRoutes(r chi.Router) {
	r.Use(adminOnly)
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/status", h.UpdateStatus)
}

// --- Request / Response types ---

type deliveryRequest struct {
	DeliveryNumber string                  `json:"delivery_number" validate:"required,max=50"`
	Status         string                  `json:"status" validate:"omitempty,oneof=pending in_transit delivered cancelled"`
	DeliveryDate   *dateTime               `json:"delivery_date"`
	Items          []database.DeliveryItem `json:"items" validate:"required,min=1,dive"`
	Notes          string                  `json:"notes"`
	DriverName     string                  `json:"driver_name" validate:"max=100"`
	TrackingInfo   *database.TrackingInfo  `json:"tracking_info"`
}

type deliveryStatusRequest struct {
	Status string `json:"status"`
}

type deliveryResponse struct {
	ID             uuid.UUID               `json:"id"`
	DeliveryNumber string                  `json:"delivery_number"`
	Status         string                  `json:"status"`
	DeliveryDate   *time.Time              `json:"delivery_date"`
	Items          []database.DeliveryItem `json:"items"`
	Notes          *string                 `json:"notes"`
	DriverName     *string                 `json:"driver_name"`
	TrackingInfo   *database.TrackingInfo  `json:"tracking_info"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

func toDeliveryResponse(d database.Delivery) deliveryResponse {
	items := d.Items
	if items == nil {
		items = []database.DeliveryItem{}
	}
	return deliveryResponse{
		ID:             d.ID,
		DeliveryNumber: d.DeliveryNumber,
		Status:         string(d.Status),
		DeliveryDate:   timePtr(d.DeliveryDate),
		Items:          items,
		Notes:          textPtr(d.Notes),
		DriverName:     textPtr(d.DriverName),
		TrackingInfo:   d.TrackingInfo,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// --- Handlers ---

// List returns deliveries newest first, optionally filtered by status.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)
	params := database.ListDeliveriesParams{Limit: limit, Offset: offset}

	if v := r.URL.Query().Get("status"); v != "" {
		status := database.DeliveryStatus(v)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		params.Status = database.NullDeliveryStatus{DeliveryStatus: status, Valid: true}
	}

	deliveries, err := h.store.ListDeliveries(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list deliveries", err)
		return
	}

	resp := make([]deliveryResponse, len(deliveries))
	for i, d := range deliveries {
		resp[i] = toDeliveryResponse(d)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single delivery.
func (h *DeliveryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "delivery")
	if !ok {
		return
	}

	delivery, err := h.store.GetDelivery(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		writeInternalError(w, "get delivery", err)
		return
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

// Create adds a delivery. Status defaults to pending.
func (h *DeliveryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req deliveryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	status := database.DeliveryStatus(req.Status)
	if status == "" {
		status = database.DeliveryStatusPending
	}

	delivery, err := h.store.CreateDelivery(r.Context(), database.CreateDeliveryParams{
		DeliveryNumber: strings.TrimSpace(req.DeliveryNumber),
		Status:         status,
		DeliveryDate:   toTimestamptz(req.DeliveryDate.ptr()),
		Items:          req.Items,
		Notes:          toText(req.Notes),
		DriverName:     toText(req.DriverName),
		TrackingInfo:   req.TrackingInfo,
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "delivery number already exists")
			return
		}
		writeInternalError(w, "create delivery", err)
		return
	}
	writeJSON(w, http.StatusCreated, toDeliveryResponse(delivery))
}

// Update replaces a delivery. An omitted status keeps the current one.
func (h *DeliveryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "delivery")
	if !ok {
		return
	}

	var req deliveryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, err := h.store.GetDelivery(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		writeInternalError(w, "get delivery", err)
		return
	}

	status := database.DeliveryStatus(req.Status)
	if status == "" {
		status = current.Status
	}

	delivery, err := h.store.UpdateDelivery(r.Context(), database.UpdateDeliveryParams{
		ID:             id,
		DeliveryNumber: strings.TrimSpace(req.DeliveryNumber),
		Status:         status,
		DeliveryDate:   toTimestamptz(req.DeliveryDate.ptr()),
		Items:          req.Items,
		Notes:          toText(req.Notes),
		DriverName:     toText(req.DriverName),
		TrackingInfo:   req.TrackingInfo,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		if isUniqueViolation(err) {
			writeError(w, http.StatusConflict, "delivery number already exists")
			return
		}
		writeInternalError(w, "update delivery", err)
		return
	}

	if delivery.Status != current.Status && h.events != nil {
		h.events.DeliveryStatusChanged(r.Context(), delivery)
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

// UpdateStatus sets the delivery status. Any status may follow any other.
// in_transit stamps tracking_info.started_at once; delivered stamps
// tracking_info.delivered_at and fills delivery_date if it is unset.
func (h *DeliveryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "delivery")
	if !ok {
		return
	}

	var req deliveryStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	status := database.DeliveryStatus(req.Status)
	if !status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	current, err := h.store.GetDelivery(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		writeInternalError(w, "get delivery", err)
		return
	}

	tracking := database.TrackingInfo{}
	if current.TrackingInfo != nil {
		tracking = *current.TrackingInfo
	}
	deliveryDate := current.DeliveryDate
	now := h.now().UTC()

	switch status {
	case database.DeliveryStatusInTransit:
		if tracking.StartedAt == nil {
			tracking.StartedAt = &now
		}
	case database.DeliveryStatusDelivered:
		tracking.DeliveredAt = &now
		if !deliveryDate.Valid {
			deliveryDate = toTimestamptz(&now)
		}
	}

	delivery, err := h.store.UpdateDeliveryStatus(r.Context(), database.UpdateDeliveryStatusParams{
		ID:           id,
		Status:       status,
		DeliveryDate: deliveryDate,
		TrackingInfo: &tracking,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		writeInternalError(w, "update delivery status", err)
		return
	}

	if h.events != nil {
		h.events.DeliveryStatusChanged(r.Context(), delivery)
	}
	writeJSON(w, http.StatusOK, toDeliveryResponse(delivery))
}

// Delete removes a delivery.
func (h *DeliveryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDParam(w, r, "delivery")
	if !ok {
		return
	}

	if _, err := h.store.DeleteDelivery(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusNotFound, "delivery not found")
			return
		}
		writeInternalError(w, "delete delivery", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "delivery deleted"})
}
