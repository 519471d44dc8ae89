package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/repository"
)

// TransportHandler exposes CRUD for ground-transportation offers.
// These rows are a catalog for the frontend; tickets reference only
// the transport type string, never a transport_id.
type TransportHandler struct {
	Transports *repository.TransportRepo
}

// NewTransportHandler constructs a TransportHandler.
func NewTransportHandler(transports *repository.TransportRepo) *TransportHandler {
	if transports == nil {
		panic("nil repository passed to NewTransportHandler")
	}
	return &TransportHandler{Transports: transports}
}

type transportRequest struct {
	TransportID               string   `json:"transport_id"`
	TransportType             string   `json:"transport_type"`
	Name                      string   `json:"name"`
	Capacity                  int      `json:"capacity"`
	Availability              *bool    `json:"availability"`
	StudentInstitutionalPrice *float64 `json:"student_institutional_price"`
	GeneralPrice              *float64 `json:"general_price"`
	AgentName                 string   `json:"agent_name"`
}

func (r *transportRequest) missingRequired() bool {
	return r.TransportType == "" || r.Name == "" || r.Capacity <= 0 ||
		r.Availability == nil || r.StudentInstitutionalPrice == nil || r.GeneralPrice == nil
}

func (r *transportRequest) toModel() model.Transport {
	return model.Transport{
		TransportID:               r.TransportID,
		TransportType:             r.TransportType,
		Name:                      r.Name,
		Capacity:                  r.Capacity,
		Availability:              *r.Availability,
		StudentInstitutionalPrice: *r.StudentInstitutionalPrice,
		GeneralPrice:              *r.GeneralPrice,
		AgentName:                 r.AgentName,
	}
}

// Create handles POST /app/transports. An offer matching the same
// tuple of type, name, capacity, availability and prices is rejected
// as a duplicate.
func (h *TransportHandler) Create(c echo.Context) error {
	var req transportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.missingRequired() {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "transport_type, name, capacity, availability, student_institutional_price, and general_price are required.",
		})
	}

	ctx := c.Request().Context()
	transport := req.toModel()
	exists, err := h.Transports.ExistsMatching(ctx, &transport)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "A transport with the same name, type, capacity, availability, student_institutional_price, and general_price already exists.",
		})
	}
	if err := h.Transports.Create(ctx, &transport); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "Transport registered successfully",
		"transportId": transport.TransportID,
	})
}

// List handles GET /app/transports.
func (h *TransportHandler) List(c echo.Context) error {
	transports, err := h.Transports.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, transports)
}

// Get handles GET /app/transports/:transportId.
func (h *TransportHandler) Get(c echo.Context) error {
	transport, err := h.Transports.GetByID(c.Request().Context(), c.Param("transportId"))
	if err != nil {
		if errors.Is(err, repository.ErrTransportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Transport not found."})
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, transport)
}

// Update handles PUT /app/transports. The target transport ID travels
// in the body.
func (h *TransportHandler) Update(c echo.Context) error {
	var req transportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.TransportID == "" || req.missingRequired() {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "transport_id, name, transport_type, capacity, availability, student_institutional_price, and general_price are required",
		})
	}

	ctx := c.Request().Context()
	if _, err := h.Transports.GetByID(ctx, req.TransportID); err != nil {
		if errors.Is(err, repository.ErrTransportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Transport not found."})
		}
		return internalError(c, err)
	}
	transport := req.toModel()
	if err := h.Transports.Update(ctx, &transport); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Transport updated successfully."})
}

// Delete handles DELETE /app/transports/:transportId.
func (h *TransportHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	transportID := c.Param("transportId")
	if _, err := h.Transports.GetByID(ctx, transportID); err != nil {
		if errors.Is(err, repository.ErrTransportNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Transport not found."})
		}
		return internalError(c, err)
	}
	if err := h.Transports.Delete(ctx, transportID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Transport deleted successfully."})
}
