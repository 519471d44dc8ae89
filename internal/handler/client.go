package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jeycc/festival-booking/internal/model"
	"github.com/jeycc/festival-booking/internal/repository"
)

// ClientHandler exposes registration and plain CRUD for festival
// attendees. Uniqueness of email and phone is enforced by sequential
// existence checks before the insert, matching the shape of the checks
// used in the booking workflow.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

// NewClientHandler constructs a ClientHandler.
func NewClientHandler(clients *repository.ClientRepo) *ClientHandler {
	if clients == nil {
		panic("nil repository passed to NewClientHandler")
	}
	return &ClientHandler{Clients: clients}
}

type registerClientRequest struct {
	ClientID  string `json:"clientId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Register handles POST /app/clients/register.
func (h *ClientHandler) Register(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.FirstName == "" || req.LastName == "" || req.Phone == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "First name, last name, phone, and email are required."})
	}

	ctx := c.Request().Context()
	if req.ClientID != "" {
		exists, err := h.Clients.ExistsByID(ctx, req.ClientID)
		if err != nil {
			return internalError(c, err)
		}
		if exists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "A client with this ID already exists."})
		}
	}
	exists, err := h.Clients.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "This email is already in use."})
	}
	exists, err = h.Clients.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return internalError(c, err)
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"error": "This phone number is already in use."})
	}

	client := model.Client{
		ClientID:  req.ClientID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := h.Clients.Create(ctx, &client); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Client registered successfully!",
		"clientId": client.ClientID,
	})
}

// List handles GET /app/clients.
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, clients)
}

// Get handles GET /app/clients/:clientId.
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.Clients.GetByID(c.Request().Context(), c.Param("clientId"))
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found."})
		}
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, client)
}

// Update handles PUT /app/clients. The target client ID travels in the
// body, mirroring the delete endpoint.
func (h *ClientHandler) Update(c echo.Context) error {
	var req registerClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.ClientID == "" || req.FirstName == "" || req.LastName == "" || req.Phone == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Client ID, first name, last name, phone, and email are required."})
	}

	ctx := c.Request().Context()
	if _, err := h.Clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found."})
		}
		return internalError(c, err)
	}
	client := model.Client{
		ClientID:  req.ClientID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
	}
	if err := h.Clients.Update(ctx, &client); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Client updated successfully."})
}

// Delete handles DELETE /app/clients. The client ID travels in the
// body. Tickets referencing the client are removed in the same
// transaction.
func (h *ClientHandler) Delete(c echo.Context) error {
	var req struct {
		ClientID string `json:"clientId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body."})
	}
	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Client ID is required."})
	}

	ctx := c.Request().Context()
	if _, err := h.Clients.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Client not found."})
		}
		return internalError(c, err)
	}
	if err := h.Clients.Delete(ctx, req.ClientID); err != nil {
		return internalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Client and related tickets deleted successfully."})
}
