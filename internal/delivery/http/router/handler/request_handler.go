package handler

import (
	"log/slog"
	"net/http"

	"lifelink/internal/delivery/http/response"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RequestHandler holds dependencies for supply request handlers.
type RequestHandler struct {
	uc     usecase.RequestUsecase
	logger *slog.Logger
}

// NewRequestHandler is the constructor for RequestHandler, injected by Fx.
func NewRequestHandler(uc usecase.RequestUsecase, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		uc:     uc,
		logger: logger,
	}
}

type createRequestBody struct {
	ListingID string `json:"listingId"`
	Hospital  string `json:"hospital"`
}

// Create opens a supply request against a listing.
func (h *RequestHandler) Create(c echo.Context) error {
	requesterID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	var body createRequestBody
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de solicitud inválidos")
	}

	listingID, err := uuid.Parse(body.ListingID)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de publicación inválido")
	}

	request, err := h.uc.Create(c.Request().Context(), usecase.CreateRequestInput{
		RequesterID: requesterID,
		ListingID:   listingID,
		Hospital:    body.Hospital,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Solicitud creada exitosamente")
}

// ListSent returns the requests the caller has opened.
func (h *RequestHandler) ListSent(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requests, err := h.uc.ListSent(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Solicitudes enviadas obtenidas")
}

// ListReceived returns the requests received against the caller's listings.
func (h *RequestHandler) ListReceived(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requests, err := h.uc.ListReceived(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, requests, "Solicitudes recibidas obtenidas")
}

// Advance moves a request to its next coordination status.
func (h *RequestHandler) Advance(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	request, err := h.uc.Advance(c.Request().Context(), userID, requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, request, "Solicitud avanzada")
}

// HandoffQR renders the handoff confirmation QR code as a PNG.
func (h *RequestHandler) HandoffQR(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	png, err := h.uc.HandoffQR(c.Request().Context(), userID, requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
