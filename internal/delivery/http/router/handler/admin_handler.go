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

// AdminHandler holds dependencies for the administration panel handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// PendingListings returns the verification queue.
func (h *AdminHandler) PendingListings(c echo.Context) error {
	listings, err := h.uc.PendingListings(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "Publicaciones pendientes obtenidas")
}

type verifyListingBody struct {
	Approve bool `json:"approve"`
}

// VerifyListing applies the administrator's verdict on a pending listing.
func (h *AdminHandler) VerifyListing(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de publicación inválido")
	}

	var body verifyListingBody
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Veredicto inválido")
	}

	if err := h.uc.VerifyListing(c.Request().Context(), usecase.VerifyListingInput{
		ListingID: listingID,
		Approve:   body.Approve,
	}); err != nil {
		return errors.WithStack(err)
	}

	if body.Approve {
		return response.Success(c, http.StatusOK, nil, "Publicación aprobada")
	}

	return response.Success(c, http.StatusOK, nil, "Publicación rechazada")
}

// Stats returns the network activity summary.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "Estadísticas obtenidas")
}
