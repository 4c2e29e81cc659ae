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

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitReviewBody struct {
	Stars   int    `json:"stars"`
	Comment string `json:"comment"`
}

// Submit records the requester's rating of the provider for one request.
func (h *ReviewHandler) Submit(c echo.Context) error {
	reviewerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	var body submitReviewBody
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de reseña inválidos")
	}

	review, err := h.uc.Submit(c.Request().Context(), usecase.SubmitReviewInput{
		RequestID:  requestID,
		ReviewerID: reviewerID,
		Stars:      body.Stars,
		Comment:    body.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review, "Reseña registrada exitosamente")
}

// ProviderRating returns a provider's average rating.
func (h *ReviewHandler) ProviderRating(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de proveedor inválido")
	}

	rating, err := h.uc.ProviderRating(c.Request().Context(), providerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rating, "Calificación obtenida")
}

// ListForProvider returns the reviews written about a provider.
func (h *ReviewHandler) ListForProvider(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de proveedor inválido")
	}

	reviews, err := h.uc.ListForProvider(c.Request().Context(), providerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "Reseñas obtenidas")
}
