package handler

import (
	"log/slog"
	"net/http"

	"lifelink/internal/delivery/http/response"
	"lifelink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SupportHandler holds dependencies for support ticket handlers.
type SupportHandler struct {
	uc     usecase.SupportUsecase
	logger *slog.Logger
}

// NewSupportHandler is the constructor for SupportHandler, injected by Fx.
func NewSupportHandler(uc usecase.SupportUsecase, logger *slog.Logger) *SupportHandler {
	return &SupportHandler{
		uc:     uc,
		logger: logger,
	}
}

type submitTicketBody struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit files a support ticket for administrator review.
func (h *SupportHandler) Submit(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	var body submitTicketBody
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Datos de ticket inválidos")
	}

	ticket, err := h.uc.Submit(c.Request().Context(), usecase.SubmitTicketInput{
		UserID:  userID,
		Subject: body.Subject,
		Message: body.Message,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, ticket, "Ticket enviado exitosamente")
}

// List returns every filed ticket. Admin only.
func (h *SupportHandler) List(c echo.Context) error {
	tickets, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tickets, "Tickets obtenidos")
}
