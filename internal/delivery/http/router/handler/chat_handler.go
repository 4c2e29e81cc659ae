package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"lifelink/internal/delivery/http/response"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ChatHandler holds dependencies for coordination chat handlers.
type ChatHandler struct {
	uc     usecase.ChatUsecase
	logger *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler, injected by Fx.
func NewChatHandler(uc usecase.ChatUsecase, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		uc:     uc,
		logger: logger,
	}
}

// History returns the room's persisted messages.
func (h *ChatHandler) History(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	messages, err := h.uc.History(c.Request().Context(), userID, requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, messages, "Historial obtenido")
}

type postMessageBody struct {
	Body string `json:"body"`
}

// Post publishes a message into the room.
func (h *ChatHandler) Post(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	var body postMessageBody
	if err := c.Bind(&body); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Mensaje inválido")
	}

	message, err := h.uc.Post(c.Request().Context(), usecase.PostMessageInput{
		RequestID: requestID,
		SenderID:  userID,
		Body:      body.Body,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, message, "Mensaje enviado")
}

// Stream relays the room's live messages over Server-Sent Events until the
// client disconnects.
func (h *ChatHandler) Stream(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de solicitud inválido")
	}

	ctx := c.Request().Context()
	stream, err := h.uc.Stream(ctx, userID, requestID)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	c.Response().Header().Set(echo.HeaderConnection, "keep-alive")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case message, open := <-stream:
			if !open {
				return nil
			}

			payload, err := json.Marshal(message)
			if err != nil {
				h.logger.Error("Failed to encode chat message", slog.Any("error", err))

				continue
			}

			if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", payload); err != nil {
				return nil
			}
			c.Response().Flush()
		}
	}
}
