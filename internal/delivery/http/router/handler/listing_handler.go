package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lifelink/internal/delivery/http/response"
	"lifelink/internal/domain/entity"
	"lifelink/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ListingHandler holds dependencies for listing-related handlers.
type ListingHandler struct {
	uc     usecase.ListingUsecase
	logger *slog.Logger
}

// NewListingHandler is the constructor for ListingHandler, injected by Fx.
func NewListingHandler(uc usecase.ListingUsecase, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		uc:     uc,
		logger: logger,
	}
}

// Publish handles the multipart publication form: text fields plus the
// optional listing image and prescription files.
func (h *ListingHandler) Publish(c echo.Context) error {
	providerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	input := usecase.PublishListingInput{
		ProviderID: providerID,
		Name:       c.FormValue("name"),
		Category:   entity.Category(c.FormValue("category")),
		Mode:       entity.PublishMode(c.FormValue("mode")),
		Address:    c.FormValue("address"),
	}

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Precio inválido")
		}
		input.Price = price
	}
	if v := c.FormValue("urgent"); v != "" {
		urgent, err := strconv.ParseBool(v)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Valor de urgencia inválido")
		}
		input.Urgent = urgent
	}
	if v := c.FormValue("expiresAt"); v != "" {
		expiresAt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			if expiresAt, err = time.Parse("2006-01-02", v); err != nil {
				return response.BadRequest(c, "INVALID_INPUT", "Fecha de caducidad inválida")
			}
		}
		input.ExpiresAt = &expiresAt
	}
	if v := c.FormValue("latitude"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Latitud inválida")
		}
		input.Latitude = lat
	}
	if v := c.FormValue("longitude"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Longitud inválida")
		}
		input.Longitude = lon
	}

	image, closeImage, err := openUpload(c, "image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Imagen inválida")
	}
	if closeImage != nil {
		defer closeImage()
	}
	input.Image = image

	prescription, closePrescription, err := openUpload(c, "prescription")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Receta inválida")
	}
	if closePrescription != nil {
		defer closePrescription()
	}
	input.Prescription = prescription

	output, err := h.uc.Publish(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"listing": output.Listing,
		"notes":   output.Notes,
	}, "Publicación creada exitosamente")
}

// openUpload extracts one optional multipart file field. A missing field is
// not an error; only an unreadable file is.
func openUpload(c echo.Context, field string) (*usecase.Upload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, err
	}

	return &usecase.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	}, func() { file.Close() }, nil
}

// Search handles the public catalog search.
func (h *ListingHandler) Search(c echo.Context) error {
	input := usecase.SearchListingsInput{
		Category: entity.Category(c.QueryParam("category")),
		Query:    c.QueryParam("q"),
	}

	if v := c.QueryParam("lat"); v != "" {
		lat, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Latitud inválida")
		}
		input.Latitude = &lat
	}
	if v := c.QueryParam("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Longitud inválida")
		}
		input.Longitude = &lon
	}

	results, err := h.uc.Search(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, results, "Búsqueda completada")
}

// Get returns one listing by ID.
func (h *ListingHandler) Get(c echo.Context) error {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de publicación inválido")
	}

	listing, err := h.uc.Get(c.Request().Context(), listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing, "Publicación obtenida")
}

// Mine returns the caller's own listings.
func (h *ListingHandler) Mine(c echo.Context) error {
	providerID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	listings, err := h.uc.ListByProvider(c.Request().Context(), providerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listings, "Publicaciones obtenidas")
}

// Delete removes a listing owned by the caller (or any listing for admins).
func (h *ListingHandler) Delete(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de publicación inválido")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, listingID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Publicación eliminada")
}

// Checkout returns the pre-request summary, including the blood
// compatibility advisory when it applies.
func (h *ListingHandler) Checkout(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Token inválido")
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Identificador de publicación inválido")
	}

	output, err := h.uc.Checkout(c.Request().Context(), userID, listingID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Resumen de solicitud obtenido")
}
