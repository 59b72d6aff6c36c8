package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/models"
	"github.com/smartinb/go-url-shortener/internal/service"
)

type UpdateHandler struct {
	service service.URLServiceIface
	baseURL string
	logger  *zap.Logger
}

func NewUpdate(s service.URLServiceIface, baseURL string, l *zap.Logger) *UpdateHandler {
	return &UpdateHandler{
		service: s,
		baseURL: baseURL,
		logger:  l,
	}
}

// ByID handles PUT and PATCH /url/{id}. An omitted url field leaves the
// stored value unchanged; the short key never changes. Success is 201,
// matching the API this service has always exposed.
func (h *UpdateHandler) ByID(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, err := parseID(chi.URLParam(req, "id"))
	if err != nil {
		writeJSON(res, h.logger, http.StatusNotFound, models.ErrorResponse{Status: false, Message: "URL not found"})
		return
	}

	var request models.URLRequest
	if err := decodeJSONBody(res, req, &request); err != nil && !errors.Is(err, errEmptyBody) {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeJSON(res, h.logger, mr.status, models.ErrorResponse{Status: false, Errors: []string{mr.msg}})
			return
		}
		h.logger.Error("cannot decode request body", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	record, err := h.service.Update(ctx, id, request.URL)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.DataResponse{
		Data:    models.NewRecordData(record, h.baseURL),
		Message: "URL updated successfully",
	})
}
