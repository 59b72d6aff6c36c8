package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/models"
	"github.com/smartinb/go-url-shortener/internal/service"
)

type DeleteHandler struct {
	service service.URLServiceIface
	baseURL string
	logger  *zap.Logger
}

func NewDelete(s service.URLServiceIface, baseURL string, l *zap.Logger) *DeleteHandler {
	return &DeleteHandler{
		service: s,
		baseURL: baseURL,
		logger:  l,
	}
}

// ByID handles DELETE /url/{id}: soft-deletes the record and returns its
// pre-deletion projection. No data wrapper on this one; the body is the
// projection itself.
func (h *DeleteHandler) ByID(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	id, err := parseID(chi.URLParam(req, "id"))
	if err != nil {
		writeJSON(res, h.logger, http.StatusNotFound, models.ErrorResponse{Status: false, Message: "URL not found"})
		return
	}

	record, err := h.service.Delete(ctx, id)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.NewRecordData(record, h.baseURL))
}
