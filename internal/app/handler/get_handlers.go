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

type GetHandler struct {
	service service.URLServiceIface
	baseURL string
	logger  *zap.Logger
}

func NewGet(s service.URLServiceIface, baseURL string, l *zap.Logger) *GetHandler {
	return &GetHandler{
		service: s,
		baseURL: baseURL,
		logger:  l,
	}
}

// List handles GET /url: filtered, ordered, paginated listing of active
// records.
func (h *GetHandler) List(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	q, err := parseListQuery(req)
	if err != nil {
		writeJSON(res, h.logger, http.StatusBadRequest, models.ErrorResponse{Status: false, Errors: []string{err.Error()}})
		return
	}

	result, err := h.service.List(ctx, q)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	data := make([]models.RecordData, 0, len(result.Items))
	for i := range result.Items {
		data = append(data, models.NewRecordData(&result.Items[i], h.baseURL))
	}

	writeJSON(res, h.logger, http.StatusOK, models.ListResponse{
		Data:        data,
		CurrentPage: q.Page,
		LastPage:    result.LastPage,
		Total:       result.Total,
	})
}

// ByKey handles GET /url/{url_key}: resolves a short key to its record.
// The projection deliberately omits short_url.
func (h *GetHandler) ByKey(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	shortKey := chi.URLParam(req, "urlKey")

	record, err := h.service.Resolve(ctx, shortKey)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusOK, models.DataResponse{Data: models.NewResolveData(record)})
}

// PingDB handles GET /ping: record store health.
func (h *GetHandler) PingDB(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 3*time.Second)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		http.Error(res, err.Error(), http.StatusInternalServerError)
		return
	}

	res.WriteHeader(http.StatusOK)
}
