package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/models"
	"github.com/smartinb/go-url-shortener/internal/service"
)

type PostHandler struct {
	service service.URLServiceIface
	baseURL string
	logger  *zap.Logger
}

func NewPost(s service.URLServiceIface, baseURL string, l *zap.Logger) *PostHandler {
	return &PostHandler{
		service: s,
		baseURL: baseURL,
		logger:  l,
	}
}

// Create handles POST /url: validates the submitted URL and allocates a
// record under a fresh short key.
func (h *PostHandler) Create(res http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
	defer cancel()

	var request models.URLRequest
	if err := decodeJSONBody(res, req, &request); err != nil {
		var mr *malformedRequest
		if errors.As(err, &mr) {
			writeJSON(res, h.logger, mr.status, models.ErrorResponse{Status: false, Errors: []string{mr.msg}})
			return
		}
		h.logger.Error("cannot decode request body", zap.Error(err))
		http.Error(res, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var rawURL string
	if request.URL != nil {
		rawURL = *request.URL
	}

	record, err := h.service.Create(ctx, rawURL)
	if err != nil {
		writeServiceError(res, h.logger, err)
		return
	}

	writeJSON(res, h.logger, http.StatusCreated, models.DataResponse{
		Data:    models.NewRecordData(record, h.baseURL),
		Message: "URL created successfully",
	})
}
