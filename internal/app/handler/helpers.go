// Package handler contains the HTTP handlers for the URL API: listing,
// shortening, resolving, updating and deleting records, plus the JSON
// plumbing they share.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/models"
	"github.com/smartinb/go-url-shortener/internal/service"
	"github.com/smartinb/go-url-shortener/internal/storage"
)

// malformedRequest represents an error with a malformed HTTP request.
type malformedRequest struct {
	status int
	msg    string
}

func (mr *malformedRequest) Error() string {
	return mr.msg
}

// errEmptyBody marks a request with no body at all. Create rejects it;
// update treats it as "nothing to change".
var errEmptyBody = &malformedRequest{status: http.StatusBadRequest, msg: "Request body must not be empty"}

// decodeJSONBody decodes a JSON request body into the given destination
// struct, translating the common failure modes into client-facing errors.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	ct := r.Header.Get("Content-Type")
	if ct != "" {
		mediaType := strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
		if mediaType != "application/json" {
			msg := "Content-Type header is not application/json"
			return &malformedRequest{status: http.StatusUnsupportedMediaType, msg: msg}
		}
	}

	// Limit the size of the request body to 1MB
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.ErrUnexpectedEOF):
			msg := "Request body contains badly-formed JSON"
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.As(err, &unmarshalTypeError):
			msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			msg := fmt.Sprintf("Request body contains unknown field %s", fieldName)
			return &malformedRequest{status: http.StatusBadRequest, msg: msg}

		case errors.Is(err, io.EOF):
			return errEmptyBody

		case err.Error() == "http: request body too large":
			msg := "Request body must not be larger than 1MB"
			return &malformedRequest{status: http.StatusRequestEntityTooLarge, msg: msg}

		default:
			return err
		}
	}

	// Ensure the body only contains a single JSON object
	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		msg := "Request body must only contain a single JSON object"
		return &malformedRequest{status: http.StatusBadRequest, msg: msg}
	}

	return nil
}

// writeJSON marshals v with the given status code.
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("cannot write response body", zap.Error(err))
	}
}

// writeServiceError maps service-level failures onto the API's error
// contract. Anything unrecognized is an infrastructure failure and comes
// back as a 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, logger, http.StatusBadRequest, models.ErrorResponse{Status: false, Errors: vErr.Messages})
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, logger, http.StatusNotFound, models.ErrorResponse{Status: false, Message: "URL not found"})
	default:
		logger.Error("request failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// parseListQuery validates the listing query parameters. Malformed
// boolean or integer values are a client error.
func parseListQuery(r *http.Request) (storage.ListQuery, error) {
	values := r.URL.Query()

	q := storage.ListQuery{
		Search: values.Get("search"),
		Order:  storage.OrderDesc,
		Page:   1,
	}

	if raw := values.Get("order_desc"); raw != "" {
		if _, err := strconv.ParseBool(raw); err != nil {
			return q, fmt.Errorf("order_desc must be a boolean, got %q", raw)
		}
	}

	if raw := values.Get("order_asc"); raw != "" {
		asc, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("order_asc must be a boolean, got %q", raw)
		}
		// order_asc wins over order_desc when both are sent
		if asc {
			q.Order = storage.OrderAsc
		}
	}

	if raw := values.Get("unpaginated"); raw != "" {
		unpaginated, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("unpaginated must be a boolean, got %q", raw)
		}
		q.Unpaginated = unpaginated
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		q.Page = page
	}

	return q, nil
}

// parseID reads the {id} route parameter.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", raw)
	}
	return id, nil
}
