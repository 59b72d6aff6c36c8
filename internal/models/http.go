// Package models defines the request and response bodies of the URL API.
package models

import (
	"time"

	"github.com/smartinb/go-url-shortener/internal/storage"
)

// URLRequest is the body of create and update calls. URL is a pointer so
// an omitted field (legal on update) is distinguishable from an empty one.
type URLRequest struct {
	URL *string `json:"url"`
}

// RecordData is the record projection returned by list, create, update
// and delete: the record plus a ready-to-use short URL.
type RecordData struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	URLKey   string `json:"url_key"`
	ShortURL string `json:"short_url"`
}

// ResolveData is the projection returned by resolve. It intentionally
// carries no short_url; redirect consumers already hold the key.
type ResolveData struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	URLKey    string    `json:"url_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResponse is the paginated listing envelope.
type ListResponse struct {
	Data        []RecordData `json:"data"`
	CurrentPage int          `json:"current_page"`
	LastPage    int          `json:"last_page"`
	Total       int          `json:"total"`
}

// DataResponse wraps a single projection, optionally with a message.
type DataResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body of 400 and 404 replies.
type ErrorResponse struct {
	Status  bool     `json:"status"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message,omitempty"`
}

// NewRecordData builds the display projection for a record.
func NewRecordData(r *storage.URLRecord, baseURL string) RecordData {
	return RecordData{
		ID:       r.ID,
		URL:      r.URL,
		URLKey:   r.ShortKey,
		ShortURL: baseURL + "/" + r.ShortKey,
	}
}

// NewResolveData builds the resolve projection for a record.
func NewResolveData(r *storage.URLRecord) ResolveData {
	return ResolveData{
		ID:        r.ID,
		URL:       r.URL,
		URLKey:    r.ShortKey,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
