// Package server wires the URL API routes and middleware into a chi
// router.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/app/handler"
	"github.com/smartinb/go-url-shortener/internal/middleware"
	"github.com/smartinb/go-url-shortener/internal/service"
)

func Init(urlService service.URLServiceIface, baseURL string, logger *zap.Logger) *chi.Mux {
	get := handler.NewGet(urlService, baseURL, logger)
	post := handler.NewPost(urlService, baseURL, logger)
	update := handler.NewUpdate(urlService, baseURL, logger)
	del := handler.NewDelete(urlService, baseURL, logger)

	r := chi.NewRouter()
	r.Use(middleware.WithRequestID)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGZIPRequest)
	r.Use(middleware.WithGZIPResponse)

	r.Route("/url", func(r chi.Router) {
		r.Get("/", get.List)
		r.Post("/", post.Create)
		r.Get("/{urlKey:[A-Za-z0-9]+}", get.ByKey)
		r.Put("/{id:[0-9]+}", update.ByID)
		r.Patch("/{id:[0-9]+}", update.ByID)
		r.Delete("/{id:[0-9]+}", del.ByID)
	})

	r.Get("/ping", get.PingDB)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
