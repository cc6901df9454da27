package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scroll-api/internal/api"
	apiMiddleware "github.com/phrazzld/scroll-api/internal/api/middleware"
	"github.com/phrazzld/scroll-api/internal/api/shared"
)

// requestTimeout bounds handler execution. Handlers never wait on
// generation, so this only guards store and I/O stalls.
const requestTimeout = 30 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS)
	r.Use(middleware.Timeout(requestTimeout))

	studysetHandler := api.NewStudysetHandler(app.studysetService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/studysets", studysetHandler.CreateStudyset)
		r.Get("/studysets", studysetHandler.ListStudysets)
		r.Get("/studysets/{id}", studysetHandler.GetStudyset)

		r.Get("/users/{name}", userHandler.GetUser)
		r.Put("/users/{name}/progress", userHandler.UpdateProgress)
	})

	// Rendered images and videos
	artifacts := http.StripPrefix("/artifacts/", http.FileServer(http.Dir(app.artifacts.Dir())))
	r.Get("/artifacts/*", artifacts.ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]any{
			"status":       "ok",
			"queued_tasks": app.taskRunner.QueueLen(),
			"pollers":      app.registry.Len(),
		})
	})

	return r
}
