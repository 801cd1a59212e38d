package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/avolkov/stash-api/internal/api"
	apimiddleware "github.com/avolkov/stash-api/internal/api/middleware"
)

// healthPath is excluded from the request-context logging middleware.
const healthPath = "/health"

// setupRouter configures the application router: the request pipeline
// (correlation IDs, request-context logging) followed by the user and
// item routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.RequestID)
	r.Use(apimiddleware.RequestContext(app.logger, healthPath))

	userHandler := api.NewUserHandler(app.userService, app.logger)
	itemHandler := api.NewItemHandler(app.itemService, app.logger)

	r.Post("/users", userHandler.CreateUser)
	r.Get("/users", userHandler.ListUsers)
	r.Get("/users/{id}", userHandler.GetUser)
	r.Delete("/users/{id}", userHandler.DeleteUser)

	r.Post("/users/{id}/items", itemHandler.CreateUserItem)
	r.Get("/users/{id}/items", itemHandler.GetUserItems)
	r.Get("/items", itemHandler.GetAllItems)

	r.Get(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
