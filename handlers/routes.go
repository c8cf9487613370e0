package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Routes registers the task API on router.
func (h *Handlers) Routes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")

	router.HandleFunc("/tasks", h.GetTasks).Methods("GET")
	router.HandleFunc("/tasks", h.CreateTask).Methods("POST")
	router.HandleFunc("/tasks/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/tasks/export", h.ExportTasks).Methods("GET")
	router.HandleFunc("/tasks/{id}/complete", h.CompleteTask).Methods("PUT")
	router.HandleFunc("/tasks/{id}", h.DeleteTask).Methods("DELETE")

	// The front-end parses every response as JSON, including router misses.
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, "Resource not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
