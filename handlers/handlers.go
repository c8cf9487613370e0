package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/abefas/tasktracker/export"
	"github.com/abefas/tasktracker/models"
	"github.com/abefas/tasktracker/store"
	"github.com/gorilla/mux"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handlers struct holds the task store, allowing methods to share it.
type Handlers struct {
	Store        *store.Store
	MaxBodyBytes int64
}

// NewHandlers is a constructor for the Handlers struct.
func NewHandlers(st *store.Store) *Handlers {
	return &Handlers{Store: st, MaxBodyBytes: DefaultMaxBodyBytes}
}

// respondWithJSON is a helper function to format and send JSON responses.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("JSON encode error: %v", err)
		code = http.StatusInternalServerError
		response = []byte(`{"error":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, models.ErrorResponse{Error: message})
}

// respondWithStoreError maps store errors onto client-error responses.
func respondWithStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case store.IsNotFound(err):
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("Unexpected store error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// taskID parses the {id} path variable.
func taskID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	return id, err == nil
}

// GetTasks returns every task in insertion order.
func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Store.List())
}

// CreateTask validates the body into a CreateTaskRequest and stores a new task.
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	body := http.MaxBytesReader(w, r.Body, limit)
	defer body.Close()

	raw, err := decodeObject(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondWithError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		log.Printf("JSON decode error in CreateTask: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	req, err := parseCreateTaskRequest(raw)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	t, err := h.Store.Create(req.Title)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, t)
}

// decodeObject reads exactly one JSON value from body. An empty body yields a
// nil map; anything after the first value is an error.
func decodeObject(body io.Reader) (map[string]interface{}, error) {
	dec := json.NewDecoder(body)

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after JSON object")
		}
		return nil, err
	}
	return raw, nil
}

// parseCreateTaskRequest accepts only a string title; anything else is
// treated the same as a missing one.
func parseCreateTaskRequest(raw map[string]interface{}) (models.CreateTaskRequest, error) {
	title, ok := raw["title"].(string)
	if !ok {
		return models.CreateTaskRequest{}, store.ErrTitleRequired()
	}
	return models.CreateTaskRequest{Title: title}, nil
}

// CompleteTask marks a task as completed.
func (h *Handlers) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	t, err := h.Store.Complete(id)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, t)
}

// DeleteTask deletes a task by its ID.
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(r)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	if err := h.Store.Delete(id); err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "Task deleted successfully"})
}

// GetStats returns total, completed and pending counts.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.Store.Stats())
}

// ExportTasks renders the task list as json, csv or pdf. Defaults to json.
func (h *Handlers) ExportTasks(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	tasks, stats := h.Store.Snapshot()
	b, err := export.Export(tasks, stats, format)
	if errors.Is(err, export.ErrUnsupportedFormat) {
		respondWithError(w, http.StatusBadRequest, "Unsupported export format")
		return
	} else if err != nil {
		log.Printf("Export error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to export tasks")
		return
	}

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(format)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
