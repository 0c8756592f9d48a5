// mynotes/routes/notes.go
package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"mynotes/mynotes/config"
	"mynotes/mynotes/controllers"

	"github.com/go-chi/chi/v5"
)

// handleNotesJSON adapts a (payload, status, error) handler to http. Errors
// are encoded as {"error": "..."}; a nil payload with a success status (the
// 204 delete case) writes no body.
func handleNotesJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if res == nil {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(res)
	}
}

// statusFor translates business errors into HTTP status codes. Anything
// outside the known taxonomy is an unexpected store failure.
func statusFor(err error) int {
	switch {
	case errors.Is(err, controllers.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controllers.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func noteIDParam(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, errors.New("invalid note id")
	}
	return uint(id), nil
}

// queryInt parses a positive integer query parameter, falling back when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

type notePayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Format      *string `json:"format"`
}

func NotesRoutes(ctrl *controllers.NotesController, cfg config.Config) chi.Router {
	r := chi.NewRouter()

	// List notes, paginated
	r.Get("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", cfg.PageSize)
		res, err := ctrl.List(r.Context(), page, limit)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return res, http.StatusOK, nil
	}))

	// Get single note
	r.Get("/{id}", handleNotesJSON(func(r *http.Request) (any, int, error) {
		id, err := noteIDParam(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		note, err := ctrl.Get(r.Context(), id)
		if err != nil {
			return nil, statusFor(err), err
		}
		return note, http.StatusOK, nil
	}))

	// Create note
	r.Post("/", handleNotesJSON(func(r *http.Request) (any, int, error) {
		var req notePayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		title := ""
		if req.Title != nil {
			title = *req.Title
		}
		note, err := ctrl.Create(r.Context(), title, req.Description, req.Format)
		if err != nil {
			return nil, statusFor(err), err
		}
		return note, http.StatusCreated, nil
	}))

	// Update note
	r.Put("/{id}", handleNotesJSON(func(r *http.Request) (any, int, error) {
		id, err := noteIDParam(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		var req notePayload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, http.StatusBadRequest, err
		}
		note, err := ctrl.Update(r.Context(), id, controllers.UpdateFields{
			Title:       req.Title,
			Description: req.Description,
			Format:      req.Format,
		})
		if err != nil {
			return nil, statusFor(err), err
		}
		return note, http.StatusOK, nil
	}))

	// Delete note
	r.Delete("/{id}", handleNotesJSON(func(r *http.Request) (any, int, error) {
		id, err := noteIDParam(r)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		if err := ctrl.Delete(r.Context(), id); err != nil {
			return nil, statusFor(err), err
		}
		return nil, http.StatusNoContent, nil
	}))

	return r
}
