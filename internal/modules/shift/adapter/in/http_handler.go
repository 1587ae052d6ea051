package in

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"leadtrack/internal/modules/shift/dto"
	shiftin "leadtrack/internal/modules/shift/port/in"
	apperrors "leadtrack/internal/platform/errors"
)

// HTTPHandler exposes the shift lifecycle as a JSON API under /api/shift.
type HTTPHandler struct {
	usecase shiftin.Usecase
	log     zerolog.Logger
}

func NewHTTPHandler(usecase shiftin.Usecase, log zerolog.Logger) HTTPHandler {
	return HTTPHandler{usecase: usecase, log: log}
}

// Routes mounts the shift endpoints on r.
func (h HTTPHandler) Routes(r chi.Router) {
	r.Route("/api/shift", func(r chi.Router) {
		r.Get("/active", h.getActive)
		r.Post("/start", h.start)
		r.Get("/preview", h.preview)
		r.Post("/{id}/end", h.end)
		r.Delete("/{id}", h.delete)
		r.Get("/history", h.history)
		r.Get("/snapshot", h.snapshot)
		r.Get("/status", h.status)
	})
}

// Router returns a standalone router carrying only the shift endpoints.
func (h HTTPHandler) Router() http.Handler {
	r := chi.NewRouter()
	h.Routes(r)
	return r
}

func (h HTTPHandler) getActive(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetActive(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) start(w http.ResponseWriter, r *http.Request) {
	var input dto.StartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, errors.Join(apperrors.ErrInvalidInput, err))
		return
	}
	out, err := h.usecase.Start(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) preview(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.PreviewEnd(r.Context(), dto.PreviewInput{LogoutTime: r.URL.Query().Get("logout")})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) end(w http.ResponseWriter, r *http.Request) {
	var input dto.EndInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, errors.Join(apperrors.ErrInvalidInput, err))
		return
	}
	input.SessionID = chi.URLParam(r, "id")
	out, err := h.usecase.End(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.usecase.Delete(r.Context(), dto.DeleteInput{SessionID: chi.URLParam(r, "id")}); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h HTTPHandler) history(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.History(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) snapshot(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.CurrentSnapshot(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) status(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Status(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h HTTPHandler) writeError(w http.ResponseWriter, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("shift request failed")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNoActiveSession),
		errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrSessionAlreadyActive),
		errors.Is(err, apperrors.ErrSessionNotActive),
		errors.Is(err, apperrors.ErrCannotDeleteActiveSession):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
