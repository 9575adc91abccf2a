package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skincare-advisor/internal/accounts"
	"skincare-advisor/internal/models"
	"skincare-advisor/internal/telemetry"
)

// UserHandler serves user-service.
type UserHandler struct {
	svc *accounts.Service
}

func NewUserHandler(svc *accounts.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(telemetry.Middleware("user-service"))

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Get("/users/{id}", h.getUser)
	r.Get("/users/{id}/profile", h.getProfile)
	r.Put("/users/{id}/profile", h.putProfile)
	r.Put("/users/{id}/password", h.putPassword)
	r.Put("/users/{id}/lifestyle", h.putLifestyle)
	r.Get("/users/{id}/routine", h.getRoutine)
	r.Put("/users/{id}/routine", h.putRoutine)
	r.Get("/users/{id}/progress", h.listProgress)
	r.Post("/users/{id}/progress", h.addProgress)
	return r
}

func (h *UserHandler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	tok, err := h.svc.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, tok)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	tok, err := h.svc.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, tok)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	u, err := h.svc.User(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// putProfile takes the user ID from the path; a userId in the body is ignored.
func (h *UserHandler) putProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var p models.Profile
	if err := decodeJSON(w, r, &p); err != nil {
		respondServiceError(w, r, err)
		return
	}
	p.UserID = id

	out, err := h.svc.UpdateProfile(r.Context(), p)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *UserHandler) putPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.PasswordUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.svc.UpdatePassword(r.Context(), id, req); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Password updated successfully"})
}

func (h *UserHandler) putLifestyle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var lifestyle map[string]any
	if err := decodeJSON(w, r, &lifestyle); err != nil {
		respondServiceError(w, r, err)
		return
	}
	out, err := h.svc.UpdateLifestyle(r.Context(), id, lifestyle)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, models.LifestyleResponse{Message: "Lifestyle factors updated successfully", Lifestyle: out})
}

func (h *UserHandler) getRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	routine, err := h.svc.Routine(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, routine)
}

func (h *UserHandler) putRoutine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var routine models.Routine
	if err := decodeJSON(w, r, &routine); err != nil {
		respondServiceError(w, r, err)
		return
	}
	out, err := h.svc.SaveRoutine(r.Context(), id, routine)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *UserHandler) listProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	entries, err := h.svc.Progress(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// addProgress takes the user ID from the path like putProfile.
func (h *UserHandler) addProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var e models.ProgressEntry
	if err := decodeJSON(w, r, &e); err != nil {
		respondServiceError(w, r, err)
		return
	}
	e.UserID = id

	out, err := h.svc.AddProgress(r.Context(), e)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, out)
}
