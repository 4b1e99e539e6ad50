package handler

import (
	"net/http"

	"airtrip-service/internal/domain/entity"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"`
	Token    string `json:"token"`
	Password string `json:"password"`
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, false)
		return
	}
	ok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	h.writeFlag(w, r, ok, err)
}

// Signup handles POST /signup
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decode(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, false)
		return
	}
	ok, err := h.auth.Signup(r.Context(), req.Email, req.Password)
	h.writeFlag(w, r, ok, err)
}

// SubmitForgotPassword handles POST /submitForgotPassword
func (h *Handler) SubmitForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decode(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, false)
		return
	}
	ok, err := h.auth.SubmitForgotPassword(r.Context(), req.Email)
	h.writeFlag(w, r, ok, err)
}

// ResetPassword handles POST /resetPassword
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decode(r, &req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, false)
		return
	}
	ok, err := h.auth.ResetPassword(r.Context(), req.Email, req.Token, req.Password)
	h.writeFlag(w, r, ok, err)
}

func (h *Handler) writeFlag(w http.ResponseWriter, r *http.Request, ok bool, err error) {
	if err != nil {
		h.logger.Error("Account request failed", "path", r.URL.Path, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, false)
		return
	}
	h.writeJSON(w, http.StatusOK, ok)
}

// Log handles POST /log. Records are fire-and-forget, so malformed bodies are dropped.
func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	var record entity.LogRecord
	if err := decode(r, &record); err != nil {
		h.logger.Debug("Dropping malformed client log record", "error", err)
	} else {
		h.logs.Record(record)
	}
	w.WriteHeader(http.StatusNoContent)
}
