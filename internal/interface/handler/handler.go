package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/internal/usecase"
	"airtrip-service/pkg/logger"
)

// SearchService runs searches and serves filtered views of their results
type SearchService interface {
	Search(ctx context.Context, sessionID string, params entity.SearchParams) (*entity.ResultInfo, error)
	Filter(ctx context.Context, sessionID string, criteria entity.FilterCriteria) (*usecase.ResultsPage, error)
	ResetFilter(ctx context.Context, sessionID string) (*usecase.ResultsPage, error)
	LoadMore(ctx context.Context, sessionID string) (*usecase.ResultsPage, error)
}

// AuthService manages accounts
type AuthService interface {
	Login(ctx context.Context, email, password string) (bool, error)
	Signup(ctx context.Context, email, password string) (bool, error)
	SubmitForgotPassword(ctx context.Context, email string) (bool, error)
	ResetPassword(ctx context.Context, email, token, newPassword string) (bool, error)
}

// LogRecorder accepts client log records
type LogRecorder interface {
	Record(record entity.LogRecord)
}

// Handler serves the JSON API
type Handler struct {
	search SearchService
	auth   AuthService
	logs   LogRecorder
	logger logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(search SearchService, auth AuthService, logs LogRecorder, logger logger.Logger) *Handler {
	return &Handler{
		search: search,
		auth:   auth,
		logs:   logs,
		logger: logger,
	}
}

type sessionKey struct{}

// WithSessionID stores the caller's session id on the request context
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey{}, id)
}

// SessionID returns the session id stored by WithSessionID
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

type errorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg, Code: status})
}

func decode(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeUsecaseError maps usecase failures onto HTTP status codes
func (h *Handler) writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *usecase.ValidationError
	var geocodeErr *usecase.GeocodeError
	var rangeErr *usecase.RangeLookupError

	switch {
	case errors.As(err, &validationErr):
		h.writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &geocodeErr):
		h.writeError(w, http.StatusUnprocessableEntity, geocodeErr.Error())
	case errors.Is(err, usecase.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		h.writeError(w, http.StatusGatewayTimeout, "search took too long, try a smaller time budget")
	case errors.As(err, &rangeErr):
		h.writeError(w, http.StatusBadGateway, "travel time service unavailable")
	default:
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Healthy"))
}
