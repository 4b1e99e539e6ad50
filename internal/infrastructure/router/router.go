package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"airtrip-service/internal/interface/handler"
	"airtrip-service/pkg/logger"
)

// NewRouter wires the API routes, middleware chain and CORS policy
func NewRouter(h *handler.Handler, registry *prometheus.Registry, allowedOrigins []string, log logger.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(SessionMiddleware)

	api.HandleFunc("/search", h.Search).Methods(http.MethodPost)
	api.HandleFunc("/results/filter", h.Filter).Methods(http.MethodPost)
	api.HandleFunc("/results/reset", h.ResetFilter).Methods(http.MethodPost)
	api.HandleFunc("/results/more", h.LoadMore).Methods(http.MethodPost)

	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	api.HandleFunc("/submitForgotPassword", h.SubmitForgotPassword).Methods(http.MethodPost)
	api.HandleFunc("/resetPassword", h.ResetPassword).Methods(http.MethodPost)
	api.HandleFunc("/log", h.Log).Methods(http.MethodPost)

	r.Use(RecoveryMiddleware(log))
	r.Use(LoggingMiddleware(log))

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", SessionHeader},
		ExposedHeaders: []string{SessionHeader},
		MaxAge:         300,
	})

	return c.Handler(r)
}
