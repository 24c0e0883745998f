package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", handler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(handler.Authenticate)
	protected.HandleFunc("/analyze", handler.Analyze).Methods(http.MethodPost)
	protected.HandleFunc("/reports", handler.SaveReport).Methods(http.MethodPost)
	protected.HandleFunc("/reports", handler.ListReports).Methods(http.MethodGet)
	protected.HandleFunc("/reports/positions", handler.ListAnalystPositions).Methods(http.MethodGet)
	protected.HandleFunc("/reports/{id:[0-9]+}/positions", handler.ListReportPositions).Methods(http.MethodGet)
	protected.HandleFunc("/portfolio", handler.CopyToPortfolio).Methods(http.MethodPost)
	protected.HandleFunc("/portfolio", handler.ListPositions).Methods(http.MethodGet)
	protected.HandleFunc("/portfolio/{id:[0-9]+}/close", handler.ClosePosition).Methods(http.MethodPost)

	return router
}
