package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"

	"toolshare-admin/internal/security"
	"toolshare-admin/internal/service"
)

// Route names double as keys into config.RouteSecurityConfig.
const (
	RouteHealthz           = "healthz"
	RouteListReports       = "reports.list"
	RouteGetReport         = "reports.get"
	RouteSettlementPreview = "reports.settlement_preview"
	RouteReportDecision    = "reports.decision"
)

// NewRouter builds the admin console API.
func NewRouter(reports service.ReportService, verifier security.Verifier, allowedOrigins []string) http.Handler {
	h := NewReportHandler(reports)
	auth := &authMiddleware{verifier: verifier}

	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Message: "route not found"})
	})
	router.Use(auth.Handler)

	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet).Name(RouteHealthz)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/reports", h.ListReports).Methods(http.MethodGet).Name(RouteListReports)
	api.HandleFunc("/reports/{id}", h.GetReport).Methods(http.MethodGet).Name(RouteGetReport)
	api.HandleFunc("/reports/{id}/settlement-preview", h.PreviewSettlement).Methods(http.MethodGet).Name(RouteSettlementPreview)
	api.HandleFunc("/reports/{id}/decision", h.SaveDecision).Methods(http.MethodPost).Name(RouteReportDecision)

	standard := alice.New(recoverPanic, requestID, logRequest, secureHeaders, makeResponseJSON)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(standard.Then(router))
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
