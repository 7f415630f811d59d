package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"toolshare-admin/internal/security"
	"toolshare-admin/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func adminUID(r *http.Request) string {
	if id, ok := security.IdentityFromContext(r.Context()); ok {
		return id.UID
	}
	return ""
}

// ListReports handles GET /api/v1/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	disputes, _ := strconv.ParseBool(q.Get("disputes"))

	reports, err := h.reports.ListReports(r.Context(), adminUID(r), service.ReportFilter{
		Status:       q.Get("status"),
		TargetType:   q.Get("targetType"),
		ReporterRole: q.Get("reporterRole"),
		ToolID:       q.Get("toolId"),
		Query:        q.Get("q"),
		DisputesOnly: disputes,
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	if reports == nil {
		reports = []service.ReportSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports, "count": len(reports)})
}

// GetReport handles GET /api/v1/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	detail, err := h.reports.GetReport(r.Context(), adminUID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// PreviewSettlement handles GET /api/v1/reports/{id}/settlement-preview
func (h *ReportHandler) PreviewSettlement(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	preview, err := h.reports.PreviewSettlement(r.Context(), adminUID(r), mux.Vars(r)["id"], service.PreviewRequest{
		NextStatus:      q.Get("status"),
		DepositDecision: q.Get("decision"),
		PartialAmount:   q.Get("partialRefund"),
	})
	if err != nil {
		writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// amountInput accepts a partial refund sent either as a JSON number or as
// the raw text of the console's input field.
type amountInput string

func (a *amountInput) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*a = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*a = amountInput(str)
	default:
		*a = amountInput(s)
	}
	return nil
}

type decisionRequest struct {
	Status          string      `json:"status"`
	Notes           string      `json:"notes"`
	DepositDecision string      `json:"depositDecision"`
	PartialRefund   amountInput `json:"partialRefund"`
	AdminAction     string      `json:"adminAction"`
}

// SaveDecision handles POST /api/v1/reports/{id}/decision
func (h *ReportHandler) SaveDecision(w http.ResponseWriter, r *http.Request) {
	var body decisionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: malformed request body: %w", service.ErrValidation, err), nil)
		return
	}

	result, err := h.reports.ResolveReport(r.Context(), service.ResolveRequest{
		ReportID:        mux.Vars(r)["id"],
		AdminUID:        adminUID(r),
		NextStatus:      body.Status,
		Notes:           body.Notes,
		DepositDecision: body.DepositDecision,
		PartialAmount:   string(body.PartialRefund),
		PunitiveAction:  body.AdminAction,
	})
	if err != nil {
		var partial any
		if result != nil {
			partial = result
		}
		writeError(w, r, err, partial)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
