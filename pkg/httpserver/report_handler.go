package httpserver

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/polyscan/polyscan/internal/report"
)

// ReportProvider exposes the most recent completed report.
type ReportProvider interface {
	// LatestReport returns the last completed report, or false if no scan
	// has finished yet.
	LatestReport() (*report.Report, bool)
}

// ReportHandler handles HTTP requests for the latest scan report.
type ReportHandler struct {
	provider ReportProvider
	logger   *zap.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(provider ReportProvider, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		provider: provider,
		logger:   logger,
	}
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleReport handles GET /api/report[?actor=<id>] requests.
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rpt, ok := h.provider.LatestReport()
	if !ok {
		h.writeError(w, "no scan has completed yet", http.StatusNotFound)
		return
	}

	if actor := r.URL.Query().Get("actor"); actor != "" {
		h.writeActorEntry(w, rpt, actor)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(rpt); err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func (h *ReportHandler) writeActorEntry(w http.ResponseWriter, rpt *report.Report, actor string) {
	for i := range rpt.Entries {
		if rpt.Entries[i].ActorID == actor {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if err := json.NewEncoder(w).Encode(&rpt.Entries[i]); err != nil {
				h.logger.Error("failed-to-encode-response", zap.Error(err))
			}
			return
		}
	}

	h.writeError(w, "actor not in latest report", http.StatusNotFound)
}

// writeError writes a JSON error response.
func (h *ReportHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
