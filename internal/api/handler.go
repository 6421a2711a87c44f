package api

import (
	"Go2NetTemplates/internal/model"
	"Go2NetTemplates/internal/report"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// APIHandler serves a finished report read-only.
type APIHandler struct {
	report   *model.Report
	maxWidth int
	logger   *zap.Logger
}

// NewRouter creates the router for the template API.
func NewRouter(r *model.Report, maxWidth int, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &APIHandler{report: r, maxWidth: maxWidth, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/templates", h.listTemplatesHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/templates/{id}", h.templateHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/templates/{id}/table", h.templateTableHandler).Methods(http.MethodGet)
	return router
}

// listTemplatesHandler returns the overview of every template.
func (h *APIHandler) listTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	msg, err := report.OverviewStruct(h.report)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build overview: %v", err), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, msg)
}

// templateHandler returns one template with its field statistics.
func (h *APIHandler) templateHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	msg, err := report.SummaryStruct(h.report.Source, t)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to build template: %v", err), http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, msg)
}

// templateTableHandler returns one template as a text table.
func (h *APIHandler) templateTableHandler(w http.ResponseWriter, r *http.Request) {
	t, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, report.TemplateTable(t, h.maxWidth))
}

func (h *APIHandler) lookup(w http.ResponseWriter, r *http.Request) (model.TemplateSummary, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid template id: %s", raw), http.StatusBadRequest)
		return model.TemplateSummary{}, false
	}
	t, ok := h.report.Template(id)
	if !ok {
		http.Error(w, fmt.Sprintf("template %d not found", id), http.StatusNotFound)
		return model.TemplateSummary{}, false
	}
	return t, true
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, msg proto.Message) {
	jsonBytes, err := protojson.Marshal(msg)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to marshal response: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(jsonBytes); err != nil {
		h.logger.Warn("Failed to write response", zap.Error(err))
	}
}
