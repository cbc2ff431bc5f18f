package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"designer-quiz-service/internal/app"
	"designer-quiz-service/internal/domain"
	"designer-quiz-service/internal/share"
)

// Notifier registers a finished respondent with the mailing list.
type Notifier interface {
	Subscribe(ctx context.Context, email string, result domain.Result) error
}

// Handler exposes the quiz lifecycle and analytics rollups as a JSON API.
type Handler struct {
	submissions *app.SubmissionService
	analytics   *app.AnalyticsService
	notifier    Notifier
	shareBase   string
}

func NewHandler(submissions *app.SubmissionService, analytics *app.AnalyticsService, notifier Notifier, shareBase string) *Handler {
	return &Handler{
		submissions: submissions,
		analytics:   analytics,
		notifier:    notifier,
		shareBase:   shareBase,
	}
}

// Register wires all routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/submissions", h.startSubmission)
	mux.HandleFunc("GET /api/submissions/{id}", h.resumeSubmission)
	mux.HandleFunc("POST /api/submissions/{id}/answers", h.recordAnswer)
	mux.HandleFunc("POST /api/submissions/{id}/finish", h.finishSubmission)
	mux.HandleFunc("GET /api/submissions", h.listSubmissions)
	mux.HandleFunc("GET /api/export.csv", h.exportCSV)
	mux.HandleFunc("GET /api/analytics/overview", h.overview)
	mux.HandleFunc("GET /api/analytics/types", h.typeDistribution)
	mux.HandleFunc("GET /api/analytics/devices", h.deviceSplit)
	mux.HandleFunc("GET /api/analytics/dropoff", h.dropoff)
	mux.HandleFunc("GET /api/analytics/questions", h.questionStats)
	mux.HandleFunc("GET /api/share-links", h.shareLinks)
}

type startRequest struct {
	Device string `json:"device"`
}

type startResponse struct {
	Submission  domain.Submission `json:"submission"`
	ResumeToken string            `json:"resumeToken"`
}

func (h *Handler) startSubmission(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	// Body is optional; device falls back to User-Agent sniffing.
	_ = json.NewDecoder(r.Body).Decode(&req)

	device := domain.Device(req.Device)
	if device != domain.DeviceMobile && device != domain.DeviceDesktop {
		device = domain.ClassifyDevice(r.UserAgent())
	}

	submission, err := h.submissions.Start(r.Context(), device)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, startResponse{Submission: submission, ResumeToken: submission.ID})
}

func (h *Handler) resumeSubmission(w http.ResponseWriter, r *http.Request) {
	state, err := h.submissions.Resume(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type answerRequest struct {
	QuestionIndex int    `json:"questionIndex"`
	OptionID      string `json:"optionId"`
}

func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid answer payload"})
		return
	}

	answer, err := h.submissions.RecordAnswer(r.Context(), r.PathValue("id"), req.QuestionIndex, req.OptionID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

type finishRequest struct {
	Email *string `json:"email"`
}

type finishResponse struct {
	Result         domain.Result `json:"result"`
	ShareURL       string        `json:"shareUrl"`
	Subscribed     bool          `json:"subscribed"`
	SubscribeError string        `json:"subscribeError,omitempty"`
}

func (h *Handler) finishSubmission(w http.ResponseWriter, r *http.Request) {
	var req finishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid finish payload"})
		return
	}

	result, err := h.submissions.Finish(r.Context(), r.PathValue("id"), req.Email)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp := finishResponse{
		Result:   result,
		ShareURL: share.ResultURL(h.shareBase, result, share.NewShareID()),
	}
	// Mailing-list registration is best-effort and decoupled from the already
	// finalized submission. A failure surfaces to the caller, who may retry
	// just the email step.
	if req.Email != nil && h.notifier != nil {
		if err := h.notifier.Subscribe(r.Context(), *req.Email, result); err != nil {
			if errors.Is(err, domain.ErrAlreadySubscribed) {
				resp.SubscribeError = "Ez az email cím már fel van iratkozva."
			} else {
				log.Printf("mailing list subscribe failed: %v", err)
				resp.SubscribeError = err.Error()
			}
		} else {
			resp.Subscribed = true
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listSubmissions(w http.ResponseWriter, r *http.Request) {
	filter := domain.SubmissionFilter{
		Status:      domain.Status(filterParam(r, "status")),
		Device:      domain.Device(filterParam(r, "device")),
		PrimaryType: domain.Category(filterParam(r, "type")),
	}
	submissions, err := h.analytics.ListSubmissions(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	filter := domain.SubmissionFilter{
		Status:      domain.Status(filterParam(r, "status")),
		Device:      domain.Device(filterParam(r, "device")),
		PrimaryType: domain.Category(filterParam(r, "type")),
	}
	data, err := h.analytics.ExportCSV(r.Context(), filter)
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)
	_, _ = w.Write(data)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analytics.Overview(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) typeDistribution(w http.ResponseWriter, r *http.Request) {
	entries, err := h.analytics.TypeDistribution(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) deviceSplit(w http.ResponseWriter, r *http.Request) {
	split, err := h.analytics.DeviceSplit(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, split)
}

func (h *Handler) dropoff(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.analytics.Dropoff(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buckets)
}

func (h *Handler) questionStats(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := h.analytics.QuestionStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdowns)
}

type shareLinksResponse struct {
	URL   string      `json:"url"`
	Links share.Links `json:"links"`
}

func (h *Handler) shareLinks(w http.ResponseWriter, r *http.Request) {
	primary := domain.Category(r.URL.Query().Get("primary"))
	secondary := domain.Category(r.URL.Query().Get("secondary"))
	if !primary.IsValid() || !secondary.IsValid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown category"})
		return
	}
	result := domain.Result{
		Primary:      primary,
		PrimaryPct:   intParam(r, "pp"),
		Secondary:    secondary,
		SecondaryPct: intParam(r, "sp"),
	}
	resultURL := share.ResultURL(h.shareBase, result, share.NewShareID())
	writeJSON(w, http.StatusOK, shareLinksResponse{
		URL:   resultURL,
		Links: share.ShareLinks(resultURL, primary.DisplayName()),
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrSubmissionNotFound), errors.Is(err, domain.ErrCatalogNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotResumable), errors.Is(err, domain.ErrAlreadyFinished):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrQuestionNotFound), errors.Is(err, domain.ErrOptionNotFound):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Kérlek, adj meg érvényes email címet."})
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func filterParam(r *http.Request, name string) string {
	value := r.URL.Query().Get(name)
	if value == "all" {
		return ""
	}
	return value
}

func intParam(r *http.Request, name string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return value
}
