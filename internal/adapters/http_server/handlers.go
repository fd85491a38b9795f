package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"room_balancer/internal/app"
	"room_balancer/internal/domain"
)

type Handlers struct {
	A   *app.AnalysisService
	Adv *app.AdvisoryService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type approvalBody struct {
	GuestName string `json:"guest_name"`
	Approved  *bool  `json:"approved"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/dates", h.listDates)
	s.mux.Route("/v1/analyses/{date}", func(r chi.Router) {
		r.Get("/", h.getAnalysis)
		r.Post("/", h.getAnalysis)
		r.Put("/approvals", h.putApproval)
		r.Delete("/approvals", h.resetApprovals)
		r.Post("/finalize", h.finalize)
		r.Get("/assignments.csv", h.exportCSV)
		r.Get("/recommendations", h.recommendations)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrInvalidDate), errors.Is(err, domain.ErrInvalidReservation):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON honors If-None-Match on safe methods.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if r.Method == http.MethodGet {
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func dateParam(w http.ResponseWriter, r *http.Request) (domain.Date, bool) {
	d, err := domain.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
		return domain.Date{}, false
	}
	return d, true
}

func (h *Handlers) listDates(w http.ResponseWriter, r *http.Request) {
	out, err := h.A.Dates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) getAnalysis(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	out, err := h.A.Analyze(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) putApproval(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	var body approvalBody
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	body.GuestName = strings.TrimSpace(body.GuestName)
	if body.GuestName == "" || body.Approved == nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "guest_name and approved are required")
		return
	}
	out, err := h.A.Approve(r.Context(), d, body.GuestName, *body.Approved)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) resetApprovals(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	out, err := h.A.ResetApprovals(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) finalize(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	out, err := h.A.Finalize(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}

func (h *Handlers) exportCSV(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.A.ExportCSV(r.Context(), d, &buf); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="room-assignments-`+d.String()+`.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write csv body")
	}
}

func (h *Handlers) recommendations(w http.ResponseWriter, r *http.Request) {
	d, ok := dateParam(w, r)
	if !ok {
		return
	}
	out, err := h.Adv.Recommend(r.Context(), d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, out)
}
