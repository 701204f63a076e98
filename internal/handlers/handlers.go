// Package handlers exposes sizing, ledger and CLV operations over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mkrebs/gridline/internal/broadcaster"
	"github.com/mkrebs/gridline/internal/clv"
	"github.com/mkrebs/gridline/internal/keynum"
	"github.com/mkrebs/gridline/internal/risk"
	"github.com/mkrebs/gridline/pkg/contracts"
	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/pkg/oddsmath"
)

// Handler carries the sizing API dependencies. The store and hub are
// optional; a nil value disables persistence or broadcasting.
type Handler struct {
	sizer    *risk.Sizer
	tracker  *clv.Tracker
	profile  contracts.SportProfile
	store    contracts.RecommendationStore
	hub      *broadcaster.Hub
	bankroll float64
	log      *logrus.Entry
}

// New creates the handler set.
func New(sizer *risk.Sizer, tracker *clv.Tracker, profile contracts.SportProfile,
	store contracts.RecommendationStore, hub *broadcaster.Hub, bankroll float64,
	log *logrus.Entry) *Handler {
	return &Handler{
		sizer:    sizer,
		tracker:  tracker,
		profile:  profile,
		store:    store,
		hub:      hub,
		bankroll: bankroll,
		log:      log,
	}
}

// HealthCheck reports service health.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "sizing-api",
	})
}

// SizeRequest asks for a stake against the weekly ledger.
type SizeRequest struct {
	Analysis models.EdgeAnalysis `json:"analysis"`
	Bankroll float64             `json:"bankroll,omitempty"`
	Odds     int                 `json:"odds"`
}

// SizeBet sizes a classified edge, registers the recommendation with the
// CLV tracker, persists it and broadcasts it.
func (h *Handler) SizeBet(w http.ResponseWriter, r *http.Request) {
	var req SizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Bankroll == 0 {
		req.Bankroll = h.bankroll
	}

	rec, err := h.sizer.SizeBet(req.Analysis, req.Bankroll, req.Odds)
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	if _, err := h.tracker.Record(rec); err != nil {
		h.log.WithError(err).Warn("clv tracking failed")
	}
	if h.store != nil {
		if err := h.store.WriteRecommendation(r.Context(), rec); err != nil {
			h.log.WithError(err).Warn("recommendation write failed")
		}
	}
	if h.hub != nil {
		h.hub.Broadcast(rec)
	}

	respondJSON(w, http.StatusCreated, rec)
}

// KellyRequest asks for an advisory Kelly stake for an edge at given odds.
type KellyRequest struct {
	WinProbability float64 `json:"win_probability"`
	Odds           int     `json:"odds"`
	Bankroll       float64 `json:"bankroll,omitempty"`
	Fraction       float64 `json:"fraction,omitempty"` // e.g. 0.25 for quarter Kelly
}

// KellyResponse reports full and fractional Kelly stakes.
type KellyResponse struct {
	FullKellyPct    float64 `json:"full_kelly_pct"`
	FractionalPct   float64 `json:"fractional_pct"`
	FullStake       float64 `json:"full_stake"`
	FractionalStake float64 `json:"fractional_stake"`
}

// Kelly computes advisory Kelly sizing. The star table governs actual
// stakes; this endpoint exists to sanity-check it against the formula.
func (h *Handler) Kelly(w http.ResponseWriter, r *http.Request) {
	var req KellyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if req.Bankroll == 0 {
		req.Bankroll = h.bankroll
	}
	if req.Fraction <= 0 || req.Fraction > 1 {
		req.Fraction = 0.25
	}

	full, err := oddsmath.KellyFraction(req.WinProbability, req.Odds)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, KellyResponse{
		FullKellyPct:    full,
		FractionalPct:   full * req.Fraction,
		FullStake:       oddsmath.Round2(req.Bankroll * full),
		FractionalStake: oddsmath.Round2(req.Bankroll * full * req.Fraction),
	})
}

// HalfPointRequest asks whether buying a half point at the quoted price is
// worth it at the current line.
type HalfPointRequest struct {
	Line     float64 `json:"line"`
	PricePct float64 `json:"price_pct"`
}

// HalfPoint answers the buy-a-half-point question from the key-number table.
func (h *Handler) HalfPoint(w http.ResponseWriter, r *http.Request) {
	var req HalfPointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	value := keynum.HalfPointValue(req.Line, h.profile)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"line":      req.Line,
		"value_pct": value,
		"buy":       keynum.ShouldBuyHalfPoint(req.Line, req.PricePct, h.profile),
	})
}

// Ledger returns a snapshot of the weekly exposure ledger.
func (h *Handler) Ledger(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sizer.Ledger().Snapshot())
}

// ResetLedgerRequest starts a new betting week.
type ResetLedgerRequest struct {
	Week int `json:"week"`
}

// ResetLedger is the explicit week-boundary operation; exposure never rolls
// over implicitly.
func (h *Handler) ResetLedger(w http.ResponseWriter, r *http.Request) {
	var req ResetLedgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Week <= 0 {
		respondError(w, http.StatusBadRequest, "week must be a positive integer")
		return
	}

	h.sizer.Ledger().ResetWeek(req.Week)
	h.log.WithField("week", req.Week).Info("ledger reset")
	respondJSON(w, http.StatusOK, h.sizer.Ledger().Snapshot())
}

// CLVSummary returns the aggregate CLV projection.
func (h *Handler) CLVSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Summarize())
}

// CLVPending lists unresolved records.
func (h *Handler) CLVPending(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Pending())
}

// CLVResolved lists settled records.
func (h *Handler) CLVResolved(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.tracker.Resolved())
}

// statusFor maps the error taxonomy onto HTTP statuses. Cap violations are
// conflicts, not server errors: the request was understood and refused.
func statusFor(err error) int {
	var capErr *models.CapExceededError
	var valErr *models.ValidationError
	switch {
	case errors.As(err, &capErr):
		return http.StatusConflict
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
