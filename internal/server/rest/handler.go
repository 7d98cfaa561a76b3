package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

func (s *RESTServer) handleMonthlyCalendar(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	month, err := datex.ParseYearMonth(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, want YYYY-MM")
		return
	}

	summaries, err := s.intake.MonthlyCalendar(r.Context(), member, month)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaries)
}

func (s *RESTServer) handleDailySummary(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	day, err := datex.ParseDay(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	summary, err := s.intake.DailySummary(r.Context(), member, day)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *RESTServer) handleDailyDetail(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	day, err := datex.ParseDay(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD")
		return
	}

	detail, err := s.intake.DailyDetail(r.Context(), member, day)
	if err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

type mealRequest struct {
	EatenAt  time.Time       `json:"eaten_at"`
	Kcal     decimal.Decimal `json:"kcal"`
	CarbG    decimal.Decimal `json:"carb_g"`
	ProteinG decimal.Decimal `json:"protein_g"`
	FatG     decimal.Decimal `json:"fat_g"`
}

func (s *RESTServer) handleRecordMeal(w http.ResponseWriter, r *http.Request) {
	member, ok := MemberFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req mealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.EatenAt.IsZero() {
		writeError(w, http.StatusBadRequest, "missing eaten_at")
		return
	}
	if req.Kcal.IsNegative() || req.CarbG.IsNegative() || req.ProteinG.IsNegative() || req.FatG.IsNegative() {
		writeError(w, http.StatusBadRequest, "nutrient amounts must not be negative")
		return
	}

	meal := &models.Meal{
		EatenAt:  req.EatenAt,
		Kcal:     req.Kcal,
		CarbG:    req.CarbG,
		ProteinG: req.ProteinG,
		FatG:     req.FatG,
	}
	if err := s.intake.RecordMeal(r.Context(), member, meal); err != nil {
		s.writeServiceError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps service errors onto HTTP statuses. A missing
// profile snapshot is a client-visible precondition failure; everything
// else, including broken reference ids, stays an opaque 500.
func (s *RESTServer) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, common.ErrNoProfileSnapshot) {
		writeError(w, http.StatusBadRequest, common.ErrNoProfileSnapshot.Error())
		return
	}
	s.logger.Error(ctx, "request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	_ = encoder.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
