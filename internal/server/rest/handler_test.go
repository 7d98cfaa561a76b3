package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/server/auth"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

const testSecret = "test-secret"

type fakeIntake struct {
	gotMember *models.Member
	gotMonth  datex.YearMonth
	gotDay    time.Time
	gotMeal   *models.Meal

	calendarOut []models.IntakeSummary
	calendarErr error
	summaryOut  models.IntakeSummary
	summaryErr  error
	detailOut   models.IntakeDetail
	detailErr   error
	mealErr     error
}

func (f *fakeIntake) MonthlyCalendar(ctx context.Context, member *models.Member, month datex.YearMonth) ([]models.IntakeSummary, error) {
	f.gotMember, f.gotMonth = member, month
	return f.calendarOut, f.calendarErr
}

func (f *fakeIntake) DailySummary(ctx context.Context, member *models.Member, day time.Time) (models.IntakeSummary, error) {
	f.gotMember, f.gotDay = member, day
	return f.summaryOut, f.summaryErr
}

func (f *fakeIntake) DailyDetail(ctx context.Context, member *models.Member, day time.Time) (models.IntakeDetail, error) {
	f.gotMember, f.gotDay = member, day
	return f.detailOut, f.detailErr
}

func (f *fakeIntake) RecordMeal(ctx context.Context, member *models.Member, meal *models.Meal) error {
	f.gotMember, f.gotMeal = member, meal
	return f.mealErr
}

type fakeMembers struct {
	out *models.Member
	err error
}

func (f *fakeMembers) GetByID(ctx context.Context, id string) (*models.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil && f.out.ID == id {
		return f.out, nil
	}
	return nil, common.ErrorNotFound
}

func knownMember() *models.Member {
	return &models.Member{
		ID:        "m-1",
		Nickname:  "alice",
		Gender:    models.GenderFemale,
		BirthDate: time.Date(1992, 3, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC),
	}
}

func newTestServer(t *testing.T, fi *fakeIntake, fm *fakeMembers) *RESTServer {
	t.Helper()
	s, err := NewRESTServer("127.0.0.1:0", nopLogger{}, fi, fm, testSecret)
	require.NoError(t, err)
	return s
}

func memberToken(t *testing.T, memberID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(memberID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

func doRequest(t *testing.T, s *RESTServer, method, target, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerSchemePrefix+token)
	}
	rr := httptest.NewRecorder()
	s.routes().ServeHTTP(rr, req)
	return rr
}

func TestHandleMonthlyCalendar_OK(t *testing.T) {
	day1, _ := datex.ParseDay("2025-07-01")
	day2, _ := datex.ParseDay("2025-07-02")
	fi := &fakeIntake{calendarOut: []models.IntakeSummary{
		models.SummaryFromGoal(decimal.NewFromInt(1949), day1),
		models.SummaryFromGoal(decimal.NewFromInt(1949), day2),
	}}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/calendar?month=2025-07", memberToken(t, "m-1"), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, datex.YearMonth{Year: 2025, Month: time.July}, fi.gotMonth)
	assert.Equal(t, "m-1", fi.gotMember.ID)

	var got []models.IntakeSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.True(t, got[0].GoalKcal.Equal(decimal.NewFromInt(1949)))
	assert.False(t, got[0].HasRecord)
}

func TestHandleMonthlyCalendar_BadMonth(t *testing.T) {
	s := newTestServer(t, &fakeIntake{}, &fakeMembers{out: knownMember()})

	for _, month := range []string{"", "2025-13", "July-2025"} {
		rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/calendar?month="+month, memberToken(t, "m-1"), nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "month=%q", month)
	}
}

func TestHandleDailySummary_OK(t *testing.T) {
	day, _ := datex.ParseDay("2025-07-10")
	fi := &fakeIntake{summaryOut: models.SummaryFromGoal(decimal.NewFromInt(2100), day)}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/days/2025-07-10/summary", memberToken(t, "m-1"), nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, fi.gotDay.Equal(day))

	var got models.IntakeSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.GoalKcal.Equal(decimal.NewFromInt(2100)))
}

func TestHandleDailyDetail_OK(t *testing.T) {
	day, _ := datex.ParseDay("2025-07-10")
	fi := &fakeIntake{detailOut: models.IntakeDetail{
		Date:      day,
		HasRecord: true,
		GoalKcal:  decimal.NewFromInt(2100),
		GoalCarbG: decimal.RequireFromString("262.5"),
	}}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/days/2025-07-10", memberToken(t, "m-1"), nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var got models.IntakeDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.HasRecord)
	assert.Equal(t, "262.5", got.GoalCarbG.String())
}

func TestHandleDaily_BadDate(t *testing.T) {
	s := newTestServer(t, &fakeIntake{}, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/days/10-07-2025", memberToken(t, "m-1"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, s, http.MethodGet, "/api/v1/intake/days/not-a-date/summary", memberToken(t, "m-1"), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleDailySummary_NoSnapshotIs400(t *testing.T) {
	fi := &fakeIntake{summaryErr: common.ErrNoProfileSnapshot}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/days/2025-07-10/summary", memberToken(t, "m-1"), nil)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrNoProfileSnapshot.Error(), resp.Error)
}

func TestHandleDailyDetail_BrokenReferenceIs500(t *testing.T) {
	// A dangling plan id is corruption and must not surface as a client error.
	fi := &fakeIntake{detailErr: fmt.Errorf("error loading nutrient plan 9: %w", common.ErrorNotFound)}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	rr := doRequest(t, s, http.MethodGet, "/api/v1/intake/days/2025-07-10", memberToken(t, "m-1"), nil)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestHandleRecordMeal_NoContent(t *testing.T) {
	fi := &fakeIntake{}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	body := `{"eaten_at":"2025-07-10T12:30:00Z","kcal":"650.5","carb_g":"80","protein_g":"30","fat_g":"20"}`
	rr := doRequest(t, s, http.MethodPost, "/api/v1/intake/meals", memberToken(t, "m-1"), strings.NewReader(body))

	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, fi.gotMeal)
	assert.Equal(t, "650.5", fi.gotMeal.Kcal.String())
	assert.True(t, fi.gotMeal.EatenAt.Equal(time.Date(2025, 7, 10, 12, 30, 0, 0, time.UTC)))
}

func TestHandleRecordMeal_BadBody(t *testing.T) {
	s := newTestServer(t, &fakeIntake{}, &fakeMembers{out: knownMember()})

	cases := map[string]string{
		"not json":        `{not json`,
		"missing eaten":   `{"kcal":"650.5"}`,
		"negative amount": `{"eaten_at":"2025-07-10T12:30:00Z","kcal":"-1"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := doRequest(t, s, http.MethodPost, "/api/v1/intake/meals", memberToken(t, "m-1"), strings.NewReader(body))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestHandleRecordMeal_ServiceErrorIs500(t *testing.T) {
	fi := &fakeIntake{mealErr: errors.New("db down")}
	s := newTestServer(t, fi, &fakeMembers{out: knownMember()})

	body := `{"eaten_at":"2025-07-10T12:30:00Z","kcal":"650.5"}`
	rr := doRequest(t, s, http.MethodPost, "/api/v1/intake/meals", memberToken(t, "m-1"), strings.NewReader(body))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
