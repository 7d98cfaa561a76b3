// Package rest exposes the intake API over HTTP/JSON. Every route requires
// a bearer token; the middleware resolves it to a member before the
// handlers run.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/logging"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

const shutdownTimeout = 5 * time.Second

// IntakeService is the part of the intake service the handlers consume.
type IntakeService interface {
	MonthlyCalendar(ctx context.Context, member *models.Member, month datex.YearMonth) ([]models.IntakeSummary, error)
	DailySummary(ctx context.Context, member *models.Member, day time.Time) (models.IntakeSummary, error)
	DailyDetail(ctx context.Context, member *models.Member, day time.Time) (models.IntakeDetail, error)
	RecordMeal(ctx context.Context, member *models.Member, meal *models.Meal) error
}

// MemberService resolves authenticated member ids to member rows.
type MemberService interface {
	GetByID(ctx context.Context, id string) (*models.Member, error)
}

type RESTServer struct {
	address   string
	intake    IntakeService
	members   MemberService
	logger    logging.Logger
	jwtSecret []byte
}

func NewRESTServer(a string, l logging.Logger, is IntakeService, ms MemberService, secretKey string) (*RESTServer, error) {
	return &RESTServer{
		address:   a,
		logger:    l.With("module", "rest_server"),
		intake:    is,
		members:   ms,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *RESTServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/v1/intake/calendar", s.withMember(s.handleMonthlyCalendar))
	mux.Handle("GET /api/v1/intake/days/{date}", s.withMember(s.handleDailyDetail))
	mux.Handle("GET /api/v1/intake/days/{date}/summary", s.withMember(s.handleDailySummary))
	mux.Handle("POST /api/v1/intake/meals", s.withMember(s.handleRecordMeal))
	return mux
}

func (s *RESTServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{Handler: s.routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error stopping REST server", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting REST server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
