// Package services contains server-side business logic. This file implements
// IntakeService: the monthly calendar reconciliation, the single-day intake
// queries, and meal ingestion.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kcaldiary/kcaldiary/internal/common"
	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/dbx"
	"github.com/kcaldiary/kcaldiary/internal/logging"
	"github.com/kcaldiary/kcaldiary/internal/server/cache"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
	"github.com/kcaldiary/kcaldiary/internal/server/nutrient"
	"github.com/kcaldiary/kcaldiary/internal/server/repositories/repomanager"
	"github.com/kcaldiary/kcaldiary/internal/server/timeline"
)

// IntakeService answers "what did the member consume, or what should they
// target, on a given day" for single days and whole months.
type IntakeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	calendar    cache.Calendar
	logger      logging.Logger
}

// NewIntakeService constructs an IntakeService over the given database,
// repositories and month cache.
func NewIntakeService(db *sql.DB, m repomanager.RepositoryManager, calendar cache.Calendar, logger logging.Logger) *IntakeService {
	return &IntakeService{
		db:          db,
		repomanager: m,
		calendar:    calendar,
		logger:      logger.With("module", "intake"),
	}
}

// MonthlyCalendar returns one summary per calendar day of the month, in
// ascending date order. Cached days are served as-is; missing days are
// computed, written back to the cache, and merged in. A fully cached month
// touches no repository at all.
func (s *IntakeService) MonthlyCalendar(ctx context.Context, member *models.Member, month datex.YearMonth) ([]models.IntakeSummary, error) {
	days := month.Days()

	cached, err := s.calendar.GetMonth(ctx, member.ID, month)
	if err != nil {
		return nil, fmt.Errorf("error reading month cache: %w", err)
	}

	missing := make([]time.Time, 0, len(days))
	for _, day := range days {
		if _, ok := cached[day]; !ok {
			missing = append(missing, day)
		}
	}

	computed := map[time.Time]models.IntakeSummary{}
	if len(missing) > 0 {
		computed, err = s.resolveMissingDays(ctx, member, month, missing)
		if err != nil {
			return nil, err
		}
	}

	result := make([]models.IntakeSummary, 0, len(days))
	for _, day := range days {
		if summary, ok := cached[day]; ok {
			result = append(result, summary)
			continue
		}
		result = append(result, computed[day])
	}
	return result, nil
}

// resolveMissingDays computes summaries for the given days with one query
// per collaborator: the snapshot history since account creation, the
// activity level table, and the month's records are each loaded once, no
// matter how many days are missing. Every computed day is persisted to the
// cache before the result is returned.
func (s *IntakeService) resolveMissingDays(ctx context.Context, member *models.Member, month datex.YearMonth, missing []time.Time) (map[time.Time]models.IntakeSummary, error) {
	snaps, err := s.repomanager.Snapshots(s.db).FindInRange(ctx, member.ID, datex.Day(member.CreatedAt), month.Last())
	if err != nil {
		return nil, fmt.Errorf("error loading snapshot history: %w", err)
	}
	tl := timeline.New(snaps)

	levels, err := s.repomanager.ActivityLevels(s.db).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading activity levels: %w", err)
	}
	levelByID := make(map[int64]*models.ActivityLevel, len(levels))
	for _, l := range levels {
		levelByID[l.ID] = l
	}

	records, err := s.repomanager.IntakeRecords(s.db).FindInRange(ctx, member.ID, month.First(), month.Last())
	if err != nil {
		return nil, fmt.Errorf("error loading intake records: %w", err)
	}
	recordByDay := make(map[time.Time]*models.IntakeRecord, len(records))
	for _, r := range records {
		recordByDay[datex.Day(r.Date)] = r
	}

	computed := make(map[time.Time]models.IntakeSummary, len(missing))
	for _, day := range missing {
		summary := summaryFor(day, member, recordByDay[day], tl, levelByID)
		if err := s.calendar.PutDay(ctx, member.ID, month, day, summary); err != nil {
			return nil, fmt.Errorf("error caching day %s: %w", datex.FormatDay(day), err)
		}
		computed[day] = summary
	}
	return computed, nil
}

// summaryFor resolves one day. A record wins over any computed goal. A day
// without a record and without a determinable profile context still gets a
// valid summary with a zero goal, never an error.
func summaryFor(day time.Time, member *models.Member, record *models.IntakeRecord, tl *timeline.Timeline, levels map[int64]*models.ActivityLevel) models.IntakeSummary {
	if record != nil {
		return models.SummaryFromRecord(record)
	}

	goalKcal := decimal.Zero
	if snap, ok := tl.EffectiveAt(day); ok {
		if level, ok := levels[snap.ActivityLevelID]; ok {
			goalKcal = nutrient.CalculateGoalKcal(member, snap, level)
		}
	}
	return models.SummaryFromGoal(goalKcal, day)
}

// DailySummary returns the summary for a single day without touching the
// cache. Unlike the monthly path, a member without any profile snapshot is
// a precondition violation here and yields ErrNoProfileSnapshot.
func (s *IntakeService) DailySummary(ctx context.Context, member *models.Member, day time.Time) (models.IntakeSummary, error) {
	record, err := s.repomanager.IntakeRecords(s.db).GetByDate(ctx, member.ID, day)
	if err == nil {
		return models.SummaryFromRecord(record), nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return models.IntakeSummary{}, fmt.Errorf("error loading intake record: %w", err)
	}

	snap, level, err := s.latestSnapshotWithLevel(ctx, s.db, member)
	if err != nil {
		return models.IntakeSummary{}, err
	}
	return models.SummaryFromGoal(nutrient.CalculateGoalKcal(member, snap, level), day), nil
}

// DailyDetail returns the summary plus the full macronutrient goal
// breakdown for a single day. With a record, the goal kcal frozen on the
// record is split by the member's current plan; without one, the whole
// goal is derived from the latest snapshot.
func (s *IntakeService) DailyDetail(ctx context.Context, member *models.Member, day time.Time) (models.IntakeDetail, error) {
	record, err := s.repomanager.IntakeRecords(s.db).GetByDate(ctx, member.ID, day)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return models.IntakeDetail{}, fmt.Errorf("error loading intake record: %w", err)
	}

	if record != nil {
		snap, err := s.latestSnapshot(ctx, s.db, member)
		if err != nil {
			return models.IntakeDetail{}, err
		}
		plan, err := s.nutrientPlanByID(ctx, snap.NutrientPlanID)
		if err != nil {
			return models.IntakeDetail{}, err
		}
		goal := nutrient.GoalFromKcal(record.GoalKcal, plan)
		return models.IntakeDetail{
			Date:             day,
			HasRecord:        true,
			GoalKcal:         goal.Kcal,
			GoalCarbG:        goal.CarbG,
			GoalProteinG:     goal.ProteinG,
			GoalFatG:         goal.FatG,
			ConsumedKcal:     record.ConsumedKcal,
			ConsumedCarbG:    record.ConsumedCarbG,
			ConsumedProteinG: record.ConsumedProteinG,
			ConsumedFatG:     record.ConsumedFatG,
		}, nil
	}

	snap, level, err := s.latestSnapshotWithLevel(ctx, s.db, member)
	if err != nil {
		return models.IntakeDetail{}, err
	}
	plan, err := s.nutrientPlanByID(ctx, snap.NutrientPlanID)
	if err != nil {
		return models.IntakeDetail{}, err
	}
	goal := nutrient.GoalFor(member, snap, level, plan)
	return models.IntakeDetail{
		Date:         day,
		GoalKcal:     goal.Kcal,
		GoalCarbG:    goal.CarbG,
		GoalProteinG: goal.ProteinG,
		GoalFatG:     goal.FatG,
	}, nil
}

// RecordMeal folds a meal event into the day's intake record, creating the
// record first when the day has none. The write is transactional; the
// cache refresh afterwards is best effort, since the record is already
// durable when it runs.
func (s *IntakeService) RecordMeal(ctx context.Context, member *models.Member, meal *models.Meal) error {
	day := datex.Day(meal.EatenAt)

	var record *models.IntakeRecord
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		recordRepo := s.repomanager.IntakeRecords(tx)

		existing, err := recordRepo.GetByDate(ctx, member.ID, day)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error loading intake record: %w", err)
		}

		if existing == nil {
			snap, level, err := s.latestSnapshotWithLevel(ctx, tx, member)
			if err != nil {
				return err
			}
			record = &models.IntakeRecord{
				ID:       uuid.NewString(),
				MemberID: member.ID,
				Date:     day,
				GoalKcal: nutrient.CalculateGoalKcal(member, snap, level),
			}
			foldMeal(record, meal)
			if _, err := recordRepo.Create(ctx, record); err != nil {
				return fmt.Errorf("error creating intake record: %w", err)
			}
			return nil
		}

		record = existing
		foldMeal(record, meal)
		if err := recordRepo.Update(ctx, record); err != nil {
			return fmt.Errorf("error updating intake record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	month := datex.YearMonthOf(day)
	if err := s.calendar.PutDay(ctx, member.ID, month, day, models.SummaryFromRecord(record)); err != nil {
		s.logger.Error(ctx, "day cache refresh failed after meal",
			"member", member.ID, "date", datex.FormatDay(day), "error", err)
	}
	return nil
}

func foldMeal(record *models.IntakeRecord, meal *models.Meal) {
	record.ConsumedKcal = record.ConsumedKcal.Add(meal.Kcal)
	record.ConsumedCarbG = record.ConsumedCarbG.Add(meal.CarbG)
	record.ConsumedProteinG = record.ConsumedProteinG.Add(meal.ProteinG)
	record.ConsumedFatG = record.ConsumedFatG.Add(meal.FatG)
}

// latestSnapshot returns the member's most recent profile snapshot,
// translating its absence into the precondition error ErrNoProfileSnapshot.
func (s *IntakeService) latestSnapshot(ctx context.Context, db dbx.DBTX, member *models.Member) (*models.ProfileSnapshot, error) {
	snap, err := s.repomanager.Snapshots(db).GetLatest(ctx, member.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrNoProfileSnapshot
		}
		return nil, fmt.Errorf("error loading latest snapshot: %w", err)
	}
	return snap, nil
}

// latestSnapshotWithLevel also resolves the snapshot's activity level. An
// unresolvable level id is data corruption and fails hard, unlike in the
// monthly path.
func (s *IntakeService) latestSnapshotWithLevel(ctx context.Context, db dbx.DBTX, member *models.Member) (*models.ProfileSnapshot, *models.ActivityLevel, error) {
	snap, err := s.latestSnapshot(ctx, db, member)
	if err != nil {
		return nil, nil, err
	}

	level, err := s.repomanager.ActivityLevels(db).GetByID(ctx, snap.ActivityLevelID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading activity level %d: %w", snap.ActivityLevelID, err)
	}
	return snap, level, nil
}

func (s *IntakeService) nutrientPlanByID(ctx context.Context, id int64) (*models.NutrientPlan, error) {
	plan, err := s.repomanager.NutrientPlans(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading nutrient plan %d: %w", id, err)
	}
	return plan, nil
}
