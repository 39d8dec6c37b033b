package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"taru_backend/internal/model"
	"taru_backend/internal/repository"
	"taru_backend/internal/util"
	"taru_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	// DefaultWindowDays is the length of the dashboard's daily XP series.
	DefaultWindowDays = 7

	// MaxWindowDays bounds the series a single request may ask for.
	MaxWindowDays = 365

	summaryCacheTTL = 5 * time.Minute
	lockExpiry      = 10 * time.Minute
)

// ProgressService owns the activity ledger: XP recording, streak upkeep and
// the dashboard summary. Writes for one student are serialized by a keyed
// mutex on top of a row-locking transaction, so duplicate submissions
// cannot race the read-modify-write of the ledger.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	PathRepo     *repository.LearningPathRepository
	Redis        *redis.Client
	DB           *gorm.DB

	mu    sync.Mutex
	locks map[uint]*learnerLock
}

// learnerLock pairs a mutex with its last activity so idle entries can be
// swept, same as the rate limiter's visitor map.
type learnerLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	pathRepo *repository.LearningPathRepository,
	rdb *redis.Client,
	db *gorm.DB,
) *ProgressService {
	s := &ProgressService{
		ProgressRepo: progressRepo,
		PathRepo:     pathRepo,
		Redis:        rdb,
		DB:           db,
		locks:        make(map[uint]*learnerLock),
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			s.sweepIdleLocks()
		}
	}()

	return s
}

// ActivityResult is what the client gets back after recording activity.
type ActivityResult struct {
	XP               int      `json:"xp"`
	Streak           int      `json:"streak"`
	CompletedModules []string `json:"completedModules"`
}

// DayActivity is one point of the daily XP series. Days with no recorded
// activity appear with zero XP rather than being omitted.
type DayActivity struct {
	Day string `json:"day"`
	XP  int    `json:"xp"`
}

// Summary is the aggregate view the dashboards consume.
type Summary struct {
	XP              int           `json:"xp"`
	Streak          int           `json:"streak"`
	CompletedCount  int           `json:"completedCount"`
	TotalModules    int           `json:"totalModules"`
	CompletionRatio float64       `json:"completionRatio"`
	WeeklySeries    []DayActivity `json:"weeklySeries"`
}

// NextStreak applies the streak continuation rule for an activity recorded
// on today's calendar day. lastActiveDay is the most recent day with
// recorded activity, nil when there is none.
//
// Same day: no change, the transition already happened today. Yesterday:
// the streak extends by one. Any longer gap, or no prior activity: today is
// day one of a new streak.
func NextStreak(current int, lastActiveDay *time.Time, today time.Time) int {
	if lastActiveDay == nil {
		return 1
	}
	switch gap := util.DaysBetween(*lastActiveDay, today); {
	case gap == 0:
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// FillDailySeries expands sparse ledger entries into a fixed-length series
// of windowDays consecutive days ending at today, oldest first.
func FillDailySeries(entries []model.ActivityEntry, today time.Time, windowDays int) []DayActivity {
	byDay := make(map[string]int, len(entries))
	for _, e := range entries {
		byDay[util.DayOf(e.Day).Format("2006-01-02")] += e.XPEarned
	}

	series := make([]DayActivity, 0, windowDays)
	start := util.DayOf(today).AddDate(0, 0, -(windowDays - 1))
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series = append(series, DayActivity{Day: day, XP: byDay[day]})
	}
	return series
}

// lockFor returns the per-student mutex, creating it on first use.
func (s *ProgressService) lockFor(userID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &learnerLock{}
		s.locks[userID] = l
	}
	l.lastUsed = time.Now()
	return &l.mu
}

// sweepIdleLocks drops lock entries idle past lockExpiry. Only an unheld
// lock is removed; in the rare window where a waiter still holds a swept
// mutex, the row lock inside the transaction keeps writes serialized.
func (s *ProgressService) sweepIdleLocks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, l := range s.locks {
		if time.Since(l.lastUsed) > lockExpiry && l.mu.TryLock() {
			delete(s.locks, id)
			l.mu.Unlock()
		}
	}
}

// activityStore is the slice of the progress store RecordActivity needs
// inside its transaction. The repository satisfies it through
// gormActivityStore; tests satisfy it with an in-memory ledger.
type activityStore interface {
	HasCompleted(userID uint, moduleID string) (bool, error)
	ProgressForUpdate(userID uint) (*model.Progress, error)
	CreateProgress(progress *model.Progress) error
	SaveProgress(progress *model.Progress) error
	EntryForDay(userID uint, day time.Time) (*model.ActivityEntry, error)
	CreateEntry(entry *model.ActivityEntry) error
	SaveEntry(entry *model.ActivityEntry) error
	CreateCompletion(completion *model.ModuleCompletion) error
}

// gormActivityStore binds the progress repository to one transaction.
type gormActivityStore struct {
	repo *repository.ProgressRepository
	tx   *gorm.DB
}

func (g gormActivityStore) HasCompleted(userID uint, moduleID string) (bool, error) {
	return g.repo.HasCompleted(g.tx, userID, moduleID)
}

func (g gormActivityStore) ProgressForUpdate(userID uint) (*model.Progress, error) {
	return g.repo.FindByUserForUpdate(g.tx, userID)
}

func (g gormActivityStore) CreateProgress(progress *model.Progress) error {
	return g.repo.Create(g.tx, progress)
}

func (g gormActivityStore) SaveProgress(progress *model.Progress) error {
	return g.repo.Save(g.tx, progress)
}

func (g gormActivityStore) EntryForDay(userID uint, day time.Time) (*model.ActivityEntry, error) {
	return g.repo.FindEntry(g.tx, userID, day)
}

func (g gormActivityStore) CreateEntry(entry *model.ActivityEntry) error {
	return g.repo.CreateEntry(g.tx, entry)
}

func (g gormActivityStore) SaveEntry(entry *model.ActivityEntry) error {
	return g.repo.SaveEntry(g.tx, entry)
}

func (g gormActivityStore) CreateCompletion(completion *model.ModuleCompletion) error {
	return g.repo.CreateCompletion(g.tx, completion)
}

// applyActivity is the ledger write itself: duplicate-completion check,
// streak transition, per-day entry merge, XP accrual, completion insert.
// A duplicate moduleID rejects the whole call before any XP is written.
// Callers run it inside a transaction holding the progress row lock.
func applyActivity(store activityStore, userID uint, now time.Time, xpEarned int, moduleID string) error {
	day := util.DayOf(now)

	if moduleID != "" {
		done, err := store.HasCompleted(userID, moduleID)
		if err != nil {
			return err
		}
		if done {
			return util.ErrAlreadyCompleted
		}
	}

	progress, err := store.ProgressForUpdate(userID)
	if err != nil {
		return err
	}
	if progress == nil {
		progress = &model.Progress{UserID: userID}
		if err := store.CreateProgress(progress); err != nil {
			return err
		}
	}

	progress.CurrentStreak = NextStreak(progress.CurrentStreak, progress.LastActiveDay, day)

	entry, err := store.EntryForDay(userID, day)
	if err != nil {
		return err
	}
	if entry == nil {
		entry = &model.ActivityEntry{UserID: userID, Day: day, XPEarned: xpEarned}
		if err := store.CreateEntry(entry); err != nil {
			return err
		}
	} else {
		entry.XPEarned += xpEarned
		if err := store.SaveEntry(entry); err != nil {
			return err
		}
	}

	progress.TotalXP += xpEarned
	progress.LastActiveDay = &day
	if err := store.SaveProgress(progress); err != nil {
		return err
	}

	if moduleID != "" {
		completion := &model.ModuleCompletion{
			UserID:      userID,
			ModuleID:    moduleID,
			CompletedAt: now,
		}
		if err := store.CreateCompletion(completion); err != nil {
			return err
		}
	}

	return nil
}

// RecordActivity books xpEarned on now's calendar day for the student and,
// when moduleID is given, marks that module completed. Booking XP for a day
// that already has a ledger entry adds to it; the same module can only ever
// be completed once.
func (s *ProgressService) RecordActivity(ctx context.Context, userID uint, now time.Time, xpEarned int, moduleID string) (*ActivityResult, error) {
	if xpEarned <= 0 {
		monitoring.ActivityCounter.WithLabelValues("invalid_amount").Inc()
		return nil, util.ErrInvalidAmount
	}

	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return applyActivity(gormActivityStore{repo: s.ProgressRepo, tx: tx}, userID, now, xpEarned, moduleID)
	})
	if err != nil {
		if errors.Is(err, util.ErrAlreadyCompleted) {
			monitoring.ActivityCounter.WithLabelValues("already_completed").Inc()
		} else {
			monitoring.ActivityCounter.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	monitoring.ActivityCounter.WithLabelValues("recorded").Inc()
	s.invalidateSummary(ctx, userID)

	progress, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.ProgressRepo.CompletedModuleIDs(userID)
	if err != nil {
		return nil, err
	}

	return &ActivityResult{
		XP:               progress.TotalXP,
		Streak:           progress.CurrentStreak,
		CompletedModules: completed,
	}, nil
}

// Summary builds the dashboard aggregate for a student. Students with no
// progress row yet get a zero-valued summary, not an error. Results are
// cached briefly in Redis and invalidated on every RecordActivity.
func (s *ProgressService) Summary(ctx context.Context, userID uint, windowDays int) (*Summary, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if windowDays > MaxWindowDays {
		return nil, util.ErrInvalidArgument
	}

	// only the default window is cached; odd windows are rare and cheap
	cacheable := windowDays == DefaultWindowDays
	cacheKey := summaryCacheKey(userID)
	if s.Redis != nil && cacheable {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached Summary
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	today := util.DayOf(time.Now())

	progress, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	totalModules, err := s.PathRepo.CountModules()
	if err != nil {
		return nil, err
	}

	completedCount, err := s.ProgressRepo.CountCompleted(userID)
	if err != nil {
		return nil, err
	}

	from := today.AddDate(0, 0, -(windowDays - 1))
	entries, err := s.ProgressRepo.EntriesInRange(userID, from, today)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		CompletedCount: int(completedCount),
		TotalModules:   int(totalModules),
		WeeklySeries:   FillDailySeries(entries, today, windowDays),
	}
	if progress != nil {
		summary.XP = progress.TotalXP
		summary.Streak = progress.CurrentStreak
	}
	if totalModules > 0 {
		summary.CompletionRatio = float64(completedCount) / float64(totalModules)
	}

	if s.Redis != nil && cacheable {
		if data, err := json.Marshal(summary); err == nil {
			s.Redis.Set(ctx, cacheKey, data, summaryCacheTTL)
		}
	}

	return summary, nil
}

// CompletedModules lists the student's finished module ids.
func (s *ProgressService) CompletedModules(userID uint) ([]string, error) {
	return s.ProgressRepo.CompletedModuleIDs(userID)
}

// History returns the full ledger, oldest day first.
func (s *ProgressService) History(userID uint) ([]model.ActivityEntry, error) {
	return s.ProgressRepo.AllEntries(userID)
}

func (s *ProgressService) invalidateSummary(ctx context.Context, userID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, summaryCacheKey(userID))
}

func summaryCacheKey(userID uint) string {
	return fmt.Sprintf("progress:summary:%d", userID)
}
