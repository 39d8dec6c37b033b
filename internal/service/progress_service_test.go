package service

import (
	"context"
	"testing"
	"time"

	"taru_backend/internal/model"
	"taru_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextStreakFirstActivity(t *testing.T) {
	today := day(2024, 3, 15)

	assert.Equal(t, 1, NextStreak(0, nil, today))
}

func TestNextStreakSameDay(t *testing.T) {
	today := day(2024, 3, 15)
	last := today

	// a second activity on the same day must not grow the streak
	assert.Equal(t, 4, NextStreak(4, &last, today))
}

func TestNextStreakConsecutiveDays(t *testing.T) {
	streak := 0
	var last *time.Time

	for i := 0; i < 3; i++ {
		today := day(2024, 3, 15).AddDate(0, 0, i)
		streak = NextStreak(streak, last, today)
		d := today
		last = &d
	}

	assert.Equal(t, 3, streak)
}

func TestNextStreakResetsAfterGap(t *testing.T) {
	last := day(2024, 3, 15)

	assert.Equal(t, 1, NextStreak(6, &last, day(2024, 3, 17)))
	assert.Equal(t, 1, NextStreak(6, &last, day(2024, 4, 15)))
}

func TestNextStreakAcrossMonthBoundary(t *testing.T) {
	last := day(2024, 2, 29)

	assert.Equal(t, 3, NextStreak(2, &last, day(2024, 3, 1)))
}

func TestFillDailySeriesEmptyLedger(t *testing.T) {
	today := day(2024, 3, 15)

	series := FillDailySeries(nil, today, DefaultWindowDays)

	assert.Len(t, series, DefaultWindowDays)
	assert.Equal(t, "2024-03-09", series[0].Day)
	assert.Equal(t, "2024-03-15", series[len(series)-1].Day)
	for _, p := range series {
		assert.Zero(t, p.XP)
	}
}

func TestFillDailySeriesFillsGaps(t *testing.T) {
	today := day(2024, 3, 15)
	entries := []model.ActivityEntry{
		{UserID: 1, Day: day(2024, 3, 15), XPEarned: 30},
		{UserID: 1, Day: day(2024, 3, 12), XPEarned: 20},
		// outside the window, must not appear
		{UserID: 1, Day: day(2024, 3, 1), XPEarned: 50},
	}

	series := FillDailySeries(entries, today, DefaultWindowDays)

	byDay := make(map[string]int, len(series))
	for _, p := range series {
		byDay[p.Day] = p.XP
	}

	assert.Len(t, series, DefaultWindowDays)
	assert.Equal(t, 20, byDay["2024-03-12"])
	assert.Equal(t, 30, byDay["2024-03-15"])
	assert.Equal(t, 0, byDay["2024-03-13"])
	assert.Equal(t, 0, byDay["2024-03-14"])
	assert.NotContains(t, byDay, "2024-03-01")
}

func TestFillDailySeriesOrderedOldestFirst(t *testing.T) {
	today := day(2024, 3, 15)

	series := FillDailySeries(nil, today, 3)

	assert.Equal(t, []string{"2024-03-13", "2024-03-14", "2024-03-15"},
		[]string{series[0].Day, series[1].Day, series[2].Day})
}

func TestFillDailySeriesCustomWindow(t *testing.T) {
	today := day(2024, 3, 15)
	entries := []model.ActivityEntry{
		{UserID: 1, Day: day(2024, 2, 20), XPEarned: 15},
	}

	series := FillDailySeries(entries, today, 30)

	assert.Len(t, series, 30)
	assert.Equal(t, "2024-02-15", series[0].Day)
	assert.Equal(t, 15, series[5].XP)
}

// memoryLedger is an in-memory activityStore for exercising the ledger
// write without a database.
type memoryLedger struct {
	progress    map[uint]*model.Progress
	entries     map[uint]map[string]*model.ActivityEntry
	completions map[uint][]string
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		progress:    make(map[uint]*model.Progress),
		entries:     make(map[uint]map[string]*model.ActivityEntry),
		completions: make(map[uint][]string),
	}
}

func (m *memoryLedger) HasCompleted(userID uint, moduleID string) (bool, error) {
	for _, id := range m.completions[userID] {
		if id == moduleID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryLedger) ProgressForUpdate(userID uint) (*model.Progress, error) {
	return m.progress[userID], nil
}

func (m *memoryLedger) CreateProgress(progress *model.Progress) error {
	m.progress[progress.UserID] = progress
	return nil
}

func (m *memoryLedger) SaveProgress(progress *model.Progress) error {
	m.progress[progress.UserID] = progress
	return nil
}

func (m *memoryLedger) EntryForDay(userID uint, entryDay time.Time) (*model.ActivityEntry, error) {
	return m.entries[userID][entryDay.Format("2006-01-02")], nil
}

func (m *memoryLedger) CreateEntry(entry *model.ActivityEntry) error {
	if m.entries[entry.UserID] == nil {
		m.entries[entry.UserID] = make(map[string]*model.ActivityEntry)
	}
	m.entries[entry.UserID][entry.Day.Format("2006-01-02")] = entry
	return nil
}

func (m *memoryLedger) SaveEntry(entry *model.ActivityEntry) error {
	return m.CreateEntry(entry)
}

func (m *memoryLedger) CreateCompletion(completion *model.ModuleCompletion) error {
	m.completions[completion.UserID] = append(m.completions[completion.UserID], completion.ModuleID)
	return nil
}

func (m *memoryLedger) xpSum(userID uint) int {
	total := 0
	for _, e := range m.entries[userID] {
		total += e.XPEarned
	}
	return total
}

func TestApplyActivitySameDayMergesEntry(t *testing.T) {
	store := newMemoryLedger()
	morning := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, applyActivity(store, 1, morning, 20, ""))
	require.NoError(t, applyActivity(store, 1, morning.Add(6*time.Hour), 30, ""))

	assert.Len(t, store.entries[1], 1)
	assert.Equal(t, 50, store.entries[1]["2024-03-15"].XPEarned)
	assert.Equal(t, 50, store.progress[1].TotalXP)
	assert.Equal(t, 1, store.progress[1].CurrentStreak)
}

func TestApplyActivityTotalMatchesLedger(t *testing.T) {
	store := newMemoryLedger()
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	for i, xp := range []int{20, 25, 30} {
		require.NoError(t, applyActivity(store, 1, start.AddDate(0, 0, i), xp, ""))
	}

	assert.Equal(t, store.xpSum(1), store.progress[1].TotalXP)
	assert.Equal(t, 75, store.progress[1].TotalXP)
	assert.Equal(t, 3, store.progress[1].CurrentStreak)
}

func TestApplyActivityDuplicateModuleRejected(t *testing.T) {
	store := newMemoryLedger()
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, applyActivity(store, 1, now, 20, "tech-101"))

	err := applyActivity(store, 1, now.Add(time.Hour), 25, "tech-101")

	assert.ErrorIs(t, err, util.ErrAlreadyCompleted)
	// the rejected call must leave no trace, not even partial XP
	assert.Equal(t, 20, store.progress[1].TotalXP)
	assert.Equal(t, 20, store.entries[1]["2024-03-15"].XPEarned)
	assert.Equal(t, []string{"tech-101"}, store.completions[1])
}

func TestApplyActivityStreakResetsAfterMissedDay(t *testing.T) {
	store := newMemoryLedger()
	start := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	require.NoError(t, applyActivity(store, 1, start, 20, ""))
	require.NoError(t, applyActivity(store, 1, start.AddDate(0, 0, 2), 20, ""))

	assert.Equal(t, 1, store.progress[1].CurrentStreak)
	assert.Equal(t, 40, store.progress[1].TotalXP)
}

func TestSummaryRejectsOversizedWindow(t *testing.T) {
	svc := NewProgressService(nil, nil, nil, nil)

	_, err := svc.Summary(context.Background(), 1, MaxWindowDays+1)

	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestSweepIdleLocksDropsStaleEntries(t *testing.T) {
	svc := NewProgressService(nil, nil, nil, nil)

	svc.lockFor(1)
	svc.locks[1].lastUsed = time.Now().Add(-time.Hour)

	svc.sweepIdleLocks()

	assert.NotContains(t, svc.locks, uint(1))
}

func TestSweepIdleLocksKeepsHeldLocks(t *testing.T) {
	svc := NewProgressService(nil, nil, nil, nil)

	held := svc.lockFor(2)
	held.Lock()
	defer held.Unlock()
	svc.locks[2].lastUsed = time.Now().Add(-time.Hour)

	svc.sweepIdleLocks()

	assert.Contains(t, svc.locks, uint(2))
}
