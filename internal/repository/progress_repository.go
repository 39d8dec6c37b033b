package repository

import (
	"errors"
	"taru_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindByUser returns the student's progress row, or nil when none exists yet.
func (r *ProgressRepository) FindByUser(userID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// FindByUserForUpdate loads the progress row under a row lock. Must run
// inside a transaction; callers creating the row on first activity pass the
// same tx so the insert and later updates stay atomic.
func (r *ProgressRepository) FindByUserForUpdate(tx *gorm.DB, userID uint) (*model.Progress, error) {
	var progress model.Progress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Create(tx *gorm.DB, progress *model.Progress) error {
	return tx.Create(progress).Error
}

func (r *ProgressRepository) Save(tx *gorm.DB, progress *model.Progress) error {
	return tx.Save(progress).Error
}

// FindEntry returns the ledger entry for one calendar day, or nil.
func (r *ProgressRepository) FindEntry(tx *gorm.DB, userID uint, day time.Time) (*model.ActivityEntry, error) {
	var entry model.ActivityEntry
	err := tx.Where("user_id = ? AND day = ?", userID, day).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ProgressRepository) CreateEntry(tx *gorm.DB, entry *model.ActivityEntry) error {
	return tx.Create(entry).Error
}

func (r *ProgressRepository) SaveEntry(tx *gorm.DB, entry *model.ActivityEntry) error {
	return tx.Save(entry).Error
}

// EntriesInRange returns ledger entries with from <= day <= to, oldest first.
func (r *ProgressRepository) EntriesInRange(userID uint, from, to time.Time) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.DB.Where("user_id = ? AND day BETWEEN ? AND ?", userID, from, to).
		Order("day ASC").
		Find(&entries).Error
	return entries, err
}

func (r *ProgressRepository) AllEntries(userID uint) ([]model.ActivityEntry, error) {
	var entries []model.ActivityEntry
	err := r.DB.Where("user_id = ?", userID).
		Order("day ASC").
		Find(&entries).Error
	return entries, err
}

// HasCompleted reports whether the student already completed a module.
func (r *ProgressRepository) HasCompleted(tx *gorm.DB, userID uint, moduleID string) (bool, error) {
	var count int64
	err := tx.Model(&model.ModuleCompletion{}).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Count(&count).Error
	return count > 0, err
}

func (r *ProgressRepository) CreateCompletion(tx *gorm.DB, completion *model.ModuleCompletion) error {
	return tx.Create(completion).Error
}

// CompletedModuleIDs lists the module ids a student has finished, in the
// order they were completed.
func (r *ProgressRepository) CompletedModuleIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.ModuleCompletion{}).
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Pluck("module_id", &ids).Error
	return ids, err
}

func (r *ProgressRepository) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleCompletion{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
