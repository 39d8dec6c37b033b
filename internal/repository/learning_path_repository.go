package repository

import (
	"errors"
	"taru_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

// FindAll returns the whole catalog with modules in position order.
func (r *LearningPathRepository) FindAll() ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Order("id ASC").Find(&paths).Error
	return paths, err
}

// FindByInterests returns paths whose interest tag is in the given set,
// preserving catalog order. Empty interests yield an empty result.
func (r *LearningPathRepository) FindByInterests(interests []string) ([]model.LearningPath, error) {
	if len(interests) == 0 {
		return nil, nil
	}
	var paths []model.LearningPath
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("interest IN ?", interests).Order("id ASC").Find(&paths).Error
	return paths, err
}

// FindModule looks up a single catalog module by its external id.
func (r *LearningPathRepository) FindModule(moduleID string) (*model.LearningModule, error) {
	var module model.LearningModule
	err := r.DB.Where("module_id = ?", moduleID).First(&module).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// CountModules reports how many modules the curriculum holds in total.
func (r *LearningPathRepository) CountModules() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningModule{}).Count(&count).Error
	return count, err
}
