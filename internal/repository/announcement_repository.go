package repository

import (
	"taru_backend/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(announcement *model.Announcement) error {
	return r.DB.Create(announcement).Error
}

// FindAll returns announcements newest first.
func (r *AnnouncementRepository) FindAll() ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := r.DB.Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}

func (r *AnnouncementRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Announcement{}, id).Error
}
