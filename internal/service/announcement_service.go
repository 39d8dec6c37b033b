package service

import (
	"taru_backend/internal/model"
	"taru_backend/internal/repository"
)

type AnnouncementService struct {
	AnnouncementRepo *repository.AnnouncementRepository
}

func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{AnnouncementRepo: announcementRepo}
}

func (s *AnnouncementService) Publish(authorID uint, title, message string) (*model.Announcement, error) {
	announcement := &model.Announcement{
		Title:    title,
		Message:  message,
		AuthorID: authorID,
	}
	if err := s.AnnouncementRepo.Create(announcement); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) List() ([]model.Announcement, error) {
	return s.AnnouncementRepo.FindAll()
}
