package service

import (
	"errors"
	"taru_backend/internal/config"
	"taru_backend/internal/model"
	"taru_backend/internal/repository"
	"taru_backend/internal/util"

	"gorm.io/gorm"
)

// UserService handles profile concerns: first-login name setup, student
// preferences, parent aspiration and the parent-student link.
type UserService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewUserService(userRepo *repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return user, err
}

// SetupName records a student's display name on their first login, flips
// the first-login flag and returns a re-issued token reflecting it. Calling
// it again after setup is done is rejected.
func (s *UserService) SetupName(userID uint, fullName string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", nil, util.ErrUserNotFound
	}
	if !user.FirstTimeLogin {
		return "", nil, util.ErrSetupDone
	}

	user.FullName = fullName
	user.FirstTimeLogin = false
	if err := s.UserRepo.Update(user); err != nil {
		return "", nil, err
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *UserService) GetPreferences(userID uint) (*model.Preferences, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	prefs := user.Preferences
	if prefs.Interests == nil {
		prefs.Interests = []string{}
	}
	return &prefs, nil
}

func (s *UserService) UpdatePreferences(userID uint, prefs model.Preferences) (*model.Preferences, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if prefs.Interests == nil {
		prefs.Interests = []string{}
	}
	user.Preferences = prefs
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return &user.Preferences, nil
}

func (s *UserService) GetAspiration(userID uint) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}
	return user.Aspiration, nil
}

func (s *UserService) UpdateAspiration(userID uint, aspiration string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}
	user.Aspiration = aspiration
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return user.Aspiration, nil
}

// LinkedStudent resolves the student account a parent is linked to.
func (s *UserService) LinkedStudent(parentID uint) (*model.User, error) {
	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if parent.StudentID == 0 {
		return nil, util.ErrStudentNotLinked
	}
	student, err := s.UserRepo.FindByID(parent.StudentID)
	if err != nil {
		return nil, util.ErrStudentNotLinked
	}
	return student, nil
}

// UnlinkStudent clears a parent's student link.
func (s *UserService) UnlinkStudent(parentID uint) error {
	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		return util.ErrUserNotFound
	}
	parent.StudentID = 0
	return s.UserRepo.Update(parent)
}

// RelinkStudent points a parent at a different student after validating the
// target really is a student account.
func (s *UserService) RelinkStudent(parentID, studentID uint) (*model.User, error) {
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil || student.Role != model.Student {
		return nil, util.ErrStudentNotFound
	}

	parent, err := s.UserRepo.FindByID(parentID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	parent.StudentID = student.ID
	if err := s.UserRepo.Update(parent); err != nil {
		return nil, err
	}
	return student, nil
}

// ListStudents returns the roster used by parent registration: ids and
// emails only, no progress data.
func (s *UserService) ListStudents() ([]model.User, error) {
	return s.UserRepo.FindStudents()
}

func (s *UserService) UpdateAvatar(userID uint, url string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	user.Avatar = url
	return s.UserRepo.Update(user)
}
