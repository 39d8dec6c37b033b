package repository

import (
	"taru_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

// FindStudents returns every student account, ordered by creation.
func (r *UserRepository) FindStudents() ([]model.User, error) {
	var students []model.User
	err := r.DB.Where("role = ?", model.Student).
		Order("created_at ASC").
		Find(&students).Error
	return students, err
}

// FindParentOfStudent locates the parent account linked to a student, if any.
func (r *UserRepository) FindParentOfStudent(studentID uint) (*model.User, error) {
	var parent model.User
	err := r.DB.Where("student_id = ? AND role = ?", studentID, model.Parent).
		First(&parent).Error
	if err != nil {
		return nil, err
	}
	return &parent, nil
}
