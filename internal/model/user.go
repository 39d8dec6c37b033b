package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Parent  UserRole = "parent"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// Preferences holds a student's declared interests and learning style,
// collected once after first login.
type Preferences struct {
	Interests []string `json:"interests"`
	Style     string   `json:"style"`
}

// swagger:model User
type User struct {
	BaseModel
	FullName       string      `gorm:"size:100" json:"fullName"`
	Email          string      `gorm:"size:100;unique;not null" json:"email"`
	Password       string      `gorm:"size:100;not null" json:"-"`
	Role           UserRole    `gorm:"type:enum('student','parent','teacher','admin');default:'student'" json:"role"`
	FirstTimeLogin bool        `gorm:"default:true" json:"firstTimeLogin"`
	Preferences    Preferences `gorm:"serializer:json" json:"preferences"`
	Avatar         string      `gorm:"size:255" json:"avatar"`

	// Parent accounts only: the linked student and the parent's aspiration
	// for them. Zero StudentID means no student is linked.
	StudentID  uint   `gorm:"index;type:bigint unsigned" json:"studentId,omitempty"`
	Aspiration string `gorm:"size:255" json:"aspiration,omitempty"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
