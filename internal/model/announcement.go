package model

// swagger:model Announcement
type Announcement struct {
	BaseModel
	Title    string `gorm:"size:255;not null" json:"title"`
	Message  string `gorm:"type:text;not null" json:"message"`
	AuthorID uint   `gorm:"index;type:bigint unsigned" json:"authorId"`
}

func (Announcement) TableName() string {
	return "announcements"
}
