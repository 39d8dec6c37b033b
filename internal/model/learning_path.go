package model

// LearningPath groups catalog modules under a single interest tag.
// Paths and their modules are seed data; students never write to them.
// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title       string           `gorm:"size:255;unique;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	Interest    string           `gorm:"size:100;index;not null" json:"interest"`
	Modules     []LearningModule `gorm:"foreignKey:PathID" json:"modules"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// LearningModule is one completable unit inside a path. ModuleID is the
// stable external identifier used by completions and recommendations;
// Position fixes catalog order inside the path.
// swagger:model LearningModule
type LearningModule struct {
	BaseModel
	PathID      uint   `gorm:"index;type:bigint unsigned;not null" json:"-"`
	ModuleID    string `gorm:"size:64;unique;not null" json:"moduleId"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	XPValue     int    `gorm:"default:20" json:"xpValue"`
	Position    int    `gorm:"default:0" json:"position"`
}

func (LearningModule) TableName() string {
	return "learning_modules"
}
