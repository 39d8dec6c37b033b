package model

import "time"

// Progress is the per-student aggregate the dashboard reads: lifetime XP,
// the current consecutive-day streak, and the most recent active day the
// streak is anchored to. One row per student, created lazily on the first
// XP-earning event.
//
// Invariant: TotalXP equals the sum of that student's ActivityEntry.XPEarned.
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID        uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	TotalXP       int        `gorm:"default:0" json:"xp"`
	CurrentStreak int        `gorm:"default:0" json:"streak"`
	LastActiveDay *time.Time `json:"lastActiveDay,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}

// ActivityEntry is one day of the activity ledger. The unique index keeps
// at most one row per student per calendar day; recording more XP on the
// same day adds to XPEarned instead of inserting.
// swagger:model ActivityEntry
type ActivityEntry struct {
	BaseModel
	UserID   uint      `gorm:"index:idx_user_activity_day,unique;type:bigint unsigned;not null" json:"userId"`
	Day      time.Time `gorm:"index:idx_user_activity_day,unique;not null" json:"day"`
	XPEarned int       `gorm:"not null" json:"xpEarned"`
}

func (ActivityEntry) TableName() string {
	return "activity_entries"
}

// ModuleCompletion marks a catalog module as done for a student. Completion
// is permanent; the unique index is what makes duplicate submissions
// detectable.
type ModuleCompletion struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_user_module,unique;type:bigint unsigned;not null" json:"userId"`
	ModuleID    string    `gorm:"index:idx_user_module,unique;size:64;not null" json:"moduleId"`
	CompletedAt time.Time `gorm:"not null" json:"completedAt"`
}

func (ModuleCompletion) TableName() string {
	return "module_completions"
}
