package database

import (
	"fmt"
	"log"
	"taru_backend/internal/config"
	"taru_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Progress{},
		&model.ActivityEntry{},
		&model.ModuleCompletion{},
		&model.LearningPath{},
		&model.LearningModule{},
		&model.Announcement{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedLearningPaths(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedLearningPaths installs the default catalog on an empty database.
// The catalog is static content; existing rows are never touched.
func seedLearningPaths(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.LearningPath{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaultPaths := []model.LearningPath{
		{
			Title:       "Introduction to Web Development",
			Description: "Learn the basics of building websites and web applications.",
			Interest:    "Technology",
			Modules: []model.LearningModule{
				{ModuleID: "tech-101", Title: "HTML Basics", Description: "Learn the structure of web pages.", XPValue: 20, Position: 1},
				{ModuleID: "tech-102", Title: "CSS Fundamentals", Description: "Style your web pages.", XPValue: 25, Position: 2},
				{ModuleID: "tech-103", Title: "JavaScript Essentials", Description: "Add interactivity to your sites.", XPValue: 30, Position: 3},
				{ModuleID: "tech-104", Title: "Intro to React", Description: "Build powerful user interfaces.", XPValue: 40, Position: 4},
			},
		},
		{
			Title:       "Fundamentals of Digital Art",
			Description: "Explore the world of digital creativity and design.",
			Interest:    "Art",
			Modules: []model.LearningModule{
				{ModuleID: "art-101", Title: "Intro to Digital Painting", Description: "Learn digital brushes and layers.", XPValue: 20, Position: 1},
				{ModuleID: "art-102", Title: "Color Theory for Artists", Description: "Understand how colors work together.", XPValue: 25, Position: 2},
				{ModuleID: "art-103", Title: "Character Design Basics", Description: "Create your own unique characters.", XPValue: 30, Position: 3},
			},
		},
		{
			Title:       "The World of Science",
			Description: "Discover the wonders of biology, chemistry, and physics.",
			Interest:    "Science",
			Modules: []model.LearningModule{
				{ModuleID: "sci-101", Title: "Biology: The Cell", Description: "The basic building block of life.", XPValue: 20, Position: 1},
				{ModuleID: "sci-102", Title: "Chemistry: The Atom", Description: "Understanding matter at its core.", XPValue: 25, Position: 2},
				{ModuleID: "sci-103", Title: "Physics: Forces and Motion", Description: "How the universe moves.", XPValue: 30, Position: 3},
			},
		},
		{
			Title:       "Exploring Mathematics",
			Description: "Journey through the most important concepts in mathematics.",
			Interest:    "Mathematics",
			Modules: []model.LearningModule{
				{ModuleID: "math-101", Title: "Algebra Fundamentals", Description: "The language of symbols.", XPValue: 20, Position: 1},
				{ModuleID: "math-102", Title: "Geometry and Shapes", Description: "Understanding space and form.", XPValue: 25, Position: 2},
				{ModuleID: "math-103", Title: "Introduction to Calculus", Description: "The study of change.", XPValue: 35, Position: 3},
			},
		},
	}

	for _, p := range defaultPaths {
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d default learning paths", len(defaultPaths))
	return nil
}
