package service

import (
	"testing"

	"taru_backend/internal/model"
	"taru_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func sampleCatalog() []model.LearningPath {
	return []model.LearningPath{
		{
			Title:    "The World of Science",
			Interest: "Science",
			Modules: []model.LearningModule{
				{ModuleID: "sci-101", Title: "Biology: The Cell", Position: 1},
				{ModuleID: "sci-102", Title: "Chemistry: The Atom", Position: 2},
				{ModuleID: "sci-103", Title: "Physics: Forces and Motion", Position: 3},
			},
		},
		{
			Title:    "Fundamentals of Digital Art",
			Interest: "Art",
			Modules: []model.LearningModule{
				{ModuleID: "art-101", Title: "Intro to Digital Painting", Position: 1},
				{ModuleID: "art-102", Title: "Color Theory for Artists", Position: 2},
			},
		},
		{
			Title:    "Introduction to Web Development",
			Interest: "Technology",
			Modules: []model.LearningModule{
				{ModuleID: "tech-101", Title: "HTML Basics", Position: 1},
			},
		},
	}
}

func moduleIDs(modules []model.LearningModule) []string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ModuleID)
	}
	return ids
}

func TestFilterModulesMatchesInterests(t *testing.T) {
	got, err := FilterModules(sampleCatalog(), []string{"Science"}, nil, 10)

	assert.NoError(t, err)
	assert.Equal(t, []string{"sci-101", "sci-102", "sci-103"}, moduleIDs(got))
}

func TestFilterModulesEmptyInterests(t *testing.T) {
	got, err := FilterModules(sampleCatalog(), nil, nil, 10)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterModulesExcludesCompleted(t *testing.T) {
	completed := []string{"sci-101", "sci-103"}

	got, err := FilterModules(sampleCatalog(), []string{"Science"}, completed, 10)

	assert.NoError(t, err)
	assert.Equal(t, []string{"sci-102"}, moduleIDs(got))
}

func TestFilterModulesKeepsCatalogOrder(t *testing.T) {
	got, err := FilterModules(sampleCatalog(), []string{"Art", "Science"}, nil, 10)

	assert.NoError(t, err)
	// catalog order wins over the order interests were declared in
	assert.Equal(t, []string{"sci-101", "sci-102", "sci-103", "art-101", "art-102"}, moduleIDs(got))
}

func TestFilterModulesHonorsLimit(t *testing.T) {
	got, err := FilterModules(sampleCatalog(), []string{"Science", "Art"}, nil, 2)

	assert.NoError(t, err)
	assert.Equal(t, []string{"sci-101", "sci-102"}, moduleIDs(got))
}

func TestFilterModulesZeroLimit(t *testing.T) {
	got, err := FilterModules(sampleCatalog(), []string{"Science"}, nil, 0)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilterModulesNegativeLimit(t *testing.T) {
	_, err := FilterModules(sampleCatalog(), []string{"Science"}, nil, -1)

	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestFilterModulesAllCompleted(t *testing.T) {
	completed := []string{"art-101", "art-102"}

	got, err := FilterModules(sampleCatalog(), []string{"Art"}, completed, 10)

	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildInsightsWithInterests(t *testing.T) {
	insights := buildInsights([]string{"Science", "Art"}, "")

	assert.Contains(t, insights, "Based on your interest in Science, Art")
	assert.NotContains(t, insights, "aspiration")
}

func TestBuildInsightsWithAspiration(t *testing.T) {
	insights := buildInsights([]string{"Science"}, "Doctor")

	assert.Contains(t, insights, "becoming a Doctor")
}

func TestBuildInsightsWithoutPreferences(t *testing.T) {
	insights := buildInsights(nil, "")

	assert.Contains(t, insights, "Set your interests in preferences")
}
