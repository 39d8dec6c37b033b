package service

import (
	"fmt"
	"strings"
	"taru_backend/internal/model"
	"taru_backend/internal/repository"
	"taru_backend/internal/util"
)

// DefaultRecommendationLimit caps how many modules a student is steered to.
const DefaultRecommendationLimit = 5

// RecommendationService derives a student's suggested modules from their
// declared interests and what they have already completed. Read-only.
type RecommendationService struct {
	PathRepo     *repository.LearningPathRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
}

func NewRecommendationService(
	pathRepo *repository.LearningPathRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
) *RecommendationService {
	return &RecommendationService{
		PathRepo:     pathRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
	}
}

// RecommendedStep is one entry of the suggested path shown on the analysis page.
type RecommendedStep struct {
	ModuleID    string `json:"moduleId"`
	Step        string `json:"step"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// Analysis is the student's personalized overview: interest profile, the
// linked parent's aspiration, and the recommended module path.
type Analysis struct {
	HasPreferences      bool              `json:"hasPreferences"`
	Interests           []string          `json:"interests"`
	LearningStyle       string            `json:"learningStyle"`
	HasParentAspiration bool              `json:"hasParentAspiration"`
	ParentName          string            `json:"parentName,omitempty"`
	ParentAspiration    string            `json:"parentAspiration,omitempty"`
	RecommendedPath     []RecommendedStep `json:"recommendedPath"`
	Insights            string            `json:"insights"`
}

// FilterModules selects catalog modules matching the learner's interests,
// drops completed ones, keeps catalog order and truncates to limit.
// Empty interests produce an empty list: a student with no declared
// interests gets no recommendations rather than the whole catalog.
func FilterModules(paths []model.LearningPath, interests []string, completed []string, limit int) ([]model.LearningModule, error) {
	if limit < 0 {
		return nil, util.ErrInvalidArgument
	}
	if len(interests) == 0 || limit == 0 {
		return []model.LearningModule{}, nil
	}

	interestSet := make(map[string]bool, len(interests))
	for _, in := range interests {
		interestSet[in] = true
	}
	completedSet := make(map[string]bool, len(completed))
	for _, id := range completed {
		completedSet[id] = true
	}

	result := make([]model.LearningModule, 0, limit)
	for _, path := range paths {
		if !interestSet[path.Interest] {
			continue
		}
		for _, m := range path.Modules {
			if completedSet[m.ModuleID] {
				continue
			}
			result = append(result, m)
			if len(result) == limit {
				return result, nil
			}
		}
	}
	return result, nil
}

// Recommend returns the next modules a student should take.
func (s *RecommendationService) Recommend(userID uint, limit int) ([]model.LearningModule, error) {
	if limit < 0 {
		return nil, util.ErrInvalidArgument
	}
	if limit == 0 {
		limit = DefaultRecommendationLimit
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	paths, err := s.PathRepo.FindByInterests(user.Preferences.Interests)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CompletedModuleIDs(userID)
	if err != nil {
		return nil, err
	}

	return FilterModules(paths, user.Preferences.Interests, completed, limit)
}

// Analyze assembles the analysis page payload for a student.
func (s *RecommendationService) Analyze(userID uint) (*Analysis, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	modules, err := s.Recommend(userID, DefaultRecommendationLimit)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		HasPreferences:  len(user.Preferences.Interests) > 0 && user.Preferences.Style != "",
		Interests:       user.Preferences.Interests,
		LearningStyle:   user.Preferences.Style,
		RecommendedPath: make([]RecommendedStep, 0, len(modules)),
	}

	parent, err := s.UserRepo.FindParentOfStudent(userID)
	if err == nil && parent != nil && parent.Aspiration != "" {
		analysis.HasParentAspiration = true
		analysis.ParentName = parent.FullName
		analysis.ParentAspiration = parent.Aspiration
	}

	for _, m := range modules {
		analysis.RecommendedPath = append(analysis.RecommendedPath, RecommendedStep{
			ModuleID:    m.ModuleID,
			Step:        m.Title,
			Description: m.Description,
			Done:        false,
		})
	}

	analysis.Insights = buildInsights(user.Preferences.Interests, analysis.ParentAspiration)
	return analysis, nil
}

func buildInsights(interests []string, aspiration string) string {
	var b strings.Builder
	if len(interests) > 0 {
		fmt.Fprintf(&b, "Based on your interest in %s, we've curated a list of modules to get you started.", strings.Join(interests, ", "))
	} else {
		b.WriteString("Set your interests in preferences to unlock a personalized module path.")
	}
	if aspiration != "" {
		fmt.Fprintf(&b, " To align with your parent's aspiration of you becoming a %s, we're prioritizing modules that build foundational skills in relevant areas.", aspiration)
	}
	b.WriteString(" As you complete modules, your recommendations will adapt.")
	return b.String()
}
