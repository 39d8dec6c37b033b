package controller

import (
	"errors"
	"strconv"
	"taru_backend/internal/service"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	RecommendationService *service.RecommendationService
}

func NewAnalysisController(recommendationService *service.RecommendationService) *AnalysisController {
	return &AnalysisController{RecommendationService: recommendationService}
}

// GetAnalysis godoc
// @Summary Student analysis
// @Description Interest profile, parent aspiration and the recommended module path.
// @Tags analysis
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Analysis}
// @Router /api/analysis [get]
func (c *AnalysisController) GetAnalysis(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	analysis, err := c.RecommendationService.Analyze(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"analysis": analysis})
}

// GetRecommendations godoc
// @Summary Recommended modules
// @Description Uncompleted catalog modules matching the student's interests, catalog order, capped at limit.
// @Tags analysis
// @Produce  json
// @Security ApiKeyAuth
// @Param   limit query int false "maximum number of modules (default 5)"
// @Success 200 {object} util.Response{data=[]model.LearningModule}
// @Router /api/recommendations [get]
func (c *AnalysisController) GetRecommendations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			util.BadRequest(ctx, "limit must be an integer")
			return
		}
		limit = parsed
	}

	modules, err := c.RecommendationService.Recommend(user.UserID, limit)
	if err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			util.BadRequest(ctx, "limit must not be negative")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"modules": modules})
}
