package controller

import (
	"taru_backend/internal/repository"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	PathRepo *repository.LearningPathRepository
}

func NewLearningPathController(pathRepo *repository.LearningPathRepository) *LearningPathController {
	return &LearningPathController{PathRepo: pathRepo}
}

// GetLearningPaths godoc
// @Summary Full catalog
// @Description All learning paths with their modules in catalog order.
// @Tags catalog
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LearningPath}
// @Router /api/learning-paths [get]
func (c *LearningPathController) GetLearningPaths(ctx *gin.Context) {
	paths, err := c.PathRepo.FindAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"learningPaths": paths})
}

// GetModule godoc
// @Summary Single catalog module
// @Tags catalog
// @Produce  json
// @Security ApiKeyAuth
// @Param   moduleId path string true "module id"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Failure 404 {object} util.Response
// @Router /api/modules/{moduleId} [get]
func (c *LearningPathController) GetModule(ctx *gin.Context) {
	moduleID := ctx.Param("moduleId")
	if moduleID == "" {
		util.BadRequest(ctx, "moduleId is required")
		return
	}

	module, err := c.PathRepo.FindModule(moduleID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if module == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"module": module})
}
