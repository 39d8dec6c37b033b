package controller

import (
	"taru_backend/internal/repository"
	"taru_backend/internal/service"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TeacherController struct {
	UserRepo        *repository.UserRepository
	ProgressService *service.ProgressService
}

func NewTeacherController(userRepo *repository.UserRepository, progressService *service.ProgressService) *TeacherController {
	return &TeacherController{
		UserRepo:        userRepo,
		ProgressService: progressService,
	}
}

// GetStudents godoc
// @Summary Class roster with progress
// @Description Every student account with their XP, streak and completed modules.
// @Tags teacher
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/teacher/students [get]
func (c *TeacherController) GetStudents(ctx *gin.Context) {
	students, err := c.UserRepo.FindStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	roster := make([]gin.H, 0, len(students))
	for _, s := range students {
		summary, err := c.ProgressService.Summary(ctx.Request.Context(), s.ID, 0)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		completed, err := c.ProgressService.CompletedModules(s.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		roster = append(roster, gin.H{
			"id":               s.ID,
			"fullName":         s.FullName,
			"email":            s.Email,
			"xp":               summary.XP,
			"streak":           summary.Streak,
			"completedModules": completed,
		})
	}

	util.Success(ctx, gin.H{"students": roster})
}
