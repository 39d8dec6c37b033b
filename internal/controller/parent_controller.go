package controller

import (
	"errors"
	"net/http"
	"taru_backend/internal/service"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ParentController struct {
	UserService     *service.UserService
	ProgressService *service.ProgressService
}

func NewParentController(userService *service.UserService, progressService *service.ProgressService) *ParentController {
	return &ParentController{
		UserService:     userService,
		ProgressService: progressService,
	}
}

// GetAspiration godoc
// @Summary Fetch aspiration
// @Tags parent
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/parent/aspiration [get]
func (c *ParentController) GetAspiration(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	aspiration, err := c.UserService.GetAspiration(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"aspiration": aspiration})
}

// AspirationRequest defines model for saving an aspiration
// swagger:model AspirationRequest
type AspirationRequest struct {
	Aspiration string `json:"aspiration" binding:"max=255"`
}

// UpdateAspiration godoc
// @Summary Save aspiration
// @Description Records what the parent hopes their child will become; feeds the student's analysis insights.
// @Tags parent
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AspirationRequest true "aspiration"
// @Success 200 {object} util.Response
// @Router /api/parent/aspiration [put]
func (c *ParentController) UpdateAspiration(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AspirationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	aspiration, err := c.UserService.UpdateAspiration(user.UserID, req.Aspiration)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"aspiration": aspiration})
}

// GetStudentReport godoc
// @Summary Linked student report
// @Description The linked student's profile with full progress: XP, streak, completed modules and activity history.
// @Tags parent
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/parent/report [get]
func (c *ParentController) GetStudentReport(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	student, err := c.UserService.LinkedStudent(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotLinked) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	summary, err := c.ProgressService.Summary(ctx.Request.Context(), student.ID, service.DefaultWindowDays)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	completed, err := c.ProgressService.CompletedModules(student.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	history, err := c.ProgressService.History(student.ID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	aspiration, err := c.UserService.GetAspiration(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":          student.ID,
		"email":       student.Email,
		"fullName":    student.FullName,
		"role":        student.Role,
		"preferences": student.Preferences,
		"progress": gin.H{
			"xp":               summary.XP,
			"streak":           summary.Streak,
			"completedModules": completed,
			"totalModules":     summary.TotalModules,
			"history":          history,
		},
		"parentAspiration": aspiration,
	})
}

// UnlinkRequest defines model for unlinking a student
// swagger:model UnlinkRequest
type UnlinkRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
}

// UnlinkStudent godoc
// @Summary Unlink student
// @Tags parent
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UnlinkRequest true "student to unlink"
// @Success 200 {object} util.Response
// @Router /api/parent/unlink [post]
func (c *ParentController) UnlinkStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UnlinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.UnlinkStudent(user.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "Student unlinked successfully"})
}

// RelinkRequest defines model for relinking a student
// swagger:model RelinkRequest
type RelinkRequest struct {
	NewStudentID uint `json:"newStudentId" binding:"required"`
}

// RelinkStudent godoc
// @Summary Relink student
// @Description Points the parent account at a different student after validating the target.
// @Tags parent
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body RelinkRequest true "student to link"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/parent/relink [post]
func (c *ParentController) RelinkStudent(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RelinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.UserService.RelinkStudent(user.UserID, req.NewStudentID)
	if err != nil {
		if errors.Is(err, util.ErrStudentNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message": "Student relinked successfully",
		"student": gin.H{
			"id":    student.ID,
			"email": student.Email,
			"name":  student.FullName,
		},
	})
}
