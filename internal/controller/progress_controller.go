package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"taru_backend/internal/service"
	"taru_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// SubmitActivityRequest defines model for recording activity
// swagger:model SubmitActivityRequest
type SubmitActivityRequest struct {
	XPEarned int    `json:"xpEarned" binding:"required"`
	ModuleID string `json:"moduleId"`
}

// SubmitActivity godoc
// @Summary Record XP-earning activity
// @Description Books XP on today's ledger entry and, when moduleId is set, marks that module completed. A module can only be completed once.
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitActivityRequest true "activity payload"
// @Success 200 {object} util.Response{data=service.ActivityResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/progress/activity [post]
func (c *ProgressController) SubmitActivity(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.RecordActivity(ctx.Request.Context(), user.UserID, time.Now(), req.XPEarned, req.ModuleID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidAmount):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAlreadyCompleted):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// GetProgress godoc
// @Summary Progress snapshot
// @Description XP, streak, completed modules and curriculum size for the logged-in student.
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.ProgressService.Summary(ctx.Request.Context(), user.UserID, service.DefaultWindowDays)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	completed, err := c.ProgressService.CompletedModules(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"xp":               summary.XP,
		"streak":           summary.Streak,
		"completedModules": completed,
		"totalModules":     summary.TotalModules,
	})
}

// GetDashboard godoc
// @Summary Dashboard summary
// @Description Aggregated progress view: XP, streak, completion ratio and the daily XP series for the requested window (default 7 days).
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "series window in days (1-365, default 7)"
// @Success 200 {object} util.Response{data=service.Summary}
// @Router /api/dashboard [get]
func (c *ProgressController) GetDashboard(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	windowDays := service.DefaultWindowDays
	if raw := ctx.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > service.MaxWindowDays {
			util.BadRequest(ctx, fmt.Sprintf("days must be between 1 and %d", service.MaxWindowDays))
			return
		}
		windowDays = parsed
	}

	summary, err := c.ProgressService.Summary(ctx.Request.Context(), user.UserID, windowDays)
	if err != nil {
		if errors.Is(err, util.ErrInvalidArgument) {
			util.BadRequest(ctx, fmt.Sprintf("days must be between 1 and %d", service.MaxWindowDays))
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
