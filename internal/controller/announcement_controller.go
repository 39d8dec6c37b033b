package controller

import (
	"taru_backend/internal/service"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	AnnouncementService *service.AnnouncementService
}

func NewAnnouncementController(announcementService *service.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{AnnouncementService: announcementService}
}

// GetAnnouncements godoc
// @Summary List announcements
// @Description All announcements, newest first. Visible to every authenticated role.
// @Tags teacher
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Announcement}
// @Router /api/announcements [get]
func (c *AnnouncementController) GetAnnouncements(ctx *gin.Context) {
	announcements, err := c.AnnouncementService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"announcements": announcements})
}

// AnnouncementRequest defines model for publishing an announcement
// swagger:model AnnouncementRequest
type AnnouncementRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Message string `json:"message" binding:"required"`
}

// CreateAnnouncement godoc
// @Summary Publish announcement
// @Tags teacher
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body AnnouncementRequest true "announcement"
// @Success 201 {object} util.Response{data=model.Announcement}
// @Router /api/teacher/announcements [post]
func (c *AnnouncementController) CreateAnnouncement(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	announcement, err := c.AnnouncementService.Publish(user.UserID, req.Title, req.Message)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, announcement)
}
