package controller

import (
	"errors"
	"net/http"
	"taru_backend/internal/model"
	"taru_backend/internal/service"
	"taru_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

// SetupNameRequest defines model for first-login name setup
// swagger:model SetupNameRequest
type SetupNameRequest struct {
	FullName string `json:"fullName" binding:"required,min=1,max=100"`
}

// SetupName godoc
// @Summary First-login name setup
// @Description Records the student's display name, clears the first-login flag and returns a re-issued token.
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SetupNameRequest true "display name"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/user/setup-name [post]
func (c *UserController) SetupName(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SetupNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, updated, err := c.UserService.SetupName(user.UserID, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSetupDone):
			util.Error(ctx, http.StatusNotFound, "user not found or already completed setup")
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"token": token,
		"user": gin.H{
			"email":    updated.Email,
			"fullName": updated.FullName,
			"role":     updated.Role,
		},
	})
}

// GetPreferences godoc
// @Summary Fetch preferences
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.Preferences}
// @Router /api/user/preferences [get]
func (c *UserController) GetPreferences(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	prefs, err := c.UserService.GetPreferences(user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"preferences": prefs})
}

// PreferencesRequest defines model for saving preferences
// swagger:model PreferencesRequest
type PreferencesRequest struct {
	Interests []string `json:"interests"`
	Style     string   `json:"style"`
}

// UpdatePreferences godoc
// @Summary Save preferences
// @Description Students declare their interests and learning style here; recommendations follow from them.
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PreferencesRequest true "preferences"
// @Success 200 {object} util.Response{data=model.Preferences}
// @Router /api/user/preferences [put]
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req PreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	prefs, err := c.UserService.UpdatePreferences(user.UserID, model.Preferences{
		Interests: req.Interests,
		Style:     req.Style,
	})
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"preferences": prefs})
}

// ListStudents godoc
// @Summary Student id/email roster
// @Description Minimal student list used during parent registration to pick a child account.
// @Tags users
// @Produce  json
// @Success 200 {object} util.Response
// @Router /api/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	students, err := c.UserService.ListStudents()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	list := make([]gin.H, 0, len(students))
	for _, s := range students {
		list = append(list, gin.H{"id": s.ID, "email": s.Email})
	}
	util.Success(ctx, list)
}

// UploadAvatar godoc
// @Summary Upload avatar
// @Tags users
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "avatar image"
// @Success 200 {object} util.Response
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	defer file.Close()

	filename := service.AvatarObjectName(header.Filename)
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if err := c.UserService.UpdateAvatar(user.UserID, url); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
