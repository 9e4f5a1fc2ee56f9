package controller

import (
	"fmt"
	"path/filepath"

	"vibestudy/internal/service"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profiles *service.ProfileService
	Storage  *service.StorageService
}

func NewProfileController(profiles *service.ProfileService, storage *service.StorageService) *ProfileController {
	return &ProfileController{Profiles: profiles, Storage: storage}
}

// GetProfile godoc
// @Summary Fetch the caller's profile, creating it on first access
// @Tags profile
// @Produce json
// @Success 200 {object} util.Response{data=model.Profile}
// @Router /api/profile [get]
// @Security ApiKeyAuth
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.Profiles.GetOrCreate(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// UpdateProfileRequest carries the editable profile fields; omitted fields
// are left untouched.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=50"`
	FullName  *string `json:"fullName" binding:"omitempty,max=100"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,max=255"`
}

// UpdateProfile godoc
// @Summary Partially update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Param body body UpdateProfileRequest true "fields to change"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 400 {object} util.Response
// @Router /api/profile [put]
// @Security ApiKeyAuth
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Profiles.UpdateProfile(claims.UserID, service.ProfileUpdate{
		Username:  req.Username,
		FullName:  req.FullName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// AddXPRequest is the XP delta; negative values are allowed here by design.
// swagger:model AddXPRequest
type AddXPRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// AddXP godoc
// @Summary Add XP to the caller's profile
// @Description Level is recomputed from total XP in the same write.
// @Tags profile
// @Accept json
// @Produce json
// @Param body body AddXPRequest true "XP delta"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 400 {object} util.Response
// @Router /api/profile/xp [post]
// @Security ApiKeyAuth
func (c *ProfileController) AddXP(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AddXPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.Profiles.AddXP(claims.UserID, req.Amount)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// UploadAvatar godoc
// @Summary Upload an avatar image
// @Tags profile
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "avatar image"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 400 {object} util.Response
// @Router /api/profile/avatar [post]
// @Security ApiKeyAuth
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	file, header, err := ctx.Request.FormFile("avatar")
	if err != nil {
		util.BadRequest(ctx, "avatar file is required")
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("avatars/%s%s", claims.UserID, filepath.Ext(header.Filename))
	url, err := c.Storage.Provider.Upload(ctx.Request.Context(), filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	profile, err := c.Profiles.UpdateProfile(claims.UserID, service.ProfileUpdate{AvatarURL: &url})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}
