package controller

import (
	"errors"
	"strconv"

	"vibestudy/internal/service"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Progress *service.ProgressService
}

func NewProgressController(progress *service.ProgressService) *ProgressController {
	return &ProgressController{Progress: progress}
}

// FetchProgress godoc
// @Summary Bulk-load the caller's progress and completed tasks
// @Tags progress
// @Produce json
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Router /api/progress [get]
// @Security ApiKeyAuth
func (c *ProgressController) FetchProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	snapshot, err := c.Progress.FetchProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// GetCourseProgress godoc
// @Summary Progress for one course; empty defaults when none exists
// @Tags progress
// @Produce json
// @Param courseId path string true "course id"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Router /api/progress/{courseId} [get]
// @Security ApiKeyAuth
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	row, err := c.Progress.GetProgress(claims.UserID, ctx.Param("courseId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	if row == nil {
		util.Success(ctx, gin.H{
			"courseId":      ctx.Param("courseId"),
			"currentDay":    1,
			"completedDays": []int{},
		})
		return
	}

	util.Success(ctx, row)
}

// CompleteLesson godoc
// @Summary Mark a lesson day complete (idempotent)
// @Tags progress
// @Produce json
// @Param courseId path string true "course id"
// @Param day path int true "day number"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/{courseId}/lessons/{day}/complete [post]
// @Security ApiKeyAuth
func (c *ProgressController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day must be an integer")
		return
	}

	row, err := c.Progress.CompleteLesson(claims.UserID, ctx.Param("courseId"), day)
	if err != nil {
		c.respondProgressError(ctx, err)
		return
	}

	util.Success(ctx, row)
}

// CompleteTaskRequest optionally carries the submitted solution.
// swagger:model CompleteTaskRequest
type CompleteTaskRequest struct {
	Code *string `json:"code"`
}

// CompleteTask godoc
// @Summary Record a task completion; XP is awarded once per task
// @Tags progress
// @Accept json
// @Produce json
// @Param courseId path string true "course id"
// @Param day path int true "day number"
// @Param taskId path int true "task id"
// @Param body body CompleteTaskRequest false "submitted code"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/progress/{courseId}/lessons/{day}/tasks/{taskId}/complete [post]
// @Security ApiKeyAuth
func (c *ProgressController) CompleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day must be an integer")
		return
	}
	taskID, err := strconv.Atoi(ctx.Param("taskId"))
	if err != nil {
		util.BadRequest(ctx, "taskId must be an integer")
		return
	}

	var req CompleteTaskRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	awarded, row, err := c.Progress.CompleteTask(claims.UserID, ctx.Param("courseId"), day, taskID, req.Code)
	if err != nil {
		c.respondProgressError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"xpAwarded": awarded,
		"task":      row,
	})
}

// UpdateCurrentDayRequest moves the course pointer.
// swagger:model UpdateCurrentDayRequest
type UpdateCurrentDayRequest struct {
	Day int `json:"day" binding:"required,min=1"`
}

// UpdateCurrentDay godoc
// @Summary Move the current-day pointer without completing a lesson
// @Tags progress
// @Accept json
// @Produce json
// @Param courseId path string true "course id"
// @Param body body UpdateCurrentDayRequest true "target day"
// @Success 200 {object} util.Response{data=model.CourseProgress}
// @Failure 400 {object} util.Response
// @Router /api/progress/{courseId}/current-day [put]
// @Security ApiKeyAuth
func (c *ProgressController) UpdateCurrentDay(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateCurrentDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	row, err := c.Progress.UpdateCurrentDay(claims.UserID, ctx.Param("courseId"), req.Day)
	if err != nil {
		c.respondProgressError(ctx, err)
		return
	}

	util.Success(ctx, row)
}

func (c *ProgressController) respondProgressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidDay):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
