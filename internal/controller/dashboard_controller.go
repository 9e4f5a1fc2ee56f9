package controller

import (
	"strconv"

	"vibestudy/internal/service"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *service.DashboardService
	Profiles  *service.ProfileService
}

func NewDashboardController(dashboard *service.DashboardService, profiles *service.ProfileService) *DashboardController {
	return &DashboardController{Dashboard: dashboard, Profiles: profiles}
}

// GetDashboard godoc
// @Summary Aggregated learning dashboard for the current user
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
// @Security ApiKeyAuth
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.Dashboard.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// GetWeeklyActivity godoc
// @Summary Task completions per day for the past week
// @Tags dashboard
// @Produce json
// @Success 200 {object} util.Response{data=[]service.DayActivity}
// @Router /api/dashboard/weekly [get]
// @Security ApiKeyAuth
func (c *DashboardController) GetWeeklyActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	activity, err := c.Dashboard.GetWeeklyActivity(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, activity)
}

// Leaderboard godoc
// @Summary Top profiles ranked by total XP
// @Tags dashboard
// @Produce json
// @Param limit query int false "number of entries" default(10)
// @Success 200 {object} util.Response{data=[]model.Profile}
// @Router /api/leaderboard [get]
// @Security ApiKeyAuth
func (c *DashboardController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	profiles, err := c.Profiles.Leaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, profiles)
}
