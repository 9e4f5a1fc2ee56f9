package controller

import (
	"errors"
	"strconv"

	"vibestudy/internal/repository"
	"vibestudy/internal/service"
	"vibestudy/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LessonController struct {
	Lessons    *service.LessonService
	AI         *service.AIService
	CourseRepo *repository.CourseRepository
}

func NewLessonController(lessons *service.LessonService, ai *service.AIService, courseRepo *repository.CourseRepository) *LessonController {
	return &LessonController{Lessons: lessons, AI: ai, CourseRepo: courseRepo}
}

// ListCourses godoc
// @Summary List the course catalog
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
// @Security ApiKeyAuth
func (c *LessonController) ListCourses(ctx *gin.Context) {
	courses, err := c.CourseRepo.FindAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourse godoc
// @Summary Fetch one course
// @Tags courses
// @Produce json
// @Param courseId path string true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId} [get]
// @Security ApiKeyAuth
func (c *LessonController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseRepo.FindByID(ctx.Param("courseId"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.NotFound(ctx)
		return
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetLesson godoc
// @Summary Fetch (or generate) the lesson for one course day
// @Description Served from cache when present; otherwise generated and cached.
// @Tags courses
// @Produce json
// @Param courseId path string true "course id"
// @Param day path int true "day number"
// @Param careerPath query string false "career path to tailor content for"
// @Success 200 {object} util.Response{data=model.GeneratedLesson}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseId}/lessons/{day} [get]
// @Security ApiKeyAuth
func (c *LessonController) GetLesson(ctx *gin.Context) {
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day must be an integer")
		return
	}

	lesson, err := c.Lessons.GetLesson(ctx.Request.Context(), ctx.Param("courseId"), day, ctx.Query("careerPath"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidDay):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lesson)
}

// ClearLesson godoc
// @Summary Evict one cached lesson so the next fetch regenerates it
// @Tags courses
// @Produce json
// @Param courseId path string true "course id"
// @Param day path int true "day number"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/lessons/{day} [delete]
// @Security ApiKeyAuth
func (c *LessonController) ClearLesson(ctx *gin.Context) {
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day must be an integer")
		return
	}

	c.Lessons.ClearLesson(ctx.Request.Context(), ctx.Param("courseId"), day)
	util.Success(ctx, nil)
}

// GetDailyChallenge godoc
// @Summary The standalone daily challenge for a language
// @Tags challenges
// @Produce json
// @Param language query string false "language name" default(Python)
// @Success 200 {object} util.Response{data=model.DailyChallenge}
// @Router /api/challenges/daily [get]
// @Security ApiKeyAuth
func (c *LessonController) GetDailyChallenge(ctx *gin.Context) {
	language := ctx.DefaultQuery("language", "Python")
	util.Success(ctx, c.AI.GenerateDailyChallenge(language))
}
