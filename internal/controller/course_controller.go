package controller

import (
	"errors"

	"course_studio_backend/internal/service"
	"course_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// @Summary 获取所有课程
// @Tags 课程管理
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.CourseService.List()
	if err != nil {
		util.LogInternalError(ctx, "读取课程失败", err)
		return
	}
	util.Success(ctx, courses)
}

// @Summary 获取单个课程详情
// @Tags 课程管理
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	course, err := c.CourseService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, "读取课程失败", err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 创建课程
// @Tags 课程管理
// @Accept json
// @Produce json
// @Param course body service.CourseCreateRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req service.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请求体不是合法JSON")
		return
	}

	course, err := c.CourseService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, "创建失败", err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 更新课程（缺省字段保持原值）
// @Tags 课程管理
// @Accept json
// @Produce json
// @Param id path string true "课程ID"
// @Param course body service.CourseUpdateRequest true "课程信息"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var req service.CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请求体不是合法JSON")
		return
	}

	course, err := c.CourseService.Update(ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, "更新失败", err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 删除课程（幂等）
// @Tags 课程管理
// @Produce json
// @Param id path string true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, "删除失败", err)
		return
	}
	util.SuccessMessage(ctx, "课程已删除")
}
