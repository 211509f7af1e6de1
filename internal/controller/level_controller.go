package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"course_studio_backend/internal/service"
	"course_studio_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LevelController struct {
	LevelService *service.LevelService
	MaxUploadMB  int64
}

func NewLevelController(levelService *service.LevelService, maxUploadMB int64) *LevelController {
	return &LevelController{LevelService: levelService, MaxUploadMB: maxUploadMB}
}

func (c *LevelController) handleError(ctx *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, util.ErrLevelNotFound):
		util.NotFound(ctx, err.Error())
	case util.IsClientError(err):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, action, err)
	}
}

// checkUploadSize 超过宿主传输上限的文件直接 413，带补救提示
func (c *LevelController) checkUploadSize(ctx *gin.Context, files ...*multipart.FileHeader) bool {
	limit := c.MaxUploadMB * 1024 * 1024
	for _, file := range files {
		if file != nil && file.Size > limit {
			util.PayloadTooLarge(ctx, fmt.Sprintf("文件过大（上限 %dMB），请压缩后重试，或改为提供外部链接", c.MaxUploadMB))
			return false
		}
	}
	return true
}

// @Summary 获取所有关卡
// @Tags 关卡管理
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/levels [get]
func (c *LevelController) List(ctx *gin.Context) {
	levels, err := c.LevelService.List(ctx)
	if err != nil {
		util.LogInternalError(ctx, "读取关卡失败", err)
		return
	}
	util.Success(ctx, levels)
}

// @Summary 获取单个关卡
// @Tags 关卡管理
// @Produce json
// @Param id path string true "关卡ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/levels/{id} [get]
func (c *LevelController) Get(ctx *gin.Context) {
	level, err := c.LevelService.Get(ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, "读取关卡失败", err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 创建图片关卡
// @Tags 关卡管理
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "图片文件（可多张）"
// @Param title formData string false "标题"
// @Param texts formData string false "说明文字JSON数组"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/levels/image [post]
func (c *LevelController) CreateImage(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, util.ErrNoImages.Error())
		return
	}
	files := form.File["images"]
	if !c.checkUploadSize(ctx, files...) {
		return
	}

	level, err := c.LevelService.CreateImageLevel(ctx,
		ctx.PostForm("title"), ctx.PostForm("description"),
		files, ctx.PostForm("texts"))
	if err != nil {
		c.handleError(ctx, "上传失败", err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 单独上传图片（编辑时添加图片）
// @Tags 关卡管理
// @Accept multipart/form-data
// @Produce json
// @Param images formData file false "图片文件（可多张）"
// @Param image formData file false "单张图片"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/levels/image/upload [post]
func (c *LevelController) UploadImages(ctx *gin.Context) {
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "请上传图片")
		return
	}

	// 兼容 images（多张）和 image（单张）两种字段名
	files := append([]*multipart.FileHeader{}, form.File["images"]...)
	files = append(files, form.File["image"]...)
	if len(files) == 0 {
		util.BadRequest(ctx, "请上传图片")
		return
	}
	if !c.checkUploadSize(ctx, files...) {
		return
	}

	urls, err := c.LevelService.UploadImages(ctx, files)
	if err != nil {
		c.handleError(ctx, "上传失败", err)
		return
	}
	util.Success(ctx, urls)
}

type videoLevelRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
}

// @Summary 创建视频关卡
// @Tags 关卡管理
// @Accept multipart/form-data
// @Produce json
// @Param video formData file false "视频文件"
// @Param videoUrl formData string false "外部视频链接（与文件二选一）"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 413 {object} util.Response
// @Router /api/levels/video [post]
func (c *LevelController) CreateVideo(ctx *gin.Context) {
	var title, description, videoURL string
	var file *multipart.FileHeader

	if ctx.ContentType() == "application/json" {
		var req videoLevelRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, "请求体不是合法JSON")
			return
		}
		title, description, videoURL = req.Title, req.Description, req.VideoURL
	} else {
		title = ctx.PostForm("title")
		description = ctx.PostForm("description")
		videoURL = ctx.PostForm("videoUrl")
		file, _ = ctx.FormFile("video")
		if !c.checkUploadSize(ctx, file) {
			return
		}
	}

	level, err := c.LevelService.CreateVideoLevel(ctx, title, description, file, videoURL)
	if err != nil {
		c.handleError(ctx, "上传失败", err)
		return
	}
	util.Success(ctx, level)
}

type canvasLevelRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Code        string `json:"code"`
	AppURL      string `json:"appUrl"`
}

// @Summary 创建Canvas应用关卡
// @Tags 关卡管理
// @Accept multipart/form-data
// @Produce json
// @Param canvas formData file false "代码文件"
// @Param code formData string false "代码内容"
// @Param appUrl formData string false "已部署应用URL（优先）"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/levels/canvas [post]
func (c *LevelController) CreateCanvas(ctx *gin.Context) {
	var title, description, code, appURL string
	var file *multipart.FileHeader

	if ctx.ContentType() == "application/json" {
		var req canvasLevelRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, "请求体不是合法JSON")
			return
		}
		title, description, code, appURL = req.Title, req.Description, req.Code, req.AppURL
	} else {
		title = ctx.PostForm("title")
		description = ctx.PostForm("description")
		code = ctx.PostForm("code")
		appURL = ctx.PostForm("appUrl")
		file, _ = ctx.FormFile("canvas")
		if !c.checkUploadSize(ctx, file) {
			return
		}
	}

	level, err := c.LevelService.CreateCanvasLevel(ctx, title, description, appURL, code, file)
	if err != nil {
		c.handleError(ctx, "上传失败", err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 创建选择题关卡
// @Description 三种提交方式：上传 .json 文件（字段名 quiz）；表单/JSON字段 quiz 或 quizJson；或直接把 {questions:[...]} 作为请求体
// @Tags 关卡管理
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/levels/quiz [post]
func (c *LevelController) CreateQuiz(ctx *gin.Context) {
	var title, description string
	var quizObj interface{}

	if file, err := ctx.FormFile("quiz"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			util.LogInternalError(ctx, "上传失败", err)
			return
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			util.LogInternalError(ctx, "上传失败", err)
			return
		}
		title = ctx.PostForm("title")
		description = ctx.PostForm("description")
		quizObj = util.SafeJSONParse(string(data))
	} else if ctx.ContentType() == "application/json" {
		var body map[string]interface{}
		if err := ctx.ShouldBindJSON(&body); err != nil {
			util.BadRequest(ctx, "请求体不是合法JSON")
			return
		}
		title = util.AsString(body["title"])
		description = util.AsString(body["description"])
		if quiz, ok := body["quiz"]; ok {
			quizObj = util.SafeJSONParse(quiz)
		} else if quizJSON, ok := body["quizJson"]; ok {
			quizObj = util.SafeJSONParse(quizJSON)
		} else if _, ok := body["questions"]; ok {
			// 兼容直接把题目对象作为请求体
			quizObj = body
		}
	} else {
		title = ctx.PostForm("title")
		description = ctx.PostForm("description")
		if v := ctx.PostForm("quiz"); v != "" {
			quizObj = util.SafeJSONParse(v)
		} else if v := ctx.PostForm("quizJson"); v != "" {
			quizObj = util.SafeJSONParse(v)
		}
	}

	if quizObj == nil {
		util.BadRequest(ctx, util.ErrNoQuizPayload.Error())
		return
	}

	level, err := c.LevelService.CreateQuizLevel(ctx, title, description, quizObj)
	if err != nil {
		c.handleError(ctx, "上传失败", err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 更新关卡（按类型分派的部分更新）
// @Tags 关卡管理
// @Accept json
// @Produce json
// @Param id path string true "关卡ID"
// @Param level body service.LevelUpdateRequest true "更新内容"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/levels/{id} [put]
func (c *LevelController) Update(ctx *gin.Context) {
	var req service.LevelUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "请求体不是合法JSON")
		return
	}

	level, err := c.LevelService.Update(ctx, ctx.Param("id"), req)
	if err != nil {
		c.handleError(ctx, "更新失败", err)
		return
	}
	util.Success(ctx, level)
}

// @Summary 删除关卡并释放其名下的本地媒体文件
// @Tags 关卡管理
// @Produce json
// @Param id path string true "关卡ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/levels/{id} [delete]
func (c *LevelController) Delete(ctx *gin.Context) {
	if err := c.LevelService.Delete(ctx, ctx.Param("id")); err != nil {
		c.handleError(ctx, "删除失败", err)
		return
	}
	util.SuccessMessage(ctx, "关卡已删除")
}
