package service

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/repository"
	"course_studio_backend/internal/util"
	"course_studio_backend/pkg/logger"
	"course_studio_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	levelListCacheKey = "levels:list"
	levelListCacheTTL = 5 * time.Minute
)

type LevelService struct {
	Repo    repository.LevelStore
	Storage *StorageService
	Redis   *redis.Client // 可为 nil，关掉列表缓存
}

func NewLevelService(repo repository.LevelStore, storage *StorageService, rdb *redis.Client) *LevelService {
	return &LevelService{Repo: repo, Storage: storage, Redis: rdb}
}

// LevelUpdateRequest 按类型分派的部分更新，nil 字段保持原值
type LevelUpdateRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Images      *[]string       `json:"images"`
	Texts       *[]string       `json:"texts"`
	Code        *string         `json:"code"`
	AppURL      *string         `json:"appUrl"`
	VideoURL    *string         `json:"videoUrl"`
	Quiz        json.RawMessage `json:"quiz"`
}

func (s *LevelService) List(ctx context.Context) ([]model.Level, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, levelListCacheKey).Bytes(); err == nil {
			var levels []model.Level
			if json.Unmarshal(cached, &levels) == nil {
				return levels, nil
			}
		}
	}

	levels, err := s.Repo.List()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(levels); err == nil {
			s.Redis.Set(ctx, levelListCacheKey, data, levelListCacheTTL)
		}
	}
	return levels, nil
}

func (s *LevelService) Get(id string) (*model.Level, error) {
	return s.Repo.Get(id)
}

func (s *LevelService) invalidateCache(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, levelListCacheKey)
	}
}

// ParseTexts 解析图片说明：接受JSON数组字符串，其他内容一律按空处理
func ParseTexts(raw string) []string {
	parsed := util.SafeJSONParse(raw)
	items, ok := parsed.([]interface{})
	if !ok {
		return []string{}
	}
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, util.AsString(item))
	}
	return texts
}

// reconcileTexts 使说明数量与图片数量一致：不足补空串，超出截断
func reconcileTexts(texts []string, imageCount int) []string {
	for len(texts) < imageCount {
		texts = append(texts, "")
	}
	return texts[:imageCount]
}

func readFileHeader(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

// fileContentType 优先用浏览器声明的类型，缺失或笼统时从内容嗅探
func fileContentType(file *multipart.FileHeader, data []byte) string {
	ct := file.Header.Get("Content-Type")
	if ct == "" || ct == util.MimeOctetStream {
		ct = util.DetectContentType(data)
	}
	return ct
}

func (s *LevelService) CreateImageLevel(ctx context.Context, title, description string, files []*multipart.FileHeader, textsRaw string) (*model.Level, error) {
	if len(files) == 0 {
		return nil, util.ErrNoImages
	}

	imageURLs := make([]string, 0, len(files))
	for _, file := range files {
		data, err := readFileHeader(file)
		if err != nil {
			return nil, err
		}
		contentType := fileContentType(file, data)
		if !util.IsImage(contentType) {
			logger.Log.Warn("上传内容疑似不是图片", zap.String("file", file.Filename), zap.String("contentType", contentType))
		}
		url, err := s.Storage.Store(ctx, data, contentType, "images", file.Filename)
		if err != nil {
			return nil, err
		}
		monitoring.ObserveUpload(model.LevelTypeImage, file.Size)
		imageURLs = append(imageURLs, url)
	}

	texts := reconcileTexts(ParseTexts(textsRaw), len(imageURLs))

	level := &model.Level{
		ID:          model.GenerateUUID(),
		Type:        model.LevelTypeImage,
		Title:       title,
		Description: description,
		Images:      imageURLs,
		Texts:       texts,
		CreatedAt:   time.Now(),
	}
	if level.Title == "" {
		level.Title = "图片关卡"
	}

	if err := s.Repo.Insert(level); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return level, nil
}

func (s *LevelService) CreateVideoLevel(ctx context.Context, title, description string, file *multipart.FileHeader, videoURL string) (*model.Level, error) {
	videoURL = strings.TrimSpace(videoURL)
	if file == nil && videoURL == "" {
		return nil, util.ErrNoVideo
	}

	level := &model.Level{
		ID:          model.GenerateUUID(),
		Type:        model.LevelTypeVideo,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if level.Title == "" {
		level.Title = "视频关卡"
	}

	if file != nil {
		data, err := readFileHeader(file)
		if err != nil {
			return nil, err
		}
		contentType := fileContentType(file, data)
		if !util.IsVideo(contentType) {
			logger.Log.Warn("上传内容疑似不是视频", zap.String("file", file.Filename), zap.String("contentType", contentType))
		}
		url, err := s.Storage.Store(ctx, data, contentType, "videos", file.Filename)
		if err != nil {
			return nil, err
		}
		monitoring.ObserveUpload(model.LevelTypeVideo, file.Size)
		level.VideoURL = url
		s.probeVideo(level, data, file.Filename)
	} else {
		// 外部托管地址：不落盘，删除关卡时也不清理
		level.VideoURL = videoURL
	}

	if err := s.Repo.Insert(level); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return level, nil
}

// probeVideo 尽力读取时长/分辨率，失败只记日志不影响请求
func (s *LevelService) probeVideo(level *model.Level, data []byte, filename string) {
	tmp, err := os.CreateTemp("", "probe-*"+filepath.Ext(filename))
	if err != nil {
		logger.Log.Warn("视频探测跳过：无法创建临时文件", zap.Error(err))
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		logger.Log.Warn("视频探测跳过：写入临时文件失败", zap.Error(err))
		return
	}
	tmp.Close()

	info, err := util.ProbeVideo(tmp.Name())
	if err != nil {
		logger.Log.Warn("视频探测失败", zap.String("file", filename), zap.Error(err))
		return
	}
	level.DurationSeconds = info.Duration
	level.VideoWidth = info.Width
	level.VideoHeight = info.Height
}

func (s *LevelService) CreateCanvasLevel(ctx context.Context, title, description, appURL, code string, file *multipart.FileHeader) (*model.Level, error) {
	level := &model.Level{
		ID:          model.GenerateUUID(),
		Type:        model.LevelTypeCanvas,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if level.Title == "" {
		level.Title = "Canvas关卡"
	}

	// 已部署应用URL优先，学生端用 iframe 打开
	if trimmed := strings.TrimSpace(appURL); trimmed != "" {
		level.AppURL = trimmed
	} else if file != nil {
		data, err := readFileHeader(file)
		if err != nil {
			return nil, err
		}
		url, err := s.Storage.Store(ctx, data, fileContentType(file, data), "canvas", file.Filename)
		if err != nil {
			return nil, err
		}
		monitoring.ObserveUpload(model.LevelTypeCanvas, file.Size)
		level.CodeURL = url
		level.Code = code
	} else if code != "" {
		url, err := s.Storage.Store(ctx, []byte(code), "application/javascript", "canvas", "app.js")
		if err != nil {
			return nil, err
		}
		level.CodeURL = url
		level.Code = code
	} else {
		return nil, util.ErrNoCanvasSource
	}

	if err := s.Repo.Insert(level); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return level, nil
}

func (s *LevelService) CreateQuizLevel(ctx context.Context, title, description string, quizInput interface{}) (*model.Level, error) {
	normalized := NormalizeQuiz(quizInput)
	if normalized == nil {
		return nil, util.ErrQuizEnvelope
	}
	if err := ValidateQuiz(normalized); err != nil {
		return nil, err
	}

	level := &model.Level{
		ID:          model.GenerateUUID(),
		Type:        model.LevelTypeQuiz,
		Title:       title,
		Description: description,
		Quiz:        normalized,
		CreatedAt:   time.Now(),
	}
	if level.Title == "" {
		level.Title = "选择题关卡"
	}

	if err := s.Repo.Insert(level); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return level, nil
}

// UploadImages 单独上传图片，返回可回取的URL列表（编辑时追加图片用）
func (s *LevelService) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, util.ErrNoImages
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		data, err := readFileHeader(file)
		if err != nil {
			return nil, err
		}
		url, err := s.Storage.Store(ctx, data, fileContentType(file, data), "images", file.Filename)
		if err != nil {
			return nil, err
		}
		monitoring.ObserveUpload(model.LevelTypeImage, file.Size)
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *LevelService) Update(ctx context.Context, id string, req LevelUpdateRequest) (*model.Level, error) {
	level, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		level.Title = *req.Title
	}
	if req.Description != nil {
		level.Description = *req.Description
	}

	switch level.Type {
	case model.LevelTypeImage:
		s.applyImageUpdate(ctx, level, req)
	case model.LevelTypeCanvas:
		s.applyCanvasUpdate(ctx, level, req)
	case model.LevelTypeVideo:
		s.applyVideoUpdate(ctx, level, req)
	case model.LevelTypeQuiz:
		if err := s.applyQuizUpdate(level, req); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.Replace(id, level); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return level, nil
}

func (s *LevelService) applyImageUpdate(ctx context.Context, level *model.Level, req LevelUpdateRequest) {
	if req.Images != nil {
		newImages := *req.Images
		// 被移除的图片顺手清理文件，失败只记日志
		for _, old := range level.Images {
			if !containsString(newImages, old) {
				if err := s.Storage.Delete(ctx, old); err != nil {
					logger.Log.Warn("删除图片文件失败", zap.String("url", old), zap.Error(err))
				}
			}
		}
		level.Images = newImages
	}
	if req.Texts != nil {
		level.Texts = *req.Texts
	}
	// 不论改了哪边，说明数量始终与图片数量对齐
	level.Texts = reconcileTexts(level.Texts, len(level.Images))
}

func (s *LevelService) applyCanvasUpdate(ctx context.Context, level *model.Level, req LevelUpdateRequest) {
	if req.Code != nil {
		level.Code = *req.Code
		if level.CodeURL != "" {
			if err := s.Storage.Rewrite(ctx, level.CodeURL, []byte(*req.Code), "application/javascript"); err != nil {
				logger.Log.Warn("更新代码文件失败", zap.String("url", level.CodeURL), zap.Error(err))
			}
		}
	}
	if req.AppURL != nil {
		if trimmed := strings.TrimSpace(*req.AppURL); trimmed != "" {
			level.AppURL = trimmed
		} else {
			// 允许清空 appUrl，回退到 code 模式
			level.AppURL = ""
		}
	}
}

func (s *LevelService) applyVideoUpdate(ctx context.Context, level *model.Level, req LevelUpdateRequest) {
	if req.VideoURL == nil {
		return
	}
	trimmed := strings.TrimSpace(*req.VideoURL)
	if trimmed == "" || trimmed == level.VideoURL {
		return
	}
	// 被替换的本地文件释放掉；外部托管地址不归本服务管理，绝不清理
	if !model.IsRemoteURL(level.VideoURL) {
		if err := s.Storage.Delete(ctx, level.VideoURL); err != nil {
			logger.Log.Warn("删除旧视频文件失败", zap.String("url", level.VideoURL), zap.Error(err))
		}
	}
	level.VideoURL = trimmed
	level.DurationSeconds = 0
	level.VideoWidth = 0
	level.VideoHeight = 0
}

func (s *LevelService) applyQuizUpdate(level *model.Level, req LevelUpdateRequest) error {
	if len(req.Quiz) == 0 {
		return nil
	}
	var decoded interface{}
	if err := json.Unmarshal(req.Quiz, &decoded); err != nil {
		return util.NewClientError("quiz 字段不是合法JSON")
	}
	quizObj := util.SafeJSONParse(decoded)
	normalized := NormalizeQuiz(quizObj)
	if normalized == nil {
		return util.ErrQuizEnvelope
	}
	if err := ValidateQuiz(normalized); err != nil {
		return err
	}
	level.Quiz = normalized
	return nil
}

// Delete 删除关卡并释放其名下的本地媒体文件；外部托管地址绝不清理
func (s *LevelService) Delete(ctx context.Context, id string) error {
	level, err := s.Repo.Get(id)
	if err != nil {
		return err
	}

	switch level.Type {
	case model.LevelTypeImage:
		for _, img := range level.Images {
			if err := s.Storage.Delete(ctx, img); err != nil {
				logger.Log.Warn("删除图片文件失败", zap.String("url", img), zap.Error(err))
			}
		}
	case model.LevelTypeVideo:
		if !model.IsRemoteURL(level.VideoURL) {
			if err := s.Storage.Delete(ctx, level.VideoURL); err != nil {
				logger.Log.Warn("删除视频文件失败", zap.String("url", level.VideoURL), zap.Error(err))
			}
		}
	case model.LevelTypeCanvas:
		if err := s.Storage.Delete(ctx, level.CodeURL); err != nil {
			logger.Log.Warn("删除代码文件失败", zap.String("url", level.CodeURL), zap.Error(err))
		}
	}

	if err := s.Repo.Remove(id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
