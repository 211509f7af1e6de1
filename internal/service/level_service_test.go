package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"os"
	"testing"

	"course_studio_backend/internal/config"
	"course_studio_backend/internal/model"
	"course_studio_backend/internal/repository"
	"course_studio_backend/internal/util"
	"course_studio_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	local := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}
	return &StorageService{Provider: local, local: local}
}

func newTestLevelService(t *testing.T) *LevelService {
	t.Helper()
	store, err := repository.NewFileLevelStore(t.TempDir())
	if err != nil {
		t.Fatalf("初始化关卡存储失败: %v", err)
	}
	return NewLevelService(store, newTestStorage(t), nil)
}

type uploadFile struct {
	name    string
	content []byte
}

// makeFileHeaders 构造带内容的 multipart.FileHeader，走一遍真实的编解码
func makeFileHeaders(t *testing.T, field string, files ...uploadFile) []*multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.name)
		if err != nil {
			t.Fatalf("构造表单文件失败: %v", err)
		}
		if _, err := part.Write(f.content); err != nil {
			t.Fatalf("写入表单文件失败: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("关闭表单失败: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("解析表单失败: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File[field]
}

func mustExistOnDisk(t *testing.T, s *StorageService, url string) string {
	t.Helper()
	path, ok := s.LocalPathOf(url)
	if !ok {
		t.Fatalf("URL %q 没有对应的本地文件", url)
	}
	return path
}

func TestCreateImageLevelRequiresFiles(t *testing.T) {
	s := newTestLevelService(t)
	_, err := s.CreateImageLevel(context.Background(), "", "", nil, "")
	if !errors.Is(err, util.ErrNoImages) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrNoImages)
	}
}

func TestCreateImageLevel(t *testing.T) {
	s := newTestLevelService(t)
	files := makeFileHeaders(t, "images",
		uploadFile{name: "one.png", content: []byte("png-1")},
		uploadFile{name: "two.png", content: []byte("png-2")},
	)

	level, err := s.CreateImageLevel(context.Background(), "", "两张图", files, `["第一张"]`)
	if err != nil {
		t.Fatalf("创建图片关卡失败: %v", err)
	}

	if level.Title != "图片关卡" {
		t.Errorf("title = %q, 期望缺省标题", level.Title)
	}
	if level.Type != model.LevelTypeImage {
		t.Errorf("type = %q", level.Type)
	}
	if len(level.Images) != 2 {
		t.Fatalf("images = %v, 期望2个URL", level.Images)
	}
	for _, url := range level.Images {
		mustExistOnDisk(t, s.Storage, url)
	}
	// 说明数量始终与图片数量对齐，不足补空串
	if len(level.Texts) != 2 || level.Texts[0] != "第一张" || level.Texts[1] != "" {
		t.Errorf("texts = %v, 期望补齐到2条", level.Texts)
	}

	got, err := s.Get(level.ID)
	if err != nil {
		t.Fatalf("回读关卡失败: %v", err)
	}
	if got.Title != level.Title || len(got.Images) != 2 {
		t.Errorf("回读结果不一致: %+v", got)
	}
}

func TestUpdateImageLevelRemovesDroppedFiles(t *testing.T) {
	s := newTestLevelService(t)
	files := makeFileHeaders(t, "images",
		uploadFile{name: "keep.png", content: []byte("keep")},
		uploadFile{name: "drop.png", content: []byte("drop")},
	)
	level, err := s.CreateImageLevel(context.Background(), "图集", "", files, `["甲","乙"]`)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	keepURL, dropURL := level.Images[0], level.Images[1]
	dropPath := mustExistOnDisk(t, s.Storage, dropURL)

	kept := []string{keepURL}
	updated, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{Images: &kept})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if _, err := os.Stat(dropPath); !os.IsNotExist(err) {
		t.Errorf("被移除的图片文件仍然存在: %s", dropPath)
	}
	if len(updated.Images) != 1 || updated.Images[0] != keepURL {
		t.Errorf("images = %v", updated.Images)
	}
	// 说明随图片数量截断
	if len(updated.Texts) != 1 || updated.Texts[0] != "甲" {
		t.Errorf("texts = %v, 期望截断为 [甲]", updated.Texts)
	}
}

func TestUpdateImageLevelTextsTruncated(t *testing.T) {
	s := newTestLevelService(t)
	files := makeFileHeaders(t, "images", uploadFile{name: "a.png", content: []byte("a")})
	level, err := s.CreateImageLevel(context.Background(), "", "", files, "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	tooMany := []string{"一", "二", "三"}
	updated, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{Texts: &tooMany})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(updated.Texts) != 1 || updated.Texts[0] != "一" {
		t.Errorf("texts = %v, 多余的说明应被截断", updated.Texts)
	}
}

func TestCreateVideoLevelRequiresSource(t *testing.T) {
	s := newTestLevelService(t)
	_, err := s.CreateVideoLevel(context.Background(), "", "", nil, "   ")
	if !errors.Is(err, util.ErrNoVideo) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrNoVideo)
	}
}

func TestVideoLevelRemoteURLNeverTouchesDisk(t *testing.T) {
	s := newTestLevelService(t)
	remote := "https://cdn.example.com/lesson.mp4"

	level, err := s.CreateVideoLevel(context.Background(), "", "", nil, remote)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if level.VideoURL != remote {
		t.Errorf("videoUrl = %q, 期望原样保存", level.VideoURL)
	}
	if level.Title != "视频关卡" {
		t.Errorf("title = %q", level.Title)
	}

	if err := s.Delete(context.Background(), level.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := s.Get(level.ID); !errors.Is(err, util.ErrLevelNotFound) {
		t.Errorf("删除后 Get = %v, 期望 %v", err, util.ErrLevelNotFound)
	}
	// 再删一次已不存在的关卡
	if err := s.Delete(context.Background(), level.ID); !errors.Is(err, util.ErrLevelNotFound) {
		t.Errorf("重复删除 = %v, 期望 %v", err, util.ErrLevelNotFound)
	}
}

func TestVideoLevelLocalFileReleasedOnDelete(t *testing.T) {
	s := newTestLevelService(t)
	files := makeFileHeaders(t, "video", uploadFile{name: "clip.mp4", content: []byte("not-a-real-video")})

	level, err := s.CreateVideoLevel(context.Background(), "短片", "", files[0], "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	path := mustExistOnDisk(t, s.Storage, level.VideoURL)

	if err := s.Delete(context.Background(), level.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("视频文件未被清理: %s", path)
	}
}

func TestUpdateVideoLevelReplacement(t *testing.T) {
	s := newTestLevelService(t)
	files := makeFileHeaders(t, "video", uploadFile{name: "old.mp4", content: []byte("old")})
	level, err := s.CreateVideoLevel(context.Background(), "", "", files[0], "")
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	oldPath := mustExistOnDisk(t, s.Storage, level.VideoURL)
	level.DurationSeconds = 12.5 // 模拟探测结果
	if err := s.Repo.Replace(level.ID, level); err != nil {
		t.Fatalf("写回失败: %v", err)
	}

	remote := "https://cdn.example.com/new.mp4"
	updated, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{VideoURL: &remote})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	if updated.VideoURL != remote {
		t.Errorf("videoUrl = %q", updated.VideoURL)
	}
	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Errorf("被替换的本地视频未清理: %s", oldPath)
	}
	if updated.DurationSeconds != 0 || updated.VideoWidth != 0 || updated.VideoHeight != 0 {
		t.Errorf("换源后探测字段应归零: %+v", updated)
	}
}

func TestCreateCanvasLevelCodeOnly(t *testing.T) {
	s := newTestLevelService(t)
	code := "const c = document.getElementById('stage');"

	level, err := s.CreateCanvasLevel(context.Background(), "", "", "", code, nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if level.Title != "Canvas关卡" {
		t.Errorf("title = %q", level.Title)
	}
	if level.Code != code {
		t.Errorf("code 未保存")
	}
	path := mustExistOnDisk(t, s.Storage, level.CodeURL)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取代码文件失败: %v", err)
	}
	if string(data) != code {
		t.Errorf("落盘内容 = %q, 期望与 code 一致", data)
	}
}

func TestCreateCanvasLevelAppURLWins(t *testing.T) {
	s := newTestLevelService(t)
	level, err := s.CreateCanvasLevel(context.Background(), "", "", "  https://play.example.com/game  ", "ignored", nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if level.AppURL != "https://play.example.com/game" {
		t.Errorf("appUrl = %q, 期望去空白后保存", level.AppURL)
	}
	if level.CodeURL != "" {
		t.Errorf("提供 appUrl 时不应落盘代码文件: %q", level.CodeURL)
	}
}

func TestCreateCanvasLevelRequiresSource(t *testing.T) {
	s := newTestLevelService(t)
	_, err := s.CreateCanvasLevel(context.Background(), "", "", "", "", nil)
	if !errors.Is(err, util.ErrNoCanvasSource) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrNoCanvasSource)
	}
}

func TestUpdateCanvasLevelRewritesCodeFile(t *testing.T) {
	s := newTestLevelService(t)
	level, err := s.CreateCanvasLevel(context.Background(), "", "", "", "v1", nil)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	path := mustExistOnDisk(t, s.Storage, level.CodeURL)

	newCode := "v2"
	updated, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{Code: &newCode})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Code != "v2" {
		t.Errorf("code = %q", updated.Code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取代码文件失败: %v", err)
	}
	if string(data) != "v2" {
		t.Errorf("代码文件内容 = %q, 期望原地覆盖为 v2", data)
	}
}

func TestCreateQuizLevel(t *testing.T) {
	s := newTestLevelService(t)
	input := parseJSONObject(t, `{
		"questions": [
			{
				"prompt": "1+1等于几？",
				"options": [
					{"text": "2", "correct": true},
					{"text": "3", "correct": false}
				]
			}
		]
	}`)

	level, err := s.CreateQuizLevel(context.Background(), "", "", input)
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if level.Title != "选择题关卡" {
		t.Errorf("title = %q", level.Title)
	}
	if level.Quiz == nil || len(level.Quiz.Questions) != 1 {
		t.Fatalf("quiz = %+v", level.Quiz)
	}
	if level.Quiz.Questions[0].Type != model.QuestionTypeSingle {
		t.Errorf("type = %q", level.Quiz.Questions[0].Type)
	}
}

func TestCreateQuizLevelBadEnvelope(t *testing.T) {
	s := newTestLevelService(t)
	_, err := s.CreateQuizLevel(context.Background(), "", "", parseJSONObject(t, `{"title":"没有题目"}`))
	if !errors.Is(err, util.ErrQuizEnvelope) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrQuizEnvelope)
	}
}

func TestUpdateQuizLevel(t *testing.T) {
	s := newTestLevelService(t)
	level, err := s.CreateQuizLevel(context.Background(), "测验", "", parseJSONObject(t, `{
		"questions": [
			{"prompt": "旧题", "options": [{"text": "A", "correct": true}, {"text": "B", "correct": false}]}
		]
	}`))
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// quiz 字段既接受对象也接受内嵌JSON字符串
	raw := json.RawMessage(`"{\"questions\":[{\"prompt\":\"新题\",\"options\":[{\"text\":\"C\",\"correct\":true},{\"text\":\"D\",\"correct\":false}]}]}"`)
	updated, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{Quiz: raw})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Quiz.Questions[0].Prompt != "新题" {
		t.Errorf("prompt = %q, 期望换成新题", updated.Quiz.Questions[0].Prompt)
	}

	// 不合法的替换内容原封拒绝，旧题保留
	bad := json.RawMessage(`{"questions":[{"prompt":"坏题","options":[{"text":"X","correct":false},{"text":"Y","correct":false}]}]}`)
	if _, err := s.Update(context.Background(), level.ID, LevelUpdateRequest{Quiz: bad}); !util.IsClientError(err) {
		t.Errorf("err = %v, 期望客户端错误", err)
	}
	got, err := s.Get(level.ID)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if got.Quiz.Questions[0].Prompt != "新题" {
		t.Errorf("失败的更新不应落库: %+v", got.Quiz)
	}
}

func TestUpdateLevelNotFound(t *testing.T) {
	s := newTestLevelService(t)
	title := "无主更新"
	_, err := s.Update(context.Background(), "missing-id", LevelUpdateRequest{Title: &title})
	if !errors.Is(err, util.ErrLevelNotFound) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrLevelNotFound)
	}
}

func TestParseTexts(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{`["a","b"]`, []string{"a", "b"}},
		{`[]`, []string{}},
		{"", []string{}},
		{"not json", []string{}},
		{`{"a":1}`, []string{}},
		{`[1,true]`, []string{"1", "true"}},
	}
	for _, tc := range cases {
		if got := ParseTexts(tc.raw); !equalStrings(got, tc.want) {
			t.Errorf("ParseTexts(%q) = %v, 期望 %v", tc.raw, got, tc.want)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
