package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/util"
)

func TestFileStoreInitCreatesEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewFileCourseStore(dir); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	if _, err := NewFileLevelStore(dir); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	for _, name := range []string{coursesFileName, levelsFileName} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("读取 %s 失败: %v", name, err)
		}
		if string(data) != "[]" {
			t.Errorf("%s 初始内容 = %q, 期望空数组", name, data)
		}
	}
}

func TestFileStoreInitKeepsExistingData(t *testing.T) {
	dir := t.TempDir()
	seed := `[{"id":"c-1","name":"已有课程","levelIds":[]}]`
	if err := os.WriteFile(filepath.Join(dir, coursesFileName), []byte(seed), 0644); err != nil {
		t.Fatalf("写种子数据失败: %v", err)
	}

	store, err := NewFileCourseStore(dir)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	courses, err := store.List()
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(courses) != 1 || courses[0].Name != "已有课程" {
		t.Errorf("已有数据被覆盖: %+v", courses)
	}
}

func TestCourseStoreRoundTrip(t *testing.T) {
	store, err := NewFileCourseStore(t.TempDir())
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	course := &model.Course{
		ID:        "c-1",
		Name:      "入门课",
		LevelIDs:  model.StringList{"lv-1"},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := store.Insert(course); err != nil {
		t.Fatalf("Insert 失败: %v", err)
	}

	got, err := store.Get("c-1")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Name != "入门课" || len(got.LevelIDs) != 1 {
		t.Errorf("回读结果 = %+v", got)
	}

	got.Name = "改名课"
	if err := store.Replace("c-1", got); err != nil {
		t.Fatalf("Replace 失败: %v", err)
	}
	got, err = store.Get("c-1")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Name != "改名课" {
		t.Errorf("name = %q", got.Name)
	}

	if err := store.Remove("c-1"); err != nil {
		t.Fatalf("Remove 失败: %v", err)
	}
	if _, err := store.Get("c-1"); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("删除后 Get = %v, 期望 %v", err, util.ErrCourseNotFound)
	}
	// 再删一次是空操作
	if err := store.Remove("c-1"); err != nil {
		t.Errorf("重复 Remove = %v, 期望 nil", err)
	}
}

func TestLevelStoreReplaceMissing(t *testing.T) {
	store, err := NewFileLevelStore(t.TempDir())
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	level := &model.Level{ID: "lv-x", Type: model.LevelTypeImage}
	if err := store.Replace("lv-x", level); !errors.Is(err, util.ErrLevelNotFound) {
		t.Errorf("Replace = %v, 期望 %v", err, util.ErrLevelNotFound)
	}
}

func TestLevelStoreCorruptedFileReadAsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileLevelStore(dir)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, levelsFileName), []byte("{{{ 坏掉的JSON"), 0644); err != nil {
		t.Fatalf("写坏文件失败: %v", err)
	}

	levels, err := store.List()
	if err != nil {
		t.Fatalf("List = %v, 损坏文件应按空表处理", err)
	}
	if len(levels) != 0 {
		t.Errorf("levels = %+v, 期望空表", levels)
	}

	// 下一次写入直接把坏文件修复掉
	if err := store.Insert(&model.Level{ID: "lv-1", Type: model.LevelTypeQuiz, CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Insert 失败: %v", err)
	}
	levels, err = store.List()
	if err != nil || len(levels) != 1 {
		t.Errorf("List = (%v, %v), 期望1条记录", levels, err)
	}
}

func TestLevelStoreQuizRoundTrip(t *testing.T) {
	store, err := NewFileLevelStore(t.TempDir())
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}

	level := &model.Level{
		ID:    "lv-quiz",
		Type:  model.LevelTypeQuiz,
		Title: "小测验",
		Quiz: &model.QuizDocument{Questions: []model.QuizQuestion{
			{
				QuestionNumber: 1,
				Prompt:         "天空是什么颜色？",
				Type:           model.QuestionTypeSingle,
				Options: []model.QuizOption{
					{Text: "蓝色", Correct: true},
					{Text: "绿色", Correct: false},
				},
			},
		}},
		CreatedAt: time.Now(),
	}
	if err := store.Insert(level); err != nil {
		t.Fatalf("Insert 失败: %v", err)
	}

	got, err := store.Get("lv-quiz")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if got.Quiz == nil || len(got.Quiz.Questions) != 1 {
		t.Fatalf("quiz = %+v", got.Quiz)
	}
	q := got.Quiz.Questions[0]
	if q.Prompt != "天空是什么颜色？" || !q.Options[0].Correct || q.Options[1].Correct {
		t.Errorf("quiz 回读不一致: %+v", q)
	}
}
