package service

import (
	"errors"
	"testing"

	"course_studio_backend/internal/repository"
	"course_studio_backend/internal/util"
)

func newTestCourseService(t *testing.T) *CourseService {
	t.Helper()
	store, err := repository.NewFileCourseStore(t.TempDir())
	if err != nil {
		t.Fatalf("初始化课程存储失败: %v", err)
	}
	return NewCourseService(store)
}

func strPtr(s string) *string { return &s }

func TestCourseCreateDefaults(t *testing.T) {
	s := newTestCourseService(t)

	course, err := s.Create(CourseCreateRequest{})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}
	if course.ID == "" {
		t.Error("缺少ID")
	}
	if course.Name != "新课程" {
		t.Errorf("name = %q, 期望缺省名", course.Name)
	}
	if course.LevelIDs == nil || len(course.LevelIDs) != 0 {
		t.Errorf("levelIds = %v, 期望空数组而非 nil", course.LevelIDs)
	}
	if course.CreatedAt.IsZero() || course.UpdatedAt.IsZero() {
		t.Error("时间戳未填充")
	}
}

func TestCourseUpdateMergeSemantics(t *testing.T) {
	s := newTestCourseService(t)
	course, err := s.Create(CourseCreateRequest{
		Name:        "图形入门",
		Description: "从零开始",
		LevelIDs:    []string{"lv-1", "lv-2"},
	})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	// 缺省字段保持原值
	updated, err := s.Update(course.ID, CourseUpdateRequest{Description: strPtr("改过的简介")})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Name != "图形入门" {
		t.Errorf("name = %q, 不该被改动", updated.Name)
	}
	if updated.Description != "改过的简介" {
		t.Errorf("description = %q", updated.Description)
	}
	if len(updated.LevelIDs) != 2 {
		t.Errorf("levelIds = %v, 不该被改动", updated.LevelIDs)
	}

	// name 传空串同样保持原值
	updated, err = s.Update(course.ID, CourseUpdateRequest{Name: strPtr("")})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Name != "图形入门" {
		t.Errorf("name = %q, 空串不应覆盖原名", updated.Name)
	}

	// levelIds 允许显式置空
	empty := []string{}
	updated, err = s.Update(course.ID, CourseUpdateRequest{LevelIDs: &empty})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if len(updated.LevelIDs) != 0 {
		t.Errorf("levelIds = %v, 期望已清空", updated.LevelIDs)
	}

	got, err := s.Get(course.ID)
	if err != nil {
		t.Fatalf("回读失败: %v", err)
	}
	if got.Name != "图形入门" || len(got.LevelIDs) != 0 {
		t.Errorf("落库结果不一致: %+v", got)
	}
}

func TestCourseUpdateNotFound(t *testing.T) {
	s := newTestCourseService(t)
	_, err := s.Update("missing-id", CourseUpdateRequest{Name: strPtr("随便")})
	if !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("err = %v, 期望 %v", err, util.ErrCourseNotFound)
	}
}

func TestCourseDeleteIdempotent(t *testing.T) {
	s := newTestCourseService(t)
	course, err := s.Create(CourseCreateRequest{Name: "要删的课"})
	if err != nil {
		t.Fatalf("创建失败: %v", err)
	}

	if err := s.Delete(course.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := s.Get(course.ID); !errors.Is(err, util.ErrCourseNotFound) {
		t.Errorf("删除后 Get = %v", err)
	}
	// 目标不存在也算删除成功
	if err := s.Delete(course.ID); err != nil {
		t.Errorf("重复删除 = %v, 期望 nil", err)
	}
}
