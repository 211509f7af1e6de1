package service

import (
	"time"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/repository"
)

type CourseService struct {
	Repo repository.CourseStore
}

func NewCourseService(repo repository.CourseStore) *CourseService {
	return &CourseService{Repo: repo}
}

type CourseCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	LevelIDs    []string `json:"levelIds"`
}

// CourseUpdateRequest 部分更新：nil 字段保持原值。
// name 为空串时同样保持原值，levelIds 允许显式置空。
type CourseUpdateRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	LevelIDs    *[]string `json:"levelIds"`
}

func (s *CourseService) List() ([]model.Course, error) {
	return s.Repo.List()
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	return s.Repo.Get(id)
}

func (s *CourseService) Create(req CourseCreateRequest) (*model.Course, error) {
	now := time.Now()
	course := &model.Course{
		ID:          model.GenerateUUID(),
		Name:        req.Name,
		Description: req.Description,
		LevelIDs:    model.StringList(req.LevelIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if course.Name == "" {
		course.Name = "新课程"
	}
	if course.LevelIDs == nil {
		course.LevelIDs = model.StringList{}
	}

	if err := s.Repo.Insert(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Update(id string, req CourseUpdateRequest) (*model.Course, error) {
	course, err := s.Repo.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.LevelIDs != nil {
		course.LevelIDs = model.StringList(*req.LevelIDs)
	}
	course.UpdatedAt = time.Now()

	if err := s.Repo.Replace(id, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete 幂等：目标不存在也算删除成功
func (s *CourseService) Delete(id string) error {
	return s.Repo.Remove(id)
}
