package repository

import (
	"errors"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/util"

	"gorm.io/gorm"
)

// MySQL 后端：按记录写入，避免文件后端的整表覆盖竞争。

type GormCourseStore struct {
	db *gorm.DB
}

func NewGormCourseStore(db *gorm.DB) *GormCourseStore {
	return &GormCourseStore{db: db}
}

func (s *GormCourseStore) List() ([]model.Course, error) {
	var courses []model.Course
	err := s.db.Order("created_at ASC").Find(&courses).Error
	return courses, err
}

func (s *GormCourseStore) Get(id string) (*model.Course, error) {
	var course model.Course
	err := s.db.First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *GormCourseStore) Insert(course *model.Course) error {
	return s.db.Create(course).Error
}

func (s *GormCourseStore) Replace(id string, course *model.Course) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	course.ID = id
	return s.db.Save(course).Error
}

func (s *GormCourseStore) Remove(id string) error {
	return s.db.Delete(&model.Course{}, "id = ?", id).Error
}

type GormLevelStore struct {
	db *gorm.DB
}

func NewGormLevelStore(db *gorm.DB) *GormLevelStore {
	return &GormLevelStore{db: db}
}

func (s *GormLevelStore) List() ([]model.Level, error) {
	var levels []model.Level
	err := s.db.Order("created_at ASC").Find(&levels).Error
	return levels, err
}

func (s *GormLevelStore) Get(id string) (*model.Level, error) {
	var level model.Level
	err := s.db.First(&level, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrLevelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (s *GormLevelStore) Insert(level *model.Level) error {
	return s.db.Create(level).Error
}

func (s *GormLevelStore) Replace(id string, level *model.Level) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	level.ID = id
	return s.db.Save(level).Error
}

func (s *GormLevelStore) Remove(id string) error {
	return s.db.Delete(&model.Level{}, "id = ?", id).Error
}
