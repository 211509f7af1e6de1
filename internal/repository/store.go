package repository

import "course_studio_backend/internal/model"

// CourseStore / LevelStore 抽象记录存储。
// 单次调用内原子；跨调用的读-改-写时序由调用方负责，
// 不同后端的并发语义见各实现的说明。
type CourseStore interface {
	List() ([]model.Course, error)
	Get(id string) (*model.Course, error)
	Insert(course *model.Course) error
	Replace(id string, course *model.Course) error
	Remove(id string) error
}

type LevelStore interface {
	List() ([]model.Level, error)
	Get(id string) (*model.Level, error)
	Insert(level *model.Level) error
	Replace(id string, level *model.Level) error
	Remove(id string) error
}
