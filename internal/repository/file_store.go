package repository

import (
	"encoding/json"
	"os"
	"path/filepath"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/util"
)

// 文件后端：整表序列化到 data/courses.json 与 data/levels.json。
// 每次变更都重写整个文件，且没有任何并发控制——两个并发写请求中
// 后写者覆盖先写者（last-write-wins）。这是沿用下来的部署行为，
// 需要真正的并发安全时改用 mysql 后端。

const (
	coursesFileName = "courses.json"
	levelsFileName  = "levels.json"
)

func initDataFile(dataDir, name string) (string, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(dataDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
			return "", err
		}
	}
	return path, nil
}

// 读失败或内容损坏时按空表处理，与原有行为一致
func readJSONFile(path string, out interface{}) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	json.Unmarshal(data, out)
}

func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type FileCourseStore struct {
	path string
}

func NewFileCourseStore(dataDir string) (*FileCourseStore, error) {
	path, err := initDataFile(dataDir, coursesFileName)
	if err != nil {
		return nil, err
	}
	return &FileCourseStore{path: path}, nil
}

func (s *FileCourseStore) List() ([]model.Course, error) {
	courses := []model.Course{}
	readJSONFile(s.path, &courses)
	return courses, nil
}

func (s *FileCourseStore) Get(id string) (*model.Course, error) {
	courses, _ := s.List()
	for i := range courses {
		if courses[i].ID == id {
			return &courses[i], nil
		}
	}
	return nil, util.ErrCourseNotFound
}

func (s *FileCourseStore) Insert(course *model.Course) error {
	courses, _ := s.List()
	courses = append(courses, *course)
	return writeJSONFile(s.path, courses)
}

func (s *FileCourseStore) Replace(id string, course *model.Course) error {
	courses, _ := s.List()
	for i := range courses {
		if courses[i].ID == id {
			courses[i] = *course
			return writeJSONFile(s.path, courses)
		}
	}
	return util.ErrCourseNotFound
}

func (s *FileCourseStore) Remove(id string) error {
	courses, _ := s.List()
	filtered := courses[:0]
	for _, c := range courses {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	return writeJSONFile(s.path, filtered)
}

type FileLevelStore struct {
	path string
}

func NewFileLevelStore(dataDir string) (*FileLevelStore, error) {
	path, err := initDataFile(dataDir, levelsFileName)
	if err != nil {
		return nil, err
	}
	return &FileLevelStore{path: path}, nil
}

func (s *FileLevelStore) List() ([]model.Level, error) {
	levels := []model.Level{}
	readJSONFile(s.path, &levels)
	return levels, nil
}

func (s *FileLevelStore) Get(id string) (*model.Level, error) {
	levels, _ := s.List()
	for i := range levels {
		if levels[i].ID == id {
			return &levels[i], nil
		}
	}
	return nil, util.ErrLevelNotFound
}

func (s *FileLevelStore) Insert(level *model.Level) error {
	levels, _ := s.List()
	levels = append(levels, *level)
	return writeJSONFile(s.path, levels)
}

func (s *FileLevelStore) Replace(id string, level *model.Level) error {
	levels, _ := s.List()
	for i := range levels {
		if levels[i].ID == id {
			levels[i] = *level
			return writeJSONFile(s.path, levels)
		}
	}
	return util.ErrLevelNotFound
}

func (s *FileLevelStore) Remove(id string) error {
	levels, _ := s.List()
	filtered := levels[:0]
	for _, l := range levels {
		if l.ID != id {
			filtered = append(filtered, l)
		}
	}
	return writeJSONFile(s.path, filtered)
}
