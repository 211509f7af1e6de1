package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

const (
	QuestionTypeSingle = "single"
	QuestionTypeMulti  = "multi"
)

// QuizOption 选择题选项
type QuizOption struct {
	Text      string `json:"text"`
	Correct   bool   `json:"correct"`
	Rationale string `json:"rationale"`
}

// QuizQuestion 规范化后的题目，prompt/options 为统一字段名
type QuizQuestion struct {
	QuestionNumber int          `json:"questionNumber"`
	Prompt         string       `json:"prompt"`
	Type           string       `json:"type"`
	Hint           string       `json:"hint"`
	Explanation    string       `json:"explanation"`
	Options        []QuizOption `json:"options"`
}

// QuizDocument 选择题关卡的规范化内容
// swagger:model QuizDocument
type QuizDocument struct {
	Questions []QuizQuestion `json:"questions"`
}

func (d QuizDocument) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *QuizDocument) Scan(value interface{}) error {
	if value == nil {
		*d = QuizDocument{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return errors.New("unsupported QuizDocument column type")
	}
}
