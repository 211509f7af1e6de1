package model

import (
	"strings"
	"time"
)

const (
	LevelTypeImage  = "image"
	LevelTypeVideo  = "video"
	LevelTypeCanvas = "canvas"
	LevelTypeQuiz   = "quiz"
)

// Level 关卡记录，四种类型共用一张表/一个JSON对象，
// 类型专属字段为空时不出现在响应里。
// swagger:model Level
type Level struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type        string    `gorm:"size:20;index" json:"type"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	// image 类型
	Images StringList `gorm:"type:json" json:"images,omitempty"`
	Texts  StringList `gorm:"type:json" json:"texts,omitempty"`

	// video 类型：远程URL（带scheme）或本地存储路径
	VideoURL        string  `gorm:"size:512" json:"videoUrl,omitempty"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	VideoWidth      int     `json:"videoWidth,omitempty"`
	VideoHeight     int     `json:"videoHeight,omitempty"`

	// canvas 类型：appUrl 优先；否则 codeUrl+code
	AppURL  string `gorm:"size:512" json:"appUrl,omitempty"`
	CodeURL string `gorm:"size:512" json:"codeUrl,omitempty"`
	Code    string `gorm:"type:mediumtext" json:"code,omitempty"`

	// quiz 类型
	Quiz *QuizDocument `gorm:"type:json" json:"quiz,omitempty"`
}

func (Level) TableName() string {
	return "levels"
}

// IsRemoteURL 判断是否为外部托管地址（带scheme），外部地址不归本服务管理，
// 删除/替换时不得清理其背后的文件。
func IsRemoteURL(url string) bool {
	return strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")
}
