package util

import "errors"

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrLevelNotFound  = errors.New("关卡不存在")
)

// ClientError 客户端输入错误，控制器统一映射为 HTTP 400，消息直接返回给调用方
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

func NewClientError(message string) error {
	return &ClientError{Message: message}
}

func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

var (
	ErrNoQuizPayload  = NewClientError("请提供选择题JSON（quiz/quizJson）或上传 .json 文件（字段名 quiz）")
	ErrQuizEnvelope   = NewClientError("选择题JSON结构不正确：必须包含 questions 数组")
	ErrNoImages       = NewClientError("请至少上传一张图片")
	ErrNoVideo        = NewClientError("请上传视频文件或提供 videoUrl")
	ErrNoCanvasSource = NewClientError("请提供代码内容或上传代码文件")
)
