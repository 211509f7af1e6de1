package service

import (
	"fmt"
	"strings"

	"course_studio_backend/internal/model"
	"course_studio_backend/internal/util"
)

// NormalizeQuiz 把两种输入格式统一为规范结构：
// A) 标准格式：{ questions: [{ prompt, type, options:[{text,correct,rationale?}], explanation?, hint?, questionNumber? }] }
// B) 兼容格式：{ questions: [{ questionNumber, question, answerOptions:[{text,isCorrect,rationale}], hint }] }
// 外层缺少 questions 数组时返回 nil；非对象的题目条目直接丢弃（有意的有损过滤，不算错误）。
// 本函数从不失败，总是尽力产出规范文档，合法性由 ValidateQuiz 把关。
func NormalizeQuiz(input interface{}) *model.QuizDocument {
	obj, ok := input.(map[string]interface{})
	if !ok {
		return nil
	}
	rawQuestions, ok := obj["questions"].([]interface{})
	if !ok {
		return nil
	}

	doc := &model.QuizDocument{Questions: []model.QuizQuestion{}}
	for idx, raw := range rawQuestions {
		q, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		// 兼容格式探测：出现 question 或 answerOptions 任一字段即按 B 处理
		_, hasQuestion := q["question"]
		_, hasAnswerOptions := q["answerOptions"]
		if hasQuestion || hasAnswerOptions {
			doc.Questions = append(doc.Questions, normalizeDialectB(q, idx))
		} else {
			doc.Questions = append(doc.Questions, normalizeDialectA(q, idx))
		}
	}

	return doc
}

func normalizeDialectB(q map[string]interface{}, idx int) model.QuizQuestion {
	options := []model.QuizOption{}
	if rawOptions, ok := q["answerOptions"].([]interface{}); ok {
		for _, rawOpt := range rawOptions {
			opt, _ := rawOpt.(map[string]interface{})
			options = append(options, model.QuizOption{
				Text:      util.AsString(opt["text"]),
				Correct:   util.AsBool(opt["isCorrect"]),
				Rationale: util.AsString(opt["rationale"]),
			})
		}
	}
	return model.QuizQuestion{
		QuestionNumber: util.AsInt(q["questionNumber"], idx+1),
		Prompt:         strings.TrimSpace(util.AsString(q["question"])),
		// B 格式没有多选信号，固定按单选处理
		Type:        model.QuestionTypeSingle,
		Hint:        util.AsString(q["hint"]),
		Explanation: util.AsString(q["explanation"]),
		Options:     options,
	}
}

func normalizeDialectA(q map[string]interface{}, idx int) model.QuizQuestion {
	options := []model.QuizOption{}
	if rawOptions, ok := q["options"].([]interface{}); ok {
		for _, rawOpt := range rawOptions {
			opt, _ := rawOpt.(map[string]interface{})
			options = append(options, model.QuizOption{
				Text:      util.AsString(opt["text"]),
				Correct:   util.AsBool(opt["correct"]),
				Rationale: util.AsString(opt["rationale"]),
			})
		}
	}
	qType := util.AsString(q["type"])
	if qType == "" {
		qType = model.QuestionTypeSingle
	}
	return model.QuizQuestion{
		QuestionNumber: util.AsInt(q["questionNumber"], idx+1),
		Prompt:         util.AsString(q["prompt"]),
		Type:           qType,
		Hint:           util.AsString(q["hint"]),
		Explanation:    util.AsString(q["explanation"]),
		Options:        options,
	}
}

// ValidateQuiz 校验规范化之后的文档，按顺序检查并在第一个违规处返回，
// 错误消息带1-based题号/选项号。必须在 NormalizeQuiz 之后调用。
func ValidateQuiz(doc *model.QuizDocument) error {
	if doc == nil {
		return util.NewClientError("quiz JSON 必须是对象")
	}
	if len(doc.Questions) == 0 {
		return util.NewClientError("quiz.questions 必须是非空数组")
	}
	for i, q := range doc.Questions {
		no := i + 1
		if strings.TrimSpace(q.Prompt) == "" {
			return util.NewClientError(fmt.Sprintf("第%d题缺少 prompt", no))
		}
		if q.Type != model.QuestionTypeSingle && q.Type != model.QuestionTypeMulti {
			return util.NewClientError(fmt.Sprintf("第%d题 type 只能是 single 或 multi", no))
		}
		if len(q.Options) < 2 {
			return util.NewClientError(fmt.Sprintf("第%d题 options 至少2个", no))
		}
		correctCount := 0
		for _, o := range q.Options {
			if o.Correct {
				correctCount++
			}
		}
		if q.Type == model.QuestionTypeSingle && correctCount != 1 {
			return util.NewClientError(fmt.Sprintf("第%d题为单选，correct 必须且只能有1个", no))
		}
		if q.Type == model.QuestionTypeMulti && correctCount < 1 {
			return util.NewClientError(fmt.Sprintf("第%d题为多选，correct 至少1个", no))
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return util.NewClientError(fmt.Sprintf("第%d题第%d项缺少 text", no, j+1))
			}
		}
	}
	return nil
}
