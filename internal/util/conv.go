package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeJSONParse 宽松解析：已是对象的原样返回，字符串则去空白后解析，
// 空白串/不可解析内容返回 nil。
func SafeJSONParse(input interface{}) interface{} {
	switch v := input.(type) {
	case nil:
		return nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		var out interface{}
		if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
			return nil
		}
		return out
	case []byte:
		return SafeJSONParse(string(v))
	default:
		return v
	}
}

// AsString 字符串强制转换，nil 返回空串
func AsString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// AsBool 布尔强制转换，仅 true 为真
func AsBool(v interface{}) bool {
	b, ok := v.(bool)
	return ok && b
}

// AsInt JSON 数字（float64）转 int，非数字返回 fallback
func AsInt(v interface{}, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return fallback
	}
}
