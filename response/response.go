package response

import (
	"microapi-go/internal/apperrors"
)

// Body 是所有 JSON 响应的通用结构，与原有前端约定保持一致：
// 成功时直接返回业务字段，失败时返回 {"error": "..."}。
type Body map[string]any

// Error 构造一个失败的响应
func Error(message string) Body {
	return Body{"error": message}
}

// Result 构造一个只包含 result 字段的响应，例如 {"result": "successfully updated", "_id": "..."}
func Result(message string, extra map[string]any) Body {
	body := Body{"result": message}
	for k, v := range extra {
		body[k] = v
	}
	return body
}

// WithMessage 在请求语言的译文与固定文本不同时附加 message 字段
func WithMessage(body Body, canonical, localized string) Body {
	if localized != "" && localized != canonical {
		body["message"] = localized
	}
	return body
}

// ErrorFromAppError 基于 AppError 构造错误响应：error 为固定的英文文本，译文放在 message 中
func ErrorFromAppError(err *apperrors.AppError, canonical, localized string) Body {
	body := WithMessage(Error(canonical), canonical, localized)
	for k, v := range err.Extra {
		body[k] = v
	}
	return body
}
