package apperrors

import (
	"errors"
	"net/http"
)

// 业务错误的消息 ID，由 i18n 中间件翻译
const (
	MsgInvalidURL        = "error.invalid_url"
	MsgShortURLNotFound  = "error.short_url_not_found"
	MsgInvalidDate       = "error.invalid_date"
	MsgUserNotFound      = "error.user_not_found"
	MsgUsernameRequired  = "error.username_required"
	MsgDescriptionNeeded = "error.description_required"
	MsgInvalidDuration   = "error.invalid_duration"
	MsgNoFileUploaded    = "error.no_file_uploaded"
	MsgTitleRequired     = "error.title_required"
	MsgCommentRequired   = "error.comment_required"
	MsgNoBookExists      = "error.no_book_exists"
	MsgRequiredMissing   = "error.required_fields_missing"
	MsgMissingID         = "error.missing_id"
	MsgNoUpdateFields    = "error.no_update_fields"
	MsgCouldNotUpdate    = "error.could_not_update"
	MsgCouldNotDelete    = "error.could_not_delete"
	MsgSystemError       = "error.system"
)

// AppError 自定义错误类型
//
// 领域错误（非法输入、未找到）按原有协议以 200 状态码在响应体内返回，
// 只有系统错误（存储不可用等）才会使用 5xx。
type AppError struct {
	Code      int
	Message   string
	Cause     error
	Extra     map[string]any // 附加到错误响应体中的字段，例如 _id
	PlainText bool           // 以纯文本而不是 JSON 返回
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// With 附加响应字段
func (e *AppError) With(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[key] = value
	return e
}

// AsText 标记为纯文本响应
func (e *AppError) AsText() *AppError {
	e.PlainText = true
	return e
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// InvalidInputError 非法输入，带内返回
func InvalidInputError(message string) *AppError {
	return WithCode(http.StatusOK, message)
}

// NotFoundError 资源不存在，带内返回
func NotFoundError(message string) *AppError {
	return WithCode(http.StatusOK, message)
}

// SystemError 封装系统内部错误
func SystemError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: MsgSystemError,
		Cause:   cause,
	}
}

// IsMessage 判断 err 是否为指定消息 ID 的 AppError
func IsMessage(err error, message string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Message == message
}
