package handler

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"microapi-go/internal/apperrors"
)

const (
	msgInvalidRequest = "error.invalid_request"
	maxMultipartMem   = 32 << 20
)

// bindError 把绑定失败转换为业务错误，优先使用字段上的 msg 标签
func bindError(req any, err error) *apperrors.AppError {
	var validationErrs validator.ValidationErrors
	if req != nil && errors.As(err, &validationErrs) {
		t := reflect.TypeOf(req)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		for _, e := range validationErrs {
			field, ok := t.FieldByName(e.StructField())
			if !ok {
				continue
			}
			if msg := field.Tag.Get("msg"); msg != "" {
				return apperrors.InvalidInputError(msg)
			}
		}
	}
	return apperrors.InvalidInputError(msgInvalidRequest)
}

// requestFields 读取请求体中的全部字段（JSON、urlencoded 或 multipart）。
//
// net/http 不会为 DELETE 请求解析表单，这里统一自行读取请求体。
func requestFields(c *gin.Context) (map[string]string, error) {
	fields := make(map[string]string)

	switch contentType := c.ContentType(); {
	case contentType == binding.MIMEJSON:
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return fields, nil
			}
			return nil, err
		}
		for k, v := range body {
			if v != nil {
				fields[k] = fmt.Sprint(v)
			}
		}

	case strings.HasPrefix(contentType, binding.MIMEMultipartPOSTForm):
		if err := c.Request.ParseMultipartForm(maxMultipartMem); err != nil {
			return nil, err
		}
		for k, v := range c.Request.MultipartForm.Value {
			if len(v) > 0 {
				fields[k] = v[0]
			}
		}

	default:
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, err
		}
		for k := range values {
			fields[k] = values.Get(k)
		}
	}
	return fields, nil
}

// queryFields 取查询串中每个参数的第一个值
func queryFields(c *gin.Context) map[string]string {
	fields := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	return fields
}
