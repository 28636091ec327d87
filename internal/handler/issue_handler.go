package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"microapi-go/internal/i18n"
	"microapi-go/internal/service"
	"microapi-go/response"
)

// ListIssuesHandler GET /api/issues/:project?field=value
func ListIssuesHandler(c *gin.Context) {
	issues, err := service.ListIssues(c.Request.Context(), c.Param("project"), queryFields(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// CreateIssueHandler POST /api/issues/:project
func CreateIssueHandler(c *gin.Context) {
	fields, err := requestFields(c)
	if err != nil {
		_ = c.Error(bindError(nil, err))
		return
	}

	issue, err := service.CreateIssue(c.Request.Context(), c.Param("project"), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// UpdateIssueHandler PUT /api/issues/:project
func UpdateIssueHandler(c *gin.Context) {
	fields, err := requestFields(c)
	if err != nil {
		_ = c.Error(bindError(nil, err))
		return
	}

	id, err := service.UpdateIssue(c.Request.Context(), fields, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resultBody(c, "issue.updated", id))
}

// DeleteIssueHandler DELETE /api/issues/:project
func DeleteIssueHandler(c *gin.Context) {
	fields, err := requestFields(c)
	if err != nil {
		_ = c.Error(bindError(nil, err))
		return
	}

	id, err := service.DeleteIssue(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resultBody(c, "issue.deleted", id))
}

// resultBody 构造 {result, _id}；result 固定为英文，请求语言的译文放在 message 中
func resultBody(c *gin.Context, key, id string) response.Body {
	canonical := i18n.Canonical(key, nil)
	body := response.Result(canonical, map[string]any{"_id": id})
	return response.WithMessage(body, canonical, i18n.T(c.Request.Context(), key, nil))
}
