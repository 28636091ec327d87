package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/model"
	"microapi-go/internal/repository"
	"microapi-go/pkg/logging"
)

// ListIssues 按项目列出问题，filters 为查询串中的字段（未知字段忽略）
func ListIssues(ctx context.Context, project string, filters map[string]string) ([]model.Issue, error) {
	conds := map[string]any{"project": project}
	for key, value := range filters {
		column, ok := model.IssueColumns[key]
		if !ok {
			continue
		}
		if key == "open" {
			conds[column] = value == "true"
			continue
		}
		conds[column] = value
	}

	issues, err := repository.Find[model.Issue](ctx, repository.DB, conds, "created_on, id")
	if err != nil {
		return nil, apperrors.SystemError(err)
	}
	return issues, nil
}

func CreateIssue(ctx context.Context, project string, fields map[string]string) (*model.Issue, error) {
	issue := &model.Issue{
		ID:         uuid.NewString(),
		Project:    project,
		IssueTitle: strings.TrimSpace(fields["issue_title"]),
		IssueText:  strings.TrimSpace(fields["issue_text"]),
		CreatedBy:  strings.TrimSpace(fields["created_by"]),
		AssignedTo: fields["assigned_to"],
		StatusText: fields["status_text"],
		Open:       true,
	}
	if issue.IssueTitle == "" || issue.IssueText == "" || issue.CreatedBy == "" {
		return nil, apperrors.InvalidInputError(apperrors.MsgRequiredMissing)
	}

	if err := repository.Insert(ctx, repository.DB, issue); err != nil {
		logging.Logger.Error("创建问题失败", zap.String("project", project), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}
	return issue, nil
}

// UpdateIssue 只更新非空字段；open 接受 "true"/"false"
func UpdateIssue(ctx context.Context, fields map[string]string, now time.Time) (string, error) {
	id := fields["_id"]
	if id == "" {
		return "", apperrors.InvalidInputError(apperrors.MsgMissingID)
	}

	updates := make(map[string]any)
	for key, value := range fields {
		column, ok := model.IssueColumns[key]
		if !ok || key == "_id" || value == "" {
			continue
		}
		if key == "open" {
			updates[column] = value == "true"
			continue
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		return "", apperrors.InvalidInputError(apperrors.MsgNoUpdateFields).With("_id", id)
	}
	updates["updated_on"] = now

	if err := repository.UpdateByID[model.Issue](ctx, repository.DB, id, updates); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logging.Logger.Error("更新问题失败", zap.String("id", id), zap.Error(err))
		}
		return "", apperrors.InvalidInputError(apperrors.MsgCouldNotUpdate).With("_id", id)
	}
	return id, nil
}

func DeleteIssue(ctx context.Context, fields map[string]string) (string, error) {
	id := fields["_id"]
	if id == "" {
		return "", apperrors.InvalidInputError(apperrors.MsgMissingID)
	}

	if err := repository.DeleteByID[model.Issue](ctx, repository.DB, id); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logging.Logger.Error("删除问题失败", zap.String("id", id), zap.Error(err))
		}
		return "", apperrors.InvalidInputError(apperrors.MsgCouldNotDelete).With("_id", id)
	}
	return id, nil
}
