package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/dto"
	"microapi-go/internal/model"
	"microapi-go/internal/repository"
	"microapi-go/pkg/logging"
	"microapi-go/pkg/utils"
)

func CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.InvalidInputError(apperrors.MsgUsernameRequired)
	}

	user := &model.ExerciseUser{ID: uuid.NewString(), Username: username}
	if err := repository.Insert(ctx, repository.DB, user); err != nil {
		logging.Logger.Error("创建用户失败", zap.String("username", username), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}
	return &dto.UserResponse{Username: user.Username, ID: user.ID}, nil
}

func ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := repository.Find[model.ExerciseUser](ctx, repository.DB, nil, "created_at, id")
	if err != nil {
		return nil, apperrors.SystemError(err)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{Username: u.Username, ID: u.ID})
	}
	return resp, nil
}

// AddExercise 为用户追加一条训练记录，date 为空时取当天
func AddExercise(ctx context.Context, userID string, req dto.AddExerciseRequest, now time.Time) (*dto.ExerciseResponse, error) {
	user, err := findExerciseUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Description) == "" {
		return nil, apperrors.InvalidInputError(apperrors.MsgDescriptionNeeded)
	}
	duration, err := strconv.Atoi(strings.TrimSpace(req.Duration))
	if err != nil || duration < 0 {
		return nil, apperrors.InvalidInputError(apperrors.MsgInvalidDuration)
	}

	date := now
	if req.Date != "" {
		if date, err = utils.ParseDate(req.Date); err != nil {
			return nil, apperrors.InvalidInputError(apperrors.MsgInvalidDate)
		}
	}

	exercise := &model.Exercise{
		UserID:      user.ID,
		Description: req.Description,
		Duration:    duration,
		Date:        utils.StartOfDay(date),
	}
	if err := repository.Insert(ctx, repository.DB, exercise); err != nil {
		logging.Logger.Error("保存训练记录失败", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}

	return &dto.ExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        utils.FormatDateString(exercise.Date),
		ID:          user.ID,
	}, nil
}

// GetExerciseLog 返回用户的训练日志，from/to 为闭区间，limit 非正数或无法解析时忽略
func GetExerciseLog(ctx context.Context, userID string, q dto.ExerciseLogQuery) (*dto.ExerciseLogResponse, error) {
	user, err := findExerciseUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx := repository.DB.WithContext(ctx).Where("user_id = ?", user.ID)
	if q.From != "" {
		from, err := utils.ParseDate(q.From)
		if err != nil {
			return nil, apperrors.InvalidInputError(apperrors.MsgInvalidDate)
		}
		tx = tx.Where("date >= ?", from)
	}
	if q.To != "" {
		to, err := utils.ParseDate(q.To)
		if err != nil {
			return nil, apperrors.InvalidInputError(apperrors.MsgInvalidDate)
		}
		tx = tx.Where("date <= ?", to)
	}
	if limit, err := strconv.Atoi(q.Limit); err == nil && limit > 0 {
		tx = tx.Limit(limit)
	}

	var exercises []model.Exercise
	if err := tx.Order("date, id").Find(&exercises).Error; err != nil {
		logging.Logger.Error("查询训练日志失败", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}

	resp := &dto.ExerciseLogResponse{
		Username: user.Username,
		Count:    len(exercises),
		ID:       user.ID,
		Log:      make([]dto.ExerciseLogEntry, 0, len(exercises)),
	}
	for _, e := range exercises {
		resp.Log = append(resp.Log, dto.ExerciseLogEntry{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        utils.FormatDateString(e.Date),
		})
	}
	return resp, nil
}

func findExerciseUser(ctx context.Context, userID string) (*model.ExerciseUser, error) {
	user, err := repository.FindByID[model.ExerciseUser](ctx, repository.DB, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFoundError(apperrors.MsgUserNotFound)
	}
	if err != nil {
		return nil, apperrors.SystemError(err)
	}
	return user, nil
}
