package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/dto"
	"microapi-go/internal/testutil"
)

func TestCreateUserAndList(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()

	user, err := CreateUser(ctx, dto.CreateUserRequest{Username: "fcc_test"})
	require.NoError(t, err)
	assert.Equal(t, "fcc_test", user.Username)
	assert.NotEmpty(t, user.ID)

	_, err = CreateUser(ctx, dto.CreateUserRequest{Username: "  "})
	assert.True(t, apperrors.IsMessage(err, apperrors.MsgUsernameRequired))

	users, err := ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, user.ID, users[0].ID)
}

func TestAddExercise(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	now := time.Date(2022, 2, 3, 15, 4, 5, 0, time.UTC)

	user, err := CreateUser(ctx, dto.CreateUserRequest{Username: "runner"})
	require.NoError(t, err)

	resp, err := AddExercise(ctx, user.ID, dto.AddExerciseRequest{Description: "run", Duration: "30"}, now)
	require.NoError(t, err)
	assert.Equal(t, "runner", resp.Username)
	assert.Equal(t, 30, resp.Duration)
	assert.Equal(t, "Thu Feb 03 2022", resp.Date)
	assert.Equal(t, user.ID, resp.ID)

	resp, err = AddExercise(ctx, user.ID, dto.AddExerciseRequest{Description: "swim", Duration: "15", Date: "1990-01-01"}, now)
	require.NoError(t, err)
	assert.Equal(t, "Mon Jan 01 1990", resp.Date)

	tests := []struct {
		name   string
		userID string
		req    dto.AddExerciseRequest
		msg    string
	}{
		{"unknown user", "missing", dto.AddExerciseRequest{Description: "run", Duration: "1"}, apperrors.MsgUserNotFound},
		{"no description", user.ID, dto.AddExerciseRequest{Duration: "1"}, apperrors.MsgDescriptionNeeded},
		{"bad duration", user.ID, dto.AddExerciseRequest{Description: "run", Duration: "ten"}, apperrors.MsgInvalidDuration},
		{"bad date", user.ID, dto.AddExerciseRequest{Description: "run", Duration: "1", Date: "someday"}, apperrors.MsgInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddExercise(ctx, tt.userID, tt.req, now)
			assert.True(t, apperrors.IsMessage(err, tt.msg), "got %v", err)
		})
	}
}

func TestGetExerciseLog(t *testing.T) {
	testutil.SetupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	user, err := CreateUser(ctx, dto.CreateUserRequest{Username: "logger"})
	require.NoError(t, err)
	for _, d := range []string{"2020-01-05", "2020-01-01", "2020-02-01"} {
		_, err := AddExercise(ctx, user.ID, dto.AddExerciseRequest{Description: "lift " + d, Duration: "10", Date: d}, now)
		require.NoError(t, err)
	}

	all, err := GetExerciseLog(ctx, user.ID, dto.ExerciseLogQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Count)
	require.Len(t, all.Log, 3)
	assert.Equal(t, "Wed Jan 01 2020", all.Log[0].Date)
	assert.Equal(t, "Sat Feb 01 2020", all.Log[2].Date)

	ranged, err := GetExerciseLog(ctx, user.ID, dto.ExerciseLogQuery{From: "2020-01-01", To: "2020-01-05"})
	require.NoError(t, err)
	assert.Equal(t, 2, ranged.Count)

	limited, err := GetExerciseLog(ctx, user.ID, dto.ExerciseLogQuery{Limit: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, limited.Count)

	ignored, err := GetExerciseLog(ctx, user.ID, dto.ExerciseLogQuery{Limit: "abc"})
	require.NoError(t, err)
	assert.Equal(t, 3, ignored.Count)

	_, err = GetExerciseLog(ctx, user.ID, dto.ExerciseLogQuery{From: "nope"})
	assert.True(t, apperrors.IsMessage(err, apperrors.MsgInvalidDate))

	_, err = GetExerciseLog(ctx, "missing", dto.ExerciseLogQuery{})
	assert.True(t, apperrors.IsMessage(err, apperrors.MsgUserNotFound))
}
