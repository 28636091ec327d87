package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"microapi-go/internal/dto"
	"microapi-go/internal/service"
)

// CreateUserHandler POST /api/users
func CreateUserHandler(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(&req, err))
		return
	}

	user, err := service.CreateUser(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsersHandler GET /api/users
func ListUsersHandler(c *gin.Context) {
	users, err := service.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// AddExerciseHandler POST /api/users/:_id/exercises
func AddExerciseHandler(c *gin.Context) {
	var req dto.AddExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(&req, err))
		return
	}

	resp, err := service.AddExercise(c.Request.Context(), c.Param("_id"), req, time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExerciseLogHandler GET /api/users/:_id/logs?from&to&limit
func ExerciseLogHandler(c *gin.Context) {
	var q dto.ExerciseLogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(bindError(&q, err))
		return
	}

	resp, err := service.GetExerciseLog(c.Request.Context(), c.Param("_id"), q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
