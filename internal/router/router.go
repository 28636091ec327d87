package router

import (
	"github.com/gin-gonic/gin"
	thirdPartyI18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"go.uber.org/zap"
	"microapi-go/internal/handler"
	"microapi-go/internal/middleware"
)

// New 组装中间件与全部路由
func New(logger *zap.Logger, bundle *thirdPartyI18n.Bundle, defaultLang string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// 访问日志在最外层，才能记录错误中间件写出的状态码
	r.Use(middleware.ZapGinLogger(logger))
	r.Use(middleware.GlobalErrorMiddleware())
	r.Use(middleware.CorsMiddleware())
	r.Use(middleware.I18nMiddleware(bundle, defaultLang))

	r.GET("/", handler.HomeHandler)

	api := r.Group("/api")
	{
		api.GET("/timestamp", handler.TimestampHandler)
		api.GET("/timestamp/:date_string", handler.TimestampHandler)
		api.GET("/whoami", handler.WhoAmIHandler)

		api.POST("/shorturl", handler.CreateShortURLHandler)
		api.GET("/shorturl/:code", handler.RedirectShortURLHandler)
		api.GET("/shorturl/:code/stats", handler.ShortURLStatsHandler)

		api.POST("/users", handler.CreateUserHandler)
		api.GET("/users", handler.ListUsersHandler)
		api.POST("/users/:_id/exercises", handler.AddExerciseHandler)
		api.GET("/users/:_id/logs", handler.ExerciseLogHandler)

		api.POST("/fileanalyse", handler.FileAnalyseHandler)

		api.POST("/books", handler.CreateBookHandler)
		api.GET("/books", handler.ListBooksHandler)
		api.DELETE("/books", handler.DeleteAllBooksHandler)
		api.GET("/books/:_id", handler.GetBookHandler)
		api.POST("/books/:_id", handler.AddBookCommentHandler)
		api.DELETE("/books/:_id", handler.DeleteBookHandler)

		api.GET("/issues/:project", handler.ListIssuesHandler)
		api.POST("/issues/:project", handler.CreateIssueHandler)
		api.PUT("/issues/:project", handler.UpdateIssueHandler)
		api.DELETE("/issues/:project", handler.DeleteIssueHandler)
	}

	return r
}
