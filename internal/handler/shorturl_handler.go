package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"microapi-go/internal/dto"
	"microapi-go/internal/service"
)

// CreateShortURLHandler POST /api/shorturl
func CreateShortURLHandler(c *gin.Context) {
	var req dto.CreateShortURLRequest
	if err := c.ShouldBind(&req); err != nil {
		zap.L().Warn("Request body binding failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}

	link, err := service.RegisterShortURL(c.Request.Context(), req.URL)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.ShortURLResponse{
		OriginalURL: link.OriginalURL,
		ShortURL:    link.Code,
	})
}

// RedirectShortURLHandler GET /api/shorturl/:code
func RedirectShortURLHandler(c *gin.Context) {
	link, err := service.ResolveShortURL(c.Request.Context(), c.Param("code"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Redirect(http.StatusFound, link.OriginalURL)
}

// ShortURLStatsHandler GET /api/shorturl/:code/stats
func ShortURLStatsHandler(c *gin.Context) {
	stats, err := service.GetShortURLStats(c.Request.Context(), c.Param("code"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
