package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"microapi-go/internal/dto"
	"microapi-go/internal/service"
)

const homeBanner = "microapi: timestamp, whoami, shorturl, exercise tracker, file metadata, library, issue tracker"

func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, homeBanner)
}

// TimestampHandler GET /api/timestamp/:date_string?
func TimestampHandler(c *gin.Context) {
	resp, err := service.ConvertTimestamp(c.Param("date_string"), time.Now())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// WhoAmIHandler GET /api/whoami
func WhoAmIHandler(c *gin.Context) {
	ip := c.ClientIP()
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	c.JSON(http.StatusOK, dto.WhoAmIResponse{
		IPAddress: ip,
		Language:  c.GetHeader("Accept-Language"),
		Software:  c.GetHeader("User-Agent"),
	})
}

// FileAnalyseHandler POST /api/fileanalyse，文件字段为 upfile
func FileAnalyseHandler(c *gin.Context) {
	header, err := c.FormFile("upfile")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		_ = c.Error(bindError(nil, err))
		return
	}

	resp, err := service.AnalyseFile(header)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
