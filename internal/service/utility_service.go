package service

import (
	"fmt"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/dto"
	"microapi-go/pkg/logging"
	"microapi-go/pkg/utils"
)

// ConvertTimestamp 解析日期参数，为空时使用 now
func ConvertTimestamp(raw string, now time.Time) (*dto.TimestampResponse, error) {
	t := now
	if raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			return nil, apperrors.InvalidInputError(apperrors.MsgInvalidDate)
		}
		t = parsed
	}

	return &dto.TimestampResponse{
		Unix: t.UnixMilli(),
		UTC:  utils.FormatUTC(t),
	}, nil
}

// AnalyseFile 返回上传文件的元数据；客户端未声明类型时根据内容识别
func AnalyseFile(header *multipart.FileHeader) (*dto.FileMetadataResponse, error) {
	if header == nil {
		return nil, apperrors.InvalidInputError(apperrors.MsgNoFileUploaded)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		detected, err := detectContentType(header)
		if err != nil {
			logging.Logger.Warn("mime detection failed",
				zap.String("filename", header.Filename),
				zap.Error(err))
			detected = "application/octet-stream"
		}
		contentType = detected
	}

	return &dto.FileMetadataResponse{
		Name: header.Filename,
		Type: contentType,
		Size: header.Size,
	}, nil
}

func detectContentType(header *multipart.FileHeader) (string, error) {
	f, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect upload %s: %w", header.Filename, err)
	}
	return mtype.String(), nil
}
