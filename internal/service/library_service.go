package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"microapi-go/internal/apperrors"
	"microapi-go/internal/dto"
	"microapi-go/internal/model"
	"microapi-go/internal/repository"
	"microapi-go/pkg/logging"
)

// 图书接口沿用纯文本错误
func bookError(message string) *apperrors.AppError {
	return apperrors.InvalidInputError(message).AsText()
}

func CreateBook(ctx context.Context, req dto.CreateBookRequest) (*dto.CreatedBookResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, bookError(apperrors.MsgTitleRequired)
	}

	book := &model.Book{ID: uuid.NewString(), Title: title}
	if err := repository.Insert(ctx, repository.DB, book); err != nil {
		logging.Logger.Error("创建图书失败", zap.String("title", title), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}
	return &dto.CreatedBookResponse{ID: book.ID, Title: book.Title}, nil
}

func ListBooks(ctx context.Context) ([]dto.BookSummary, error) {
	books := make([]dto.BookSummary, 0)
	err := repository.DB.WithContext(ctx).
		Model(&model.Book{}).
		Select("books.id AS id, books.title AS title, COUNT(book_comments.id) AS comment_count").
		Joins("LEFT JOIN book_comments ON book_comments.book_id = books.id").
		Group("books.id, books.title, books.created_at").
		Order("books.created_at, books.id").
		Scan(&books).Error
	if err != nil {
		return nil, apperrors.SystemError(err)
	}
	return books, nil
}

func GetBook(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := findBook(ctx, repository.DB, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(book), nil
}

func AddBookComment(ctx context.Context, id string, req dto.AddCommentRequest) (*dto.BookResponse, error) {
	book, err := findBook(ctx, repository.DB, id)
	if err != nil {
		return nil, err
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == "" {
		return nil, bookError(apperrors.MsgCommentRequired)
	}

	record := model.BookComment{BookID: book.ID, Body: comment}
	if err := repository.Insert(ctx, repository.DB, &record); err != nil {
		logging.Logger.Error("添加评论失败", zap.String("book_id", book.ID), zap.Error(err))
		return nil, apperrors.SystemError(err)
	}

	book.Comments = append(book.Comments, record)
	return toBookResponse(book), nil
}

func DeleteBook(ctx context.Context, id string) error {
	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.DeleteMany[model.BookComment](ctx, tx, "book_id = ?", id); err != nil {
			return err
		}
		return repository.DeleteByID[model.Book](ctx, tx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return bookError(apperrors.MsgNoBookExists)
	}
	if err != nil {
		return apperrors.SystemError(err)
	}
	return nil
}

func DeleteAllBooks(ctx context.Context) error {
	err := repository.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repository.DeleteMany[model.BookComment](ctx, tx, nil); err != nil {
			return err
		}
		n, err := repository.DeleteMany[model.Book](ctx, tx, nil)
		if err == nil {
			logging.Logger.Info("all books deleted", zap.Int64("count", n))
		}
		return err
	})
	if err != nil {
		return apperrors.SystemError(err)
	}
	return nil
}

func findBook(ctx context.Context, db *gorm.DB, id string) (*model.Book, error) {
	book, err := repository.FindByID[model.Book](ctx, db, id, "Comments")
	if errors.Is(err, repository.ErrNotFound) {
		return nil, bookError(apperrors.MsgNoBookExists)
	}
	if err != nil {
		return nil, apperrors.SystemError(err)
	}
	return book, nil
}

func toBookResponse(book *model.Book) *dto.BookResponse {
	sort.Slice(book.Comments, func(i, j int) bool { return book.Comments[i].ID < book.Comments[j].ID })

	comments := make([]string, 0, len(book.Comments))
	for _, c := range book.Comments {
		comments = append(comments, c.Body)
	}
	return &dto.BookResponse{ID: book.ID, Title: book.Title, Comments: comments}
}
