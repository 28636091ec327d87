package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"microapi-go/internal/dto"
	"microapi-go/internal/i18n"
	"microapi-go/internal/service"
)

// CreateBookHandler POST /api/books
func CreateBookHandler(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(&req, err).AsText())
		return
	}

	book, err := service.CreateBook(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// ListBooksHandler GET /api/books
func ListBooksHandler(c *gin.Context) {
	books, err := service.ListBooks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// DeleteAllBooksHandler DELETE /api/books
func DeleteAllBooksHandler(c *gin.Context) {
	if err := service.DeleteAllBooks(c.Request.Context()); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, i18n.Canonical("book.all_deleted", nil))
}

// GetBookHandler GET /api/books/:_id
func GetBookHandler(c *gin.Context) {
	book, err := service.GetBook(c.Request.Context(), c.Param("_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// AddBookCommentHandler POST /api/books/:_id
func AddBookCommentHandler(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(bindError(&req, err).AsText())
		return
	}

	book, err := service.AddBookComment(c.Request.Context(), c.Param("_id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// DeleteBookHandler DELETE /api/books/:_id
func DeleteBookHandler(c *gin.Context) {
	if err := service.DeleteBook(c.Request.Context(), c.Param("_id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.String(http.StatusOK, i18n.Canonical("book.deleted", nil))
}
