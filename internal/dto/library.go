package dto

type CreateBookRequest struct {
	Title string `form:"title" json:"title" binding:"required" msg:"error.title_required"`
}

// AddCommentRequest comment 为空由服务层在确认图书存在之后判断
type AddCommentRequest struct {
	Comment string `form:"comment" json:"comment"`
}

type BookSummary struct {
	ID           string `json:"_id"`
	Title        string `json:"title"`
	CommentCount int64  `json:"commentcount"`
}

type BookResponse struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Comments []string `json:"comments"`
}

type CreatedBookResponse struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}
